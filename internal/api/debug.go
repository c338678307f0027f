package api

import (
	"net/http"

	"github.com/masjidlabs/minbar/internal/diag"
	"github.com/masjidlabs/minbar/internal/kb"
	"github.com/masjidlabs/minbar/internal/schedule"
)

// debugHandler reports loader and generator state. Diagnostic only:
// unauthenticated, so it must never include secrets — only a boolean
// for the generator credential.
type debugHandler struct {
	kb        *kb.Store
	schedule  *schedule.Store
	errors    *diag.Recorder
	generator bool
}

type debugStatus struct {
	KBLoadedChars       int      `json:"kb_loaded_chars"`
	KBFilesLoaded       []string `json:"kb_files_loaded"`
	ScheduleRowsLoaded  int      `json:"schedule_rows_loaded"`
	GeneratorConfigured bool     `json:"generator_configured"`
	LastError           string   `json:"last_error"`
}

func (h *debugHandler) status(w http.ResponseWriter, _ *http.Request) {
	corpus := h.kb.Snapshot()

	files := corpus.Files
	if files == nil {
		files = []string{}
	}

	writeJSON(w, http.StatusOK, debugStatus{
		KBLoadedChars:       len(corpus.Text),
		KBFilesLoaded:       files,
		ScheduleRowsLoaded:  h.schedule.Snapshot().Len(),
		GeneratorConfigured: h.generator,
		LastError:           h.errors.Last(),
	})
}
