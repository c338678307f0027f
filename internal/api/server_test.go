package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masjidlabs/minbar/internal/diag"
	"github.com/masjidlabs/minbar/internal/kb"
	"github.com/masjidlabs/minbar/internal/log"
	"github.com/masjidlabs/minbar/internal/schedule"
)

// fakeResponder is a scripted Responder.
type fakeResponder struct {
	reply string
	panic bool
}

func (f *fakeResponder) Compose(_ context.Context, _ string) string {
	if f.panic {
		panic("composer exploded")
	}
	return f.reply
}

func testStores(t *testing.T) (*kb.Store, *schedule.Store) {
	t.Helper()
	dir := t.TempDir()
	kbStore := kb.NewStore(filepath.Join(dir, "*.md"), log.NewNop())
	schedStore := schedule.NewStore(filepath.Join(dir, "prayer_times.csv"), log.NewNop())
	return kbStore, schedStore
}

func newTestServer(t *testing.T, cfg ServerConfig) *Server {
	t.Helper()
	if cfg.KB == nil {
		cfg.KB, cfg.Schedule = testStores(t)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}
	srv, err := NewServer(cfg)
	require.NoError(t, err)
	return srv
}

func postWebhook(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"Body": {body}, "From": {"whatsapp:+15550001111"}}
	req := httptest.NewRequest(http.MethodPost, "/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewServerValidation(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)

	kbStore, schedStore := testStores(t)
	_, err = NewServer(ServerConfig{Responder: &fakeResponder{}})
	assert.Error(t, err)

	_, err = NewServer(ServerConfig{Responder: &fakeResponder{}, KB: kbStore, Schedule: schedStore})
	assert.NoError(t, err)
}

func TestWebhookReply(t *testing.T) {
	srv := newTestServer(t, ServerConfig{
		Responder: &fakeResponder{reply: "Fajr time today is 5:40 AM."},
	})

	w := postWebhook(t, srv, "fajr time")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<Response><Message>Fajr time today is 5:40 AM.</Message></Response>")
}

func TestWebhookEscapesReply(t *testing.T) {
	srv := newTestServer(t, ServerConfig{
		Responder: &fakeResponder{reply: `times for <today> & "tomorrow"`},
	})

	w := postWebhook(t, srv, "anything")

	body := w.Body.String()
	assert.Contains(t, body, "&lt;today&gt;")
	assert.Contains(t, body, "&amp;")
	assert.NotContains(t, body, "<today>")
}

func TestWebhookPanicStillAnswersTwiML(t *testing.T) {
	rec := &diag.Recorder{}
	srv := newTestServer(t, ServerConfig{
		Responder: &fakeResponder{panic: true},
		Errors:    rec,
	})

	w := postWebhook(t, srv, "boom")

	assert.Equal(t, http.StatusOK, w.Code, "transport must never see a server error")
	assert.Contains(t, w.Body.String(), "<Response><Message>")
	assert.Contains(t, w.Body.String(), "Sorry")
	assert.Contains(t, rec.Last(), "panic")
}

func TestWebhookMalformedForm(t *testing.T) {
	srv := newTestServer(t, ServerConfig{
		Responder: &fakeResponder{reply: "unused"},
	})

	// Broken percent-encoding makes ParseForm fail.
	req := httptest.NewRequest(http.MethodPost, "/whatsapp", strings.NewReader("Body=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sorry")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, ServerConfig{Responder: &fakeResponder{}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDebug(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "faq.md"), []byte("iftar info"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prayer_times.csv"),
		[]byte("date,fajr\n2026-03-27,5:40 AM\n"), 0o644))

	kbStore := kb.NewStore(filepath.Join(dir, "*.md"), log.NewNop())
	require.NoError(t, kbStore.Load())
	schedStore := schedule.NewStore(filepath.Join(dir, "prayer_times.csv"), log.NewNop())
	require.NoError(t, schedStore.Load())

	rec := &diag.Recorder{}
	srv := newTestServer(t, ServerConfig{
		Responder:           &fakeResponder{},
		KB:                  kbStore,
		Schedule:            schedStore,
		Errors:              rec,
		GeneratorConfigured: false,
	})

	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"kb_loaded_chars":10`)
	assert.Contains(t, body, `"schedule_rows_loaded":1`)
	assert.Contains(t, body, `"generator_configured":false`)
	assert.Contains(t, body, "faq.md")
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, ServerConfig{
		Responder: &fakeResponder{reply: "ok"},
		RateBurst: 2,
	})

	statuses := make([]int, 0, 4)
	for range 4 {
		w := postWebhook(t, srv, "hello")
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Contains(t, statuses[2:], http.StatusTooManyRequests)
}

func TestHealthBypassesRateLimit(t *testing.T) {
	srv := newTestServer(t, ServerConfig{
		Responder: &fakeResponder{reply: "ok"},
		RateBurst: 1,
	})

	postWebhook(t, srv, "use up the budget")

	for range 5 {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, ServerConfig{Responder: &fakeResponder{reply: "ok"}})

	w := postWebhook(t, srv, "hi")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
