package kb

import (
	"sync/atomic"

	"github.com/masjidlabs/minbar/internal/log"
)

// Store holds the current corpus snapshot behind an atomic pointer.
// Reload swaps the whole snapshot; readers always see a complete corpus.
type Store struct {
	glob    string
	logger  log.Logger
	current atomic.Pointer[Corpus]
}

// NewStore creates a Store for the given glob with an empty corpus.
func NewStore(glob string, logger log.Logger) *Store {
	s := &Store{glob: glob, logger: logger}
	s.current.Store(newCorpus("", nil))
	return s
}

// Load reads the knowledge base from disk and swaps it in.
// On error the previous snapshot stays current.
func (s *Store) Load() error {
	c, err := Load(s.glob)
	if err != nil {
		return err
	}
	s.current.Store(c)
	s.logger.Info("knowledge base loaded",
		"files", len(c.Files),
		"paragraphs", c.Paragraphs(),
		"chars", len(c.Text),
	)
	return nil
}

// Snapshot returns the current corpus. Never nil.
func (s *Store) Snapshot() *Corpus {
	return s.current.Load()
}
