// Package diag records the last internal error for the /debug
// endpoint. It is intentionally tiny: one string, overwritten on each
// record, never surfaced to end users.
package diag

import (
	"fmt"
	"sync"
)

// Recorder keeps the most recent internal error string.
// Safe for concurrent use. The zero value is ready.
type Recorder struct {
	mu   sync.Mutex
	last string
}

// Record stores a formatted error, replacing any previous one.
func (r *Recorder) Record(stage string, err error) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = fmt.Sprintf("%s: %v", stage, err)
}

// Last returns the most recently recorded error string, or "".
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
