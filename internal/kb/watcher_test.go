package kb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/masjidlabs/minbar/internal/log"
)

// waitFor polls cond until it is true or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestWatcherReloadsOnCreate(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "*.md"), log.NewNop())
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := NewWatcher(store, log.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	w.Start(ctx)
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "faq.md"), []byte("ramadan iftar details"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		return !store.Snapshot().Empty()
	}, "snapshot never picked up the new file")
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.md")
	if err := os.WriteFile(path, []byte("old content"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(filepath.Join(dir, "*.md"), log.NewNop())
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := NewWatcher(store, log.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	w.Start(ctx)
	defer w.Close()

	if err := os.WriteFile(path, []byte("new content entirely"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		return store.Snapshot().Text == "new content entirely"
	}, "snapshot never refreshed after the write")
}

func TestWatcherClose(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "*.md"), log.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := NewWatcher(store, log.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	w.Start(ctx)

	// Close must stop the loop and not hang.
	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestWatcherMissingDirStillStarts(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope", "*.md"), log.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The kb directory does not exist; the watcher degrades instead of failing.
	w, err := NewWatcher(store, log.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	w.Start(ctx)
	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
