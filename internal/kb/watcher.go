package kb

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/masjidlabs/minbar/internal/log"
)

// debounceDelay batches rapid editor saves into one reload.
const debounceDelay = 500 * time.Millisecond

// Watcher reloads the Store when files under the knowledge base
// directory change. It watches the directory containing the glob, so
// newly created files are picked up too.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
	logger  log.Logger
	done    chan struct{}
}

// NewWatcher creates a watcher for the store's knowledge base directory.
func NewWatcher(store *Store, logger log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(store.glob)
	if err := fw.Add(dir); err != nil {
		// Directory may not exist yet; reloads just never fire.
		logger.Warn("kb watch failed, hot reload disabled", "dir", dir, "error", err)
	}

	return &Watcher{store: store, watcher: fw, logger: logger, done: make(chan struct{})}, nil
}

// Start runs the watch loop until ctx is cancelled. Non-blocking.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Close stops the watch loop and releases the fsnotify watcher.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename) {
				continue
			}
			w.logger.Debug("kb change detected", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				pending = timer.C
			} else {
				timer.Reset(debounceDelay)
			}

		case <-pending:
			timer = nil
			pending = nil
			if err := w.store.Load(); err != nil {
				w.logger.Warn("kb reload failed, keeping previous snapshot", "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("kb watcher error", "error", err)
		}
	}
}
