package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Invalidator drops a cached read view for one user. Satisfied by
// search.Finder.
type Invalidator interface {
	Invalidate(username string)
}

// Watcher invalidates a user's cached search view when that user's backing
// file changes on disk, e.g. after a restore from backup or a manual edit.
// Our own atomic rewrites also trigger it; the extra invalidation after a
// mutation is harmless because the cache rebuild is a pure re-read.
type Watcher struct {
	dataDir string
	cache   Invalidator
	log     *slog.Logger
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher creates a watcher over dataDir that invalidates cache entries.
func NewWatcher(dataDir string, cache Invalidator, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dataDir); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		dataDir: dataDir,
		cache:   cache,
		log:     log,
		watcher: fw,
		done:    make(chan struct{}),
	}, nil
}

// Start runs the watch loop until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Close stops the watch loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("data dir watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
		return
	}
	username := strings.TrimSuffix(name, ".json")
	w.cache.Invalidate(username)
	w.log.Debug("invalidated cache after file event", "user", username, "op", event.Op.String())
}
