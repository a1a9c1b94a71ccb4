package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the catalog source file for changes. The running
// catalog is never hot-reloaded; a change on disk only produces a log
// line and a change notification so operators and connected clients know
// the served data is stale until restart.
type Watcher struct {
	path     string
	logger   *slog.Logger
	onChange func(path string)
	watcher  *fsnotify.Watcher

	// debounce collapses the write bursts editors and download tools
	// produce into a single notification.
	debounce time.Duration
}

// NewWatcher creates a watcher for the given catalog file. onChange is
// invoked (from the watch goroutine) after writes settle.
func NewWatcher(path string, logger *slog.Logger, onChange func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	// Watch the parent directory: many tools replace files by rename,
	// which drops a watch set on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		path:     filepath.Clean(path),
		logger:   logger,
		onChange: onChange,
		watcher:  fsw,
		debounce: 2 * time.Second,
	}, nil
}

// Start runs the watch loop until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	var timer *time.Timer
	fired := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fired <- struct{}{}:
				default:
				}
			})

		case <-fired:
			w.logger.Warn("catalog file changed on disk; served catalog is stale until restart",
				"path", w.path,
			)
			if w.onChange != nil {
				w.onChange(w.path)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
