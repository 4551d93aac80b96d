package walk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrNothingToWatch is returned by Watch when the root cannot be watched.
var ErrNothingToWatch = errors.New("no watchable directory under root")

// WatchOptions defines options for watching a tree.
type WatchOptions struct {
	// Timeout stops the watch after this duration; 0 means no timeout.
	Timeout time.Duration

	// Ready, when set, is called once every initial directory is watched.
	Ready func(dirs []string)
}

// WatchHandler is called with each selectable file that was created or
// written. A returned error is logged and the watch continues.
type WatchHandler func(ctx context.Context, path string) error

// Watch watches root and every traversable directory beneath it, calling
// handler for each selectable file as it is created or written. Handlers
// run one at a time on the calling goroutine. Watch returns nil when ctx is
// done or the timeout expires.
func (w *Walker) Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	dirs := w.addDirs(watcher, root)
	if len(dirs) == 0 {
		return fmt.Errorf("%s: %w", root, ErrNothingToWatch)
	}
	w.logger.Debug("watching", zap.String("root", root), zap.Int("dirs", len(dirs)))
	if opts.Ready != nil {
		opts.Ready(dirs)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			w.handleEvent(ctx, watcher, event, handler)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Walker) handleEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event, handler WatchHandler) {
	info, err := os.Lstat(event.Name)
	if err != nil {
		// Gone again before we looked, e.g. an editor's swap file.
		w.logger.Debug("event for vanished entry", zap.String("path", event.Name), zap.Error(err))
		return
	}

	entry := FileEntry{Path: event.Name, Kind: KindOf(info.Mode())}
	switch {
	case w.spec.IsTraversable(entry) && event.Has(fsnotify.Create):
		w.addDirs(watcher, entry.Path)
		// Files may have landed before the watch was in place.
		paths, _ := w.Walk(entry.Path)
		for _, path := range paths {
			w.dispatch(ctx, handler, path)
		}
	case w.spec.IsSelectable(entry):
		w.dispatch(ctx, handler, entry.Path)
	}
}

func (w *Walker) dispatch(ctx context.Context, handler WatchHandler, path string) {
	if err := handler(ctx, path); err != nil {
		w.logger.Warn("error handling event", zap.String("path", path), zap.Error(err))
	}
}

// addDirs watches dir and its traversable subdirectories, returning those
// that were added.
func (w *Walker) addDirs(watcher *fsnotify.Watcher, dir string) []string {
	var added []string
	for _, d := range w.Dirs(dir) {
		if err := watcher.Add(d); err != nil {
			w.logger.Warn("error watching directory", zap.String("dir", d), zap.Error(err))
			continue
		}
		added = append(added, d)
	}
	return added
}
