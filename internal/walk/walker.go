// Package walk selects the files a substitution run operates on.
//
// The walker descends from a root in directory enumeration order, prunes
// every entry whose name is excluded, never follows symbolic links below
// the root and treats any entry or directory it cannot read as absent.
package walk

import (
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"

	"github.com/TFMV/resub/internal/logging"
)

// Stats holds traversal counters for one walk.
type Stats struct {
	DirsVisited    int64 // Directories enumerated, root included
	FilesSelected  int64 // Files appended to the path list
	EntriesPruned  int64 // Entries dropped because their name is excluded
	EntriesSkipped int64 // Non-regular entries and entries that could not be read
}

// Walker enumerates selectable files under a root.
type Walker struct {
	spec    FilterSpec
	logger  *zap.Logger
	openDir func(dir string) (dirScanner, error)
}

// dirScanner is the part of godirwalk.Scanner the walker uses.
type dirScanner interface {
	Scan() bool
	Dirent() (*godirwalk.Dirent, error)
	Err() error
}

func openScanner(dir string) (dirScanner, error) {
	scanner, err := godirwalk.NewScanner(dir)
	if err != nil {
		return nil, err
	}
	return scanner, nil
}

// NewWalker returns a Walker for spec. A nil logger disables logging.
func NewWalker(spec FilterSpec, logger *zap.Logger) *Walker {
	return &Walker{spec: spec, logger: logging.OrNop(logger), openDir: openScanner}
}

// Walk returns every selectable file under root in depth-first,
// enumeration order. It never fails: unreadable directories, including a
// missing root, contribute nothing.
func (w *Walker) Walk(root string) ([]string, Stats) {
	var paths []string
	stats := w.walk(root, nil, func(path string) {
		paths = append(paths, path)
	})
	return paths, stats
}

// Dirs returns root and every traversable directory beneath it.
func (w *Walker) Dirs(root string) []string {
	var dirs []string
	w.walk(root, func(path string) {
		dirs = append(dirs, path)
	}, nil)
	return dirs
}

// Walk is a convenience wrapper that walks root with spec and no logging.
func Walk(root string, spec FilterSpec) []string {
	paths, _ := NewWalker(spec, nil).Walk(root)
	return paths
}

// walk keeps one pending entry list per open directory level. The top list
// is consumed first, so a subdirectory's entries are finished before its
// parent's later siblings.
func (w *Walker) walk(root string, onDir, onFile func(string)) Stats {
	var stats Stats

	w.logger.Debug("starting walk",
		zap.String("root", root),
		zap.Strings("include", w.spec.Include()),
		zap.Strings("exclude", w.spec.Exclude()),
	)

	// The root is the one path whose symlinks are followed.
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		w.logger.Debug("root not walkable", zap.String("root", root), zap.Error(err))
		return stats
	}

	enter := func(dir string) []FileEntry {
		stats.DirsVisited++
		if onDir != nil {
			onDir(dir)
		}
		return w.readDir(dir, &stats)
	}

	// The root is enumerated but never matched against the filter.
	pending := [][]FileEntry{enter(filepath.Clean(root))}
	for len(pending) > 0 {
		top := len(pending) - 1
		if len(pending[top]) == 0 {
			pending = pending[:top]
			continue
		}
		entry := pending[top][0]
		pending[top] = pending[top][1:]

		if w.spec.IsExcluded(entry.Name()) {
			stats.EntriesPruned++
			w.logger.Debug("pruned excluded entry", zap.String("path", entry.Path), zap.Stringer("kind", entry.Kind))
			continue
		}

		switch entry.Kind {
		case KindDir:
			pending = append(pending, enter(entry.Path))
		case KindFile:
			if w.spec.IsSelectable(entry) {
				stats.FilesSelected++
				if onFile != nil {
					onFile(entry.Path)
				}
			}
		default:
			stats.EntriesSkipped++
			w.logger.Debug("skipped non-regular entry", zap.String("path", entry.Path))
		}
	}

	w.logger.Debug("walk finished",
		zap.String("root", root),
		zap.Int64("dirs", stats.DirsVisited),
		zap.Int64("selected", stats.FilesSelected),
		zap.Int64("pruned", stats.EntriesPruned),
		zap.Int64("skipped", stats.EntriesSkipped),
	)
	return stats
}

// readDir lists dir in enumeration order. An entry that cannot be
// classified is skipped on its own; a failure to open or keep reading dir
// ends that directory only.
func (w *Walker) readDir(dir string, stats *Stats) []FileEntry {
	scanner, err := w.openDir(dir)
	if err != nil {
		stats.EntriesSkipped++
		w.logger.Debug("skipped unreadable directory", zap.String("path", dir), zap.Error(err))
		return nil
	}

	var entries []FileEntry
	for scanner.Scan() {
		de, err := scanner.Dirent()
		if err != nil {
			stats.EntriesSkipped++
			w.logger.Debug("skipped unclassifiable entry", zap.String("dir", dir), zap.Error(err))
			continue
		}
		entries = append(entries, FileEntry{
			Path: filepath.Join(dir, de.Name()),
			Kind: KindOf(de.ModeType()),
		})
	}
	if err := scanner.Err(); err != nil {
		stats.EntriesSkipped++
		w.logger.Debug("directory listing cut short", zap.String("path", dir), zap.Error(err))
	}
	return entries
}
