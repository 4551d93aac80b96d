package walk

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies a filesystem entry for traversal purposes.
type Kind int

const (
	KindOther Kind = iota // Symlinks, sockets, devices, pipes
	KindDir               // Plain directory, recursed unless excluded
	KindFile              // Regular file, selected when its extension matches
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "other"
	}
}

// KindOf classifies a mode as returned by Lstat. Symlinks are never
// resolved, so a link to a directory is KindOther.
func KindOf(mode os.FileMode) Kind {
	switch {
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// FileEntry is a path with its cached classification.
type FileEntry struct {
	Path string
	Kind Kind
}

// Name returns the final path component.
func (e FileEntry) Name() string {
	return filepath.Base(e.Path)
}

// FilterSpec holds the included extensions and excluded names for one
// traversal. The zero value selects nothing and excludes nothing.
type FilterSpec struct {
	include map[string]struct{}
	exclude map[string]struct{}
}

// NewFilterSpec copies include and exclude into a FilterSpec.
// Extensions are stored verbatim: no case folding, no dot stripping.
func NewFilterSpec(include, exclude []string) FilterSpec {
	spec := FilterSpec{
		include: make(map[string]struct{}, len(include)),
		exclude: make(map[string]struct{}, len(exclude)),
	}
	for _, ext := range include {
		spec.include[ext] = struct{}{}
	}
	for _, name := range exclude {
		spec.exclude[name] = struct{}{}
	}
	return spec
}

// Include returns the included extensions, sorted.
func (f FilterSpec) Include() []string {
	return sortedKeys(f.include)
}

// Exclude returns the excluded names, sorted.
func (f FilterSpec) Exclude() []string {
	return sortedKeys(f.exclude)
}

// IsExcluded reports whether name, a single path component, is excluded.
// Full paths are never matched; pass the base name.
func (f FilterSpec) IsExcluded(name string) bool {
	_, ok := f.exclude[name]
	return ok
}

// IsTraversable reports whether entry is a directory the walker descends into.
func (f FilterSpec) IsTraversable(entry FileEntry) bool {
	return entry.Kind == KindDir && !f.IsExcluded(entry.Name())
}

// IsSelectable reports whether entry is a regular file whose extension is
// one of the included extensions and whose name is not excluded.
func (f FilterSpec) IsSelectable(entry FileEntry) bool {
	if entry.Kind != KindFile {
		return false
	}
	name := entry.Name()
	if f.IsExcluded(name) {
		return false
	}
	ext, ok := Extension(name)
	if !ok {
		return false
	}
	_, ok = f.include[ext]
	return ok
}

// Extension returns the substring after the last '.' in name.
// ok is false when name contains no dot.
func Extension(name string) (ext string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", false
	}
	return name[i+1:], true
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
