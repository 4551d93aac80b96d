package walk

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultListFormat prints the bare path.
const DefaultListFormat = "{}"

// ListMessage holds the placeholders available to a list template.
type ListMessage struct {
	Path string // Path as produced by the walker
	Rel  string // Path relative to the walk root
	Name string // Base name
	Dir  string // Containing directory
	Ext  string // Extension without the dot, empty if none
}

// NewListMessage describes path, found under root.
func NewListMessage(root, path string) ListMessage {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	ext, _ := Extension(filepath.Base(path))
	return ListMessage{
		Path: path,
		Rel:  rel,
		Name: filepath.Base(path),
		Dir:  filepath.Dir(path),
		Ext:  ext,
	}
}

// FormatPath replaces placeholders in template with values from msg.
func FormatPath(template string, msg ListMessage) string {
	str := template

	str = strings.ReplaceAll(str, `{""}`, strconv.Quote(msg.Path))
	str = strings.ReplaceAll(str, `{"rel"}`, strconv.Quote(msg.Rel))
	str = strings.ReplaceAll(str, `{"base"}`, strconv.Quote(msg.Name))
	str = strings.ReplaceAll(str, `{"dir"}`, strconv.Quote(msg.Dir))

	str = strings.ReplaceAll(str, "{}", msg.Path)
	str = strings.ReplaceAll(str, "{rel}", msg.Rel)
	str = strings.ReplaceAll(str, "{base}", msg.Name)
	str = strings.ReplaceAll(str, "{dir}", msg.Dir)
	str = strings.ReplaceAll(str, "{ext}", msg.Ext)

	return str
}

// PrintPaths writes one formatted line per path, in order.
func PrintPaths(out io.Writer, root string, paths []string, template string) error {
	if template == "" {
		template = DefaultListFormat
	}
	for _, path := range paths {
		if _, err := fmt.Fprintln(out, FormatPath(template, NewListMessage(root, path))); err != nil {
			return fmt.Errorf("writing path list: %w", err)
		}
	}
	return nil
}
