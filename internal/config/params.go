// Package config holds the run parameters shared by the CLI and the form.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Defaults used when neither flags, environment nor a config file set a value.
var (
	DefaultRoot        = "src"
	DefaultInclude     = []string{"swift", "txt"}
	DefaultExclude     = []string{"private"}
	DefaultPattern     = `Constants\.c(\d+)\.rawValue`
	DefaultReplacement = "Constants.c$1"
)

// ErrEmptyRoot is returned by Validate when no root path is given.
var ErrEmptyRoot = errors.New("root path is empty")

// Params are the five values a run needs.
type Params struct {
	Root        string   `json:"root" yaml:"root"`
	Include     []string `json:"include" yaml:"include"`
	Exclude     []string `json:"exclude" yaml:"exclude"`
	Pattern     string   `json:"pattern" yaml:"pattern"`
	Replacement string   `json:"replacement" yaml:"replacement"`
}

// Validate checks what can be checked without touching the filesystem.
// Pattern errors are reported by subst.Compile.
func (p Params) Validate() error {
	if strings.TrimSpace(p.Root) == "" {
		return ErrEmptyRoot
	}
	return nil
}

// ParseList splits a user-typed list. Commas and whitespace both separate
// items and shell quoting keeps spaces inside an item.
func ParseList(s string) ([]string, error) {
	items, err := shlex.Split(strings.ReplaceAll(s, ",", " "))
	if err != nil {
		return nil, fmt.Errorf("parsing list %q: %w", s, err)
	}
	out := items[:0]
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out, nil
}

// ParseExtensions is ParseList with a single leading dot removed from each
// item, so ".swift" and "swift" name the same extension.
func ParseExtensions(s string) ([]string, error) {
	items, err := ParseList(s)
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		items[i] = strings.TrimPrefix(item, ".")
	}
	return items, nil
}

var listEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// JoinList renders items so that ParseList gives them back. Items cannot
// contain commas; ParseList always treats a comma as a separator.
func JoinList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		if strings.ContainsAny(item, " \t'\"\\#") {
			quoted[i] = `"` + listEscaper.Replace(item) + `"`
		} else {
			quoted[i] = item
		}
	}
	return strings.Join(quoted, ", ")
}
