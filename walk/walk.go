// Package walk is the library face of resub: select files under a root by
// extension and excluded names, then rewrite them through one
// regular-expression substitution.
package walk

import (
	"github.com/TFMV/resub/internal/subst"
	internal "github.com/TFMV/resub/internal/walk"
	"go.uber.org/zap"
)

// Re-export the types callers need from the internal packages.
type (
	// FilterSpec holds the included extensions and excluded names.
	FilterSpec = internal.FilterSpec

	// Stats holds traversal counters for one walk.
	Stats = internal.Stats

	// Walker enumerates selectable files under a root.
	Walker = internal.Walker

	// Rule is a compiled search pattern plus a replacement template.
	Rule = subst.Rule

	// PatternError reports a rule that cannot be compiled.
	PatternError = subst.PatternError

	// Engine applies a Rule to files one at a time.
	Engine = subst.Engine

	// EngineOptions configures an Engine.
	EngineOptions = subst.Options

	// FileResult is the outcome for one file.
	FileResult = subst.FileResult

	// FileError records a per-file read or write failure.
	FileError = subst.FileError

	// Summary aggregates a batch.
	Summary = subst.Summary

	// WatchOptions configures Walker.Watch.
	WatchOptions = internal.WatchOptions
)

// Outcomes and error sentinels.
const (
	OutcomeUnchanged = subst.OutcomeUnchanged
	OutcomeRewritten = subst.OutcomeRewritten
	OutcomeFailed    = subst.OutcomeFailed
)

var (
	ErrRead         = subst.ErrRead
	ErrWrite        = subst.ErrWrite
	ErrUnknownGroup = subst.ErrUnknownGroup

	ErrNothingToWatch = internal.ErrNothingToWatch
)

// NewFilterSpec builds a FilterSpec. Extensions carry no leading dot.
func NewFilterSpec(include, exclude []string) FilterSpec {
	return internal.NewFilterSpec(include, exclude)
}

// NewWalker returns a Walker; logger may be nil.
func NewWalker(spec FilterSpec, logger *zap.Logger) *Walker {
	return internal.NewWalker(spec, logger)
}

// Walk returns the selectable files under root in walk order.
func Walk(root string, spec FilterSpec) []string {
	return internal.Walk(root, spec)
}

// Compile compiles a search pattern and checks the template's group references.
func Compile(pattern, template string) (*Rule, error) {
	return subst.Compile(pattern, template)
}

// NewEngine returns an Engine configured by opts.
func NewEngine(opts EngineOptions) *Engine {
	return subst.NewEngine(opts)
}

// Replace walks root with spec and applies pattern/template to every
// selected file. Only a bad pattern or template returns an error; file
// failures are recorded in the Summary.
func Replace(root string, spec FilterSpec, pattern, template string) (Summary, error) {
	rule, err := subst.Compile(pattern, template)
	if err != nil {
		return Summary{}, err
	}
	return subst.NewEngine(subst.Options{}).Apply(internal.Walk(root, spec), rule), nil
}
