package subst

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/TFMV/resub/internal/fsutil"
	"github.com/TFMV/resub/internal/logging"
)

// Sentinels matched by a FileError through errors.Is.
var (
	ErrRead  = errors.New("file read failed")
	ErrWrite = errors.New("file write failed")
)

// Op names the step of a file's processing that failed.
type Op string

const (
	OpRead  Op = "read"
	OpWrite Op = "write"
)

// FileError records a per-file failure. It never aborts a batch.
type FileError struct {
	Path string
	Op   Op
	Err  error
}

func (e *FileError) Error() string {
	// os errors already carry the path.
	if pe, ok := e.Err.(*fs.PathError); ok && pe.Path == e.Path {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, pe.Op, pe.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrRead) and errors.Is(err, ErrWrite) work.
func (e *FileError) Is(target error) bool {
	switch target {
	case ErrRead:
		return e.Op == OpRead
	case ErrWrite:
		return e.Op == OpWrite
	}
	return false
}

// Outcome is what happened to one file.
type Outcome string

const (
	OutcomeUnchanged Outcome = "unchanged" // Output identical to input, not written
	OutcomeRewritten Outcome = "rewritten"
	OutcomeFailed    Outcome = "failed"
)

// FileResult is the independently decided outcome for one path.
type FileResult struct {
	Path         string     `json:"path" yaml:"path"`
	Outcome      Outcome    `json:"outcome" yaml:"outcome"`
	Replacements int        `json:"replacements" yaml:"replacements"`
	Error        string     `json:"error,omitempty" yaml:"error,omitempty"`
	Err          *FileError `json:"-" yaml:"-"`
}

// Summary aggregates a batch.
type Summary struct {
	Files     []FileResult `json:"files" yaml:"files"`
	Rewritten int          `json:"rewritten" yaml:"rewritten"`
	Unchanged int          `json:"unchanged" yaml:"unchanged"`
	Failed    int          `json:"failed" yaml:"failed"`
}

func (s *Summary) add(res FileResult) {
	s.Files = append(s.Files, res)
	switch res.Outcome {
	case OutcomeRewritten:
		s.Rewritten++
	case OutcomeUnchanged:
		s.Unchanged++
	case OutcomeFailed:
		s.Failed++
	}
}

// Err joins every per-file failure, or returns nil.
func (s Summary) Err() error {
	var errs []error
	for _, f := range s.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errors.Join(errs...)
}

// ReadFunc loads a file as text.
type ReadFunc func(path string) (string, error)

// WriteFunc replaces a file's full content.
type WriteFunc func(path string, data []byte) error

// Options configures an Engine. Zero values pick the defaults.
type Options struct {
	Read     ReadFunc         // Defaults to fsutil.ReadText
	Write    WriteFunc        // Defaults to fsutil.AtomicWrite
	Logger   *zap.Logger      // Defaults to a no-op logger
	OnResult func(FileResult) // Called as soon as each file's outcome is known
}

// Engine applies a Rule to files one at a time.
type Engine struct {
	read     ReadFunc
	write    WriteFunc
	logger   *zap.Logger
	onResult func(FileResult)
}

// NewEngine returns an Engine configured by opts.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		read:     opts.Read,
		write:    opts.Write,
		logger:   logging.OrNop(opts.Logger),
		onResult: opts.OnResult,
	}
	if e.read == nil {
		e.read = fsutil.ReadText
	}
	if e.write == nil {
		e.write = fsutil.AtomicWrite
	}
	return e
}

// Apply processes paths in order. A failure on one file is recorded and the
// next file is processed; earlier writes are never undone.
func (e *Engine) Apply(paths []string, rule *Rule) Summary {
	summary := Summary{Files: make([]FileResult, 0, len(paths))}

	e.logger.Debug("applying rule",
		zap.Stringer("rule", rule),
		zap.Int("files", len(paths)),
	)

	for _, path := range paths {
		summary.add(e.ApplyFile(path, rule))
	}

	e.logger.Debug("substitution finished",
		zap.Int("rewritten", summary.Rewritten),
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("failed", summary.Failed),
	)
	return summary
}

// ApplyFile reads path, substitutes and writes it back if the content changed.
func (e *Engine) ApplyFile(path string, rule *Rule) FileResult {
	res := e.applyFile(path, rule)
	if res.Err != nil {
		res.Error = res.Err.Error()
	}
	if e.onResult != nil {
		e.onResult(res)
	}
	return res
}

func (e *Engine) applyFile(path string, rule *Rule) FileResult {
	content, err := e.read(path)
	if err != nil {
		e.logger.Debug("read failed", zap.String("path", path), zap.Error(err))
		return FileResult{
			Path:    path,
			Outcome: OutcomeFailed,
			Err:     &FileError{Path: path, Op: OpRead, Err: err},
		}
	}

	out, n := rule.Replace(content)
	if out == content {
		e.logger.Debug("unchanged", zap.String("path", path), zap.Int("matches", n))
		return FileResult{Path: path, Outcome: OutcomeUnchanged, Replacements: n}
	}

	if err := e.write(path, []byte(out)); err != nil {
		e.logger.Debug("write failed", zap.String("path", path), zap.Error(err))
		return FileResult{
			Path:         path,
			Outcome:      OutcomeFailed,
			Replacements: n,
			Err:          &FileError{Path: path, Op: OpWrite, Err: err},
		}
	}

	e.logger.Debug("rewritten", zap.String("path", path), zap.Int("replacements", n))
	return FileResult{Path: path, Outcome: OutcomeRewritten, Replacements: n}
}
