package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/TFMV/resub/internal/subst"
)

// reporter prints per-file failures on the error stream as they happen and
// the batch summary on the output stream.
type reporter struct {
	out      io.Writer
	errOut   io.Writer
	format   string
	errColor *color.Color
	okColor  *color.Color
}

func newReporter(cmd *cobra.Command, format string) (*reporter, error) {
	switch format {
	case "", "text", "json", "yaml":
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}

	r := &reporter{
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		format:   format,
		errColor: color.New(color.FgRed),
		okColor:  color.New(color.FgGreen),
	}
	if !isTerminal(r.errOut) {
		r.errColor.DisableColor()
	}
	if !isTerminal(r.out) {
		r.okColor.DisableColor()
	}
	return r, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// fileResult reports a failed file. Successful files are only summarised.
func (r *reporter) fileResult(res subst.FileResult) {
	if res.Err == nil {
		return
	}
	r.errColor.Fprintf(r.errOut, "error: %v\n", res.Err)
}

func (r *reporter) summary(s subst.Summary) error {
	switch r.format {
	case "json":
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(r.out)
		defer enc.Close()
		return enc.Encode(s)
	default:
		_, err := r.okColor.Fprintf(r.out, "Done: %d rewritten, %d unchanged, %d failed\n",
			s.Rewritten, s.Unchanged, s.Failed)
		return err
	}
}
