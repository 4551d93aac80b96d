package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/TFMV/resub/internal/form"
)

// ErrNoTerminal is returned by the form command when stdin is not a terminal.
var ErrNoTerminal = errors.New("the form needs an interactive terminal; use resub with flags instead")

// formCmd represents the form command
var formCmd = &cobra.Command{
	Use:   "form [root]",
	Short: "Enter the run parameters in an interactive form",
	Long: `Open a terminal form with five fields: root path, included extensions,
excluded names, search pattern and replacement. Fields start with the values
from flags, environment and config file.

Keys:
  enter, tab, down    next field (enter on the last field runs the substitution)
  shift+tab, up       previous field
  backspace           delete the last character
  esc, ctrl+c         cancel without touching any file`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			return ErrNoTerminal
		}

		defaults, err := loadParams(args)
		if err != nil {
			return err
		}

		params, ok, err := form.Run(cmd.Context(), defaults, nil, nil)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		logger := newLogger()
		defer logger.Sync()
		return runBatch(cmd, params, logger, false)
	},
}

func init() {
	rootCmd.AddCommand(formCmd)
}
