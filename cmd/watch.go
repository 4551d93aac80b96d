package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/TFMV/resub/internal/subst"
	"github.com/TFMV/resub/internal/walk"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [options] [root]",
	Short: "Keep a tree rewritten as files change",
	Long: `Run one batch, then watch the tree and apply the substitution again to
every selected file that is created or written. Excluded directories are not
watched. Files are still processed one at a time.

Examples:
  resub watch src
  resub watch --timeout=10m --pattern='TODO\((\w+)\)' --replace='TODO(@$1)' .`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParams(args)
		if err != nil {
			return err
		}
		rep, err := newReporter(cmd, viper.GetString("format"))
		if err != nil {
			return err
		}

		logger := newLogger()
		defer logger.Sync()

		rule, lock, err := prepare(params)
		if err != nil {
			return err
		}
		defer lock.Release()

		walker := walk.NewWalker(walk.NewFilterSpec(params.Include, params.Exclude), logger)
		engine := subst.NewEngine(subst.Options{
			Write:    writer(),
			Logger:   logger,
			OnResult: rep.fileResult,
		})

		paths, _ := walker.Walk(params.Root)
		if err := rep.summary(engine.Apply(paths, rule)); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		opts := walk.WatchOptions{
			Timeout: viper.GetDuration("watch-timeout"),
			Ready: func(dirs []string) {
				fmt.Fprintf(out, "Watching %s (%d directories) for changes...\n", params.Root, len(dirs))
				fmt.Fprintln(out, "Press Ctrl+C to exit.")
			},
		}
		return walker.Watch(cmd.Context(), params.Root, opts, func(ctx context.Context, path string) error {
			res := engine.ApplyFile(path, rule)
			if res.Outcome == subst.OutcomeRewritten {
				logger.Info("rewritten", zap.String("path", path), zap.Int("replacements", res.Replacements))
				fmt.Fprintf(out, "%s %s\n", time.Now().Format(time.TimeOnly), path)
			}
			if res.Err != nil {
				return res.Err
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Duration("timeout", 0, "Duration to watch before exiting (e.g., 1h, 30m)")

	viper.BindPFlag("watch-timeout", watchCmd.Flags().Lookup("timeout"))
}
