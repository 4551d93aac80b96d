package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/TFMV/resub/internal/config"
	"github.com/TFMV/resub/internal/fsutil"
	"github.com/TFMV/resub/internal/logging"
	"github.com/TFMV/resub/internal/subst"
	"github.com/TFMV/resub/internal/walk"
)

var (
	cfgFile string
	version = "0.1.0"
)

// rootCmd runs one non-interactive batch when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "resub [options] [root]",
	Short: "Regular-expression search and replace across a directory tree",
	Long: `resub walks a directory tree, selects files by extension while pruning
excluded names, and rewrites every selected file through one regular
expression substitution. Files whose content would not change are never
written.

Replacement templates use $1 or ${1} for numbered groups, ${name} for named
groups and $$ for a literal dollar sign.

Examples:
  resub src
  resub --include=swift --exclude=private,Pods --pattern='Constants\.c(\d+)\.rawValue' --replace='Constants.c$1' src
  resub --list --format=json ./Sources`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParams(args)
		if err != nil {
			return err
		}
		logger := newLogger()
		defer logger.Sync()
		return runBatch(cmd, params, logger, viper.GetBool("list"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// ctx is cancelled on SIGINT/SIGTERM and stops a running watch.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.resub.yaml)")
	rootCmd.PersistentFlags().StringSlice("include", config.DefaultInclude, "File extensions to include, without the dot (comma-separated)")
	rootCmd.PersistentFlags().StringSlice("exclude", config.DefaultExclude, "File or directory names to prune at any depth (comma-separated)")
	rootCmd.PersistentFlags().String("pattern", config.DefaultPattern, "Search regular expression")
	rootCmd.PersistentFlags().String("replace", config.DefaultReplacement, "Replacement template")
	rootCmd.PersistentFlags().Bool("in-place", false, "Rewrite files in place instead of via a temp file and rename")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("silent", false, "Disable all logging except errors")
	rootCmd.PersistentFlags().String("format", "text", "Summary format (text|json|yaml)")
	rootCmd.Flags().Bool("list", false, "Print the selected paths before substituting")

	viper.BindPFlag("include", rootCmd.PersistentFlags().Lookup("include"))
	viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	viper.BindPFlag("pattern", rootCmd.PersistentFlags().Lookup("pattern"))
	viper.BindPFlag("replace", rootCmd.PersistentFlags().Lookup("replace"))
	viper.BindPFlag("in-place", rootCmd.PersistentFlags().Lookup("in-place"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("silent", rootCmd.PersistentFlags().Lookup("silent"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("list", rootCmd.Flags().Lookup("list"))

	viper.SetDefault("root", config.DefaultRoot)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			// Search config in home directory with name ".resub" (without extension).
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".resub")
	}

	viper.SetEnvPrefix("resub")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadParams merges the positional root with flags, environment and config.
func loadParams(args []string) (config.Params, error) {
	include, err := config.ParseExtensions(strings.Join(viper.GetStringSlice("include"), ","))
	if err != nil {
		return config.Params{}, err
	}
	exclude, err := config.ParseList(strings.Join(viper.GetStringSlice("exclude"), ","))
	if err != nil {
		return config.Params{}, err
	}

	params := config.Params{
		Root:        viper.GetString("root"),
		Include:     include,
		Exclude:     exclude,
		Pattern:     viper.GetString("pattern"),
		Replacement: viper.GetString("replace"),
	}
	if len(args) > 0 {
		params.Root = args[0]
	}
	return params, nil
}

// newLogger builds the run logger from the verbosity flags and tags it with
// a fresh run id.
func newLogger() *zap.Logger {
	level := logging.LogLevelInfo
	if viper.GetBool("verbose") {
		level = logging.LogLevelDebug
	} else if viper.GetBool("silent") {
		level = logging.LogLevelError
	}
	return logging.New(level).With(zap.String("run_id", uuid.NewString()))
}

// writer picks the write strategy for rewritten files.
func writer() subst.WriteFunc {
	if viper.GetBool("in-place") {
		return fsutil.WriteInPlace
	}
	return fsutil.AtomicWrite
}

// prepare compiles the rule and locks the tree. Both failures are fatal and
// happen before any file is read.
func prepare(params config.Params) (*subst.Rule, *fsutil.RunLock, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	rule, err := subst.Compile(params.Pattern, params.Replacement)
	if err != nil {
		return nil, nil, err
	}
	lock, err := fsutil.AcquireRunLock(params.Root)
	if err != nil {
		return nil, nil, err
	}
	return rule, lock, nil
}

// runBatch walks params.Root and applies the rule to every selected file.
func runBatch(cmd *cobra.Command, params config.Params, logger *zap.Logger, listPaths bool) error {
	rep, err := newReporter(cmd, viper.GetString("format"))
	if err != nil {
		return err
	}

	rule, lock, err := prepare(params)
	if err != nil {
		return err
	}
	defer lock.Release()

	logger.Debug("starting run",
		zap.String("root", params.Root),
		zap.Strings("include", params.Include),
		zap.Strings("exclude", params.Exclude),
		zap.Stringer("rule", rule),
	)

	walker := walk.NewWalker(walk.NewFilterSpec(params.Include, params.Exclude), logger)
	paths, _ := walker.Walk(params.Root)
	if listPaths {
		if err := walk.PrintPaths(cmd.OutOrStdout(), params.Root, paths, walk.DefaultListFormat); err != nil {
			return err
		}
	}

	engine := subst.NewEngine(subst.Options{
		Write:    writer(),
		Logger:   logger,
		OnResult: rep.fileResult,
	})
	return rep.summary(engine.Apply(paths, rule))
}
