package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TFMV/resub/internal/walk"
)

var listCmd = &cobra.Command{
	Use:   "list [options] [root]",
	Short: "Print the files a run would process",
	Long: `Print every file a run would process, in walk order, without reading or
changing any of them.

Format placeholders:
  {}      path            {""}      quoted path
  {rel}   path from root  {"rel"}   quoted relative path
  {base}  file name       {"base"}  quoted file name
  {dir}   directory       {"dir"}   quoted directory
  {ext}   extension

Examples:
  resub list src
  resub list --include=swift,m --exclude=Pods --template='{rel}' .`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParams(args)
		if err != nil {
			return err
		}
		if err := params.Validate(); err != nil {
			return err
		}

		logger := newLogger()
		defer logger.Sync()

		walker := walk.NewWalker(walk.NewFilterSpec(params.Include, params.Exclude), logger)
		paths, _ := walker.Walk(params.Root)
		return walk.PrintPaths(cmd.OutOrStdout(), params.Root, paths, viper.GetString("list-template"))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("template", walk.DefaultListFormat, "Output template for each path")

	viper.BindPFlag("list-template", listCmd.Flags().Lookup("template"))
}
