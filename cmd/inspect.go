package cmd

import (
	"github.com/KaramelBytes/triplefit/internal/report"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show the parsed targets and number pools without searching",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}
		path := c.Input
		if len(args) == 1 {
			path = args[0]
		}
		col, err := loadCollection(path, c.Layout)
		if err != nil {
			return err
		}
		return report.Inspect(cmd.OutOrStdout(), col, report.Options{Precision: c.Precision})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addLayoutFlags(inspectCmd)
}
