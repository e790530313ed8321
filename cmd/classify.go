package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <max-error%>",
	Short: "Rate a maximum percentage error against the configured thresholds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid max error %q: %w", args[0], err)
		}
		r := currentConfig().Thresholds.Classify(v)
		fmt.Fprintf(cmd.OutOrStdout(), "Rating: %s (%s)\n", r, r.Assessment())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
