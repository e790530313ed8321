package cmd

import (
	"fmt"

	"github.com/KaramelBytes/triplefit/internal/report"
	"github.com/KaramelBytes/triplefit/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <error%> <error%> [error%...]",
	Short: "Compute error statistics and tolerance counts for a list of percentage errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		errs, err := parseFloats(args)
		if err != nil {
			return err
		}
		s, err := stats.Compute(errs)
		if err != nil {
			return err
		}
		c := currentConfig()
		pct := func(v float64) string { return fmt.Sprintf("%.*f", c.Precision.Error, v) }
		t := &report.Table{Headers: []string{"Statistic", "Value"}, Rows: [][]string{
			{"mean", pct(s.Mean)},
			{"median", pct(s.Median)},
			{"std dev", pct(s.StdDev)},
			{"variance", pct(s.Variance)},
			{"min", pct(s.Min)},
			{"max", pct(s.Max)},
			{"range", pct(s.Range)},
			{"Q1", pct(s.Q1)},
			{"Q3", pct(s.Q3)},
			{"IQR", pct(s.IQR)},
		}}
		out := cmd.OutOrStdout()
		if err := t.Render(out); err != nil {
			return err
		}
		fmt.Fprintln(out)
		for _, tc := range c.Thresholds.Count(errs) {
			fmt.Fprintf(out, "ε < %.1f%%: %d/%d (%.1f%%)\n", tc.Threshold, tc.Count, tc.Total, tc.Percent())
		}
		r := c.Thresholds.Classify(s.Max)
		fmt.Fprintf(out, "Rating: %s (%s)\n", r, r.Assessment())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
