package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/KaramelBytes/triplefit/internal/report"
	"github.com/KaramelBytes/triplefit/internal/search"
	"github.com/spf13/cobra"
)

var searchTarget float64

var searchCmd = &cobra.Command{
	Use:   "search --target <value> <n> [n...]",
	Short: "Find the (n₁ × n₂)/n₃ combination closest to a target for one pool",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("target") {
			return fmt.Errorf("--target is required")
		}
		numbers, err := parseFloats(args)
		if err != nil {
			return err
		}
		m, err := search.New(slog.Default()).Find("cli", numbers, searchTarget)
		if err != nil {
			return err
		}
		p := currentConfig().Precision
		t := &report.Table{Rows: [][]string{
			{"Combination:", m.Combination.String()},
			{"Result (r):", fmt.Sprintf("%.*e", p.Scientific, m.Result)},
			{"Target (t):", fmt.Sprintf("%.*e", p.Scientific, searchTarget)},
			{"ε (%):", fmt.Sprintf("%.*f", p.Error, m.Error)},
			{"Triples scored:", strconv.Itoa(m.Evaluated)},
		}}
		return t.Render(cmd.OutOrStdout())
	},
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", a, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Float64VarP(&searchTarget, "target", "t", 0, "target value for (n₁ × n₂)/n₃")
}
