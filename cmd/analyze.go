package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/KaramelBytes/triplefit/internal/analysis"
	cfgpkg "github.com/KaramelBytes/triplefit/internal/config"
	"github.com/KaramelBytes/triplefit/internal/dataset"
	"github.com/KaramelBytes/triplefit/internal/report"
	"github.com/KaramelBytes/triplefit/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaFormat     string
	anaOutputPath string
	anaWorkers    int
	anaPauseMs    int
	anaNoInput    bool
	// Layout overrides
	anaSheet      string
	anaTargetRow  int
	anaDataRow    int
	anaSets       int
	anaColumnStep int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Search every dataset in a CSV/XLSX file and report error statistics",
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
		format, err := report.ParseFormat(c.Format)
		if err != nil {
			return err
		}

		col, err := loadCollection(path, c.Layout)
		if err != nil {
			return err
		}
		a, err := analysis.New(analysis.Options{
			Thresholds: c.Thresholds,
			Workers:    c.Workers,
			Logger:     slog.Default(),
		})
		if err != nil {
			return err
		}
		rep, err := a.Run(cmd.Context(), col)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		ropt := report.Options{Precision: c.Precision, Pause: c.Pause()}
		inputSection := col
		if anaNoInput {
			inputSection = nil
		}
		if anaOutputPath != "" {
			var buf bytes.Buffer
			if err := report.Write(&buf, format, rep, inputSection, report.Options{Precision: c.Precision}); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(anaOutputPath, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s (rating: %s)\n", format, anaOutputPath, rep.Rating)
			return nil
		}
		return report.Write(cmd.OutOrStdout(), format, rep, inputSection, ropt)
	},
}

// effectiveConfig applies command-line overrides to a copy of the loaded config.
func effectiveConfig(cmd *cobra.Command) (*cfgpkg.Global, error) {
	c := *currentConfig()
	f := cmd.Flags()
	if f.Changed("format") {
		c.Format = anaFormat
	}
	if f.Changed("workers") {
		c.Workers = anaWorkers
	}
	if f.Changed("pause-ms") {
		c.PauseMs = anaPauseMs
	}
	if f.Changed("sheet") {
		c.Layout.Sheet = anaSheet
	}
	if f.Changed("target-row") {
		c.Layout.TargetRow = anaTargetRow - 1
	}
	if f.Changed("data-row") {
		c.Layout.DataStartRow = anaDataRow - 1
	}
	if f.Changed("sets") {
		c.Layout.Sets = anaSets
	}
	if f.Changed("column-step") {
		c.Layout.ColumnStep = anaColumnStep
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// loadCollection turns a missing input into a short user-facing message.
func loadCollection(path string, layout dataset.Layout) (*dataset.Collection, error) {
	col, err := dataset.Load(path, layout)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("input file not found: %s", path)
		}
		return nil, err
	}
	slog.Debug("dataset loaded", "path", path, "sets", col.Len(), "data_points", col.Summary().DataPoints)
	return col, nil
}

// addLayoutFlags registers sheet layout overrides. Rows are 1-based on the command line.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&anaSheet, "sheet", "", "XLSX: worksheet name (default first sheet)")
	cmd.Flags().IntVar(&anaTargetRow, "target-row", 4, "1-based row holding target values")
	cmd.Flags().IntVar(&anaDataRow, "data-row", 7, "1-based first row of candidate numbers")
	cmd.Flags().IntVar(&anaSets, "sets", 8, "number of side-by-side datasets")
	cmd.Flags().IntVar(&anaColumnStep, "column-step", 2, "columns between consecutive datasets")
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "text", "output format: text|markdown|json|yaml")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().IntVar(&anaWorkers, "workers", 1, "datasets searched concurrently")
	analyzeCmd.Flags().IntVar(&anaPauseMs, "pause-ms", 0, "pause between report sections in milliseconds")
	analyzeCmd.Flags().BoolVar(&anaNoInput, "no-input", false, "omit the input verification section")
	addLayoutFlags(analyzeCmd)
}
