package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/triplefit/internal/config"
	"github.com/KaramelBytes/triplefit/internal/report"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set triplefit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input: %s\n", c.Input)
		fmt.Fprintf(out, "format: %s\n", c.Format)
		fmt.Fprintf(out, "workers: %d\n", c.Workers)
		if c.PauseMs > 0 {
			fmt.Fprintf(out, "pause_ms: %d\n", c.PauseMs)
		}
		fmt.Fprintf(out, "layout.target_row: %d\n", c.Layout.TargetRow)
		fmt.Fprintf(out, "layout.data_start_row: %d\n", c.Layout.DataStartRow)
		fmt.Fprintf(out, "layout.sets: %d\n", c.Layout.Sets)
		fmt.Fprintf(out, "layout.column_step: %d\n", c.Layout.ColumnStep)
		if c.Layout.Sheet != "" {
			fmt.Fprintf(out, "layout.sheet: %s\n", c.Layout.Sheet)
		}
		fmt.Fprintf(out, "thresholds.exceptional: %.3f\n", c.Thresholds.Exceptional)
		fmt.Fprintf(out, "thresholds.superior: %.3f\n", c.Thresholds.Superior)
		fmt.Fprintf(out, "thresholds.satisfactory: %.3f\n", c.Thresholds.Satisfactory)
		fmt.Fprintf(out, "precision.decimal: %d\n", c.Precision.Decimal)
		fmt.Fprintf(out, "precision.scientific: %d\n", c.Precision.Scientific)
		fmt.Fprintf(out, "precision.error: %d\n", c.Precision.Error)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := *currentConfig()
		atoi := func() (int, error) {
			i, err := strconv.Atoi(val)
			if err != nil {
				return 0, fmt.Errorf("invalid int for %s: %v", key, val)
			}
			return i, nil
		}
		atof := func() (float64, error) {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid float for %s: %v", key, val)
			}
			return f, nil
		}
		var err error
		switch key {
		case "input":
			c.Input = val
		case "format":
			var f report.Format
			f, err = report.ParseFormat(val)
			c.Format = string(f)
		case "workers":
			c.Workers, err = atoi()
		case "pause_ms":
			c.PauseMs, err = atoi()
		case "layout.target_row":
			c.Layout.TargetRow, err = atoi()
		case "layout.data_start_row":
			c.Layout.DataStartRow, err = atoi()
		case "layout.sets":
			c.Layout.Sets, err = atoi()
		case "layout.column_step":
			c.Layout.ColumnStep, err = atoi()
		case "layout.sheet":
			c.Layout.Sheet = val
		case "thresholds.exceptional":
			c.Thresholds.Exceptional, err = atof()
		case "thresholds.superior":
			c.Thresholds.Superior, err = atof()
		case "thresholds.satisfactory":
			c.Thresholds.Satisfactory, err = atof()
		case "precision.decimal":
			c.Precision.Decimal, err = atoi()
		case "precision.scientific":
			c.Precision.Scientific, err = atoi()
		case "precision.error":
			c.Precision.Error, err = atoi()
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&c, cfgFile); err != nil {
			return err
		}
		cfg = &c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
