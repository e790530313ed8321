package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Layout locates sets inside a sheet. Row and column indices are zero-based.
type Layout struct {
	// TargetRow holds each set's target value.
	TargetRow int `mapstructure:"target_row" yaml:"target_row"`
	// DataStartRow is the first row of candidate numbers; every row below it is read.
	DataStartRow int `mapstructure:"data_start_row" yaml:"data_start_row"`
	// Sets is the number of side-by-side sets, labelled A, B, C, ...
	Sets int `mapstructure:"sets" yaml:"sets"`
	// ColumnStep is the distance between set columns (2 leaves a spacer column).
	ColumnStep int `mapstructure:"column_step" yaml:"column_step"`
	// Sheet selects an XLSX worksheet by name; empty means the first sheet.
	Sheet string `mapstructure:"sheet" yaml:"sheet"`
}

// DefaultLayout matches the reference workbook: targets on the fourth row,
// numbers from the seventh, eight sets separated by blank columns.
func DefaultLayout() Layout {
	return Layout{TargetRow: 3, DataStartRow: 6, Sets: 8, ColumnStep: 2}
}

// Validate checks the layout for impossible values.
func (l Layout) Validate() error {
	switch {
	case l.TargetRow < 0:
		return fmt.Errorf("invalid layout: target_row must be >= 0")
	case l.DataStartRow <= l.TargetRow:
		return fmt.Errorf("invalid layout: data_start_row (%d) must follow target_row (%d)", l.DataStartRow, l.TargetRow)
	case l.Sets < 1 || l.Sets > 26:
		return fmt.Errorf("invalid layout: sets must be in [1, 26], got %d", l.Sets)
	case l.ColumnStep < 1:
		return fmt.Errorf("invalid layout: column_step must be >= 1")
	}
	return nil
}

// Label returns the label of the i-th set: A, B, C, ...
func Label(i int) string { return string(rune('A' + i)) }

// Extract builds datasets from raw rows according to the layout. Blank cells
// below DataStartRow are skipped, as are NaN markers; rows may be ragged.
// Infinite values are rejected.
func (l Layout) Extract(source string, rows [][]string) (*Collection, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if len(rows) <= l.TargetRow {
		return nil, &LoadError{Path: source, Msg: fmt.Sprintf("sheet has %d rows, target row %d is missing", len(rows), l.TargetRow+1)}
	}
	sets := make([]Dataset, 0, l.Sets)
	for i := 0; i < l.Sets; i++ {
		col := i * l.ColumnStep
		label := Label(i)
		raw := cell(rows, l.TargetRow, col)
		if missing(raw) {
			return nil, &LoadError{Path: source, Row: l.TargetRow + 1, Col: col + 1, Msg: fmt.Sprintf("set %s has no target value", label)}
		}
		target, ok := parseNumeric(raw)
		if !ok {
			return nil, &LoadError{Path: source, Row: l.TargetRow + 1, Col: col + 1, Msg: fmt.Sprintf("set %s target %q is not a number", label, raw)}
		}
		var nums []float64
		for r := l.DataStartRow; r < len(rows); r++ {
			v := cell(rows, r, col)
			if missing(v) {
				continue
			}
			x, ok := parseNumeric(v)
			if !ok {
				return nil, &LoadError{Path: source, Row: r + 1, Col: col + 1, Msg: fmt.Sprintf("set %s value %q is not a number", label, v)}
			}
			nums = append(nums, x)
		}
		sets = append(sets, Dataset{Label: label, Target: target, Numbers: nums})
	}
	return NewCollection(source, sets)
}

func cell(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return strings.TrimSpace(rows[r][c])
}

// missing reports blank cells and NaN markers, which are read as empty.
func missing(s string) bool {
	return s == "" || strings.EqualFold(s, "nan")
}

// parseNumeric accepts plain and scientific floats, strips '%', and removes
// thousands separators. A lone ',' is read as the decimal separator.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	dec, thou := '.', ','
	switch {
	case cpos >= 0 && dpos >= 0 && cpos > dpos:
		dec, thou = ',', '.'
	case cpos >= 0 && dpos < 0 && strings.Count(raw, ",") == 1 && len(raw)-cpos-1 != 3:
		dec, thou = ',', 0
	}
	if thou != 0 {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	raw = strings.ReplaceAll(raw, " ", "")
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
