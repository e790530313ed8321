// Package report renders analysis results as terminal tables, Markdown,
// JSON or YAML.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/KaramelBytes/triplefit/internal/analysis"
	"github.com/KaramelBytes/triplefit/internal/dataset"
)

const (
	separator = "============================================================"
	setPrefix = "Set "
)

// Precision sets the number of digits used when formatting values.
type Precision struct {
	Decimal    int `mapstructure:"decimal" yaml:"decimal"`
	Scientific int `mapstructure:"scientific" yaml:"scientific"`
	Error      int `mapstructure:"error" yaml:"error"`
}

// DefaultPrecision returns 2 decimals, 2 mantissa digits and 4 error digits.
func DefaultPrecision() Precision {
	return Precision{Decimal: 2, Scientific: 2, Error: 4}
}

// Options controls the text renderer.
type Options struct {
	Precision Precision
	// Pause is slept between sections; zero disables pacing.
	Pause time.Duration
}

// DefaultOptions returns DefaultPrecision and no pause.
func DefaultOptions() Options {
	return Options{Precision: DefaultPrecision()}
}

type textWriter struct {
	w   io.Writer
	opt Options
	err error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *textWriter) table(t *Table) {
	if tw.err != nil {
		return
	}
	tw.err = t.Render(tw.w)
}

func (tw *textWriter) pause() {
	if tw.opt.Pause > 0 {
		time.Sleep(tw.opt.Pause)
	}
}

func (tw *textWriter) step(title string) {
	tw.printf("\n%s\n%s\n", title, separator)
}

func (tw *textWriter) dec(v float64) string {
	return fmt.Sprintf("%.*f", tw.opt.Precision.Decimal, v)
}

func (tw *textWriter) sci(v float64) string {
	return fmt.Sprintf("%.*e", tw.opt.Precision.Scientific, v)
}

func (tw *textWriter) pct(v float64) string {
	return fmt.Sprintf("%.*f", tw.opt.Precision.Error, v)
}

// Inspect writes the input verification section: targets and pools for
// every set side by side, followed by a short summary.
func Inspect(w io.Writer, c *dataset.Collection, opt Options) error {
	tw := &textWriter{w: w, opt: opt}
	tw.inspect(c)
	return tw.err
}

func (tw *textWriter) inspect(c *dataset.Collection) {
	sets := c.Datasets()
	sum := c.Summary()

	tw.step("STEP 0: INPUT DATA VERIFICATION")
	width := len(sets) * 2
	t := &Table{Style: Grid, Headers: make([]string, 0, width)}
	for _, d := range sets {
		t.Headers = append(t.Headers, setPrefix+d.Label, "")
	}
	banner := func(s string) []string {
		row := make([]string, width)
		row[0] = s
		return row
	}
	t.Rows = append(t.Rows, banner("TARGET VALUES"))
	targets := make([]string, 0, width)
	for _, d := range sets {
		targets = append(targets, tw.dec(d.Target), "")
	}
	t.Rows = append(t.Rows, targets, banner("AVAILABLE NUMBERS"))
	for i := 0; i < sum.MaxNumbers; i++ {
		row := make([]string, 0, width)
		for _, d := range sets {
			v := ""
			if i < len(d.Numbers) {
				v = tw.dec(d.Numbers[i])
			}
			row = append(row, v, "")
		}
		t.Rows = append(t.Rows, row)
	}
	tw.printf("\nDataset Structure:\n")
	tw.table(t)

	tw.printf("\nDataset Summary:\n")
	span := ""
	if len(sets) > 0 {
		span = fmt.Sprintf(" (%s through %s)", sets[0].Label, sets[len(sets)-1].Label)
	}
	tw.printf("- Number of Sets: %d%s\n", sum.Sets, span)
	tw.printf("- Numbers per Set: %d available values\n", sum.MaxNumbers)
	tw.printf("- Total Data Points: %d\n", sum.DataPoints)
	tw.pause()
}

// Text writes the full five-step report. c may be nil to skip the input
// verification section.
func Text(w io.Writer, rep *analysis.Report, c *dataset.Collection, opt Options) error {
	tw := &textWriter{w: w, opt: opt}
	if c != nil {
		tw.inspect(c)
	}
	tw.results(rep)
	tw.statistics(rep)
	tw.precision(rep)
	tw.conclusion(rep)
	tw.printf("\n")
	return tw.err
}

func (tw *textWriter) results(rep *analysis.Report) {
	tw.step("STEP 1: DATASET VALIDATION")
	t := &Table{Style: Simple, Headers: []string{"Dataset", "Target (t)", "Result (r)", "ε (%)", "|r - t|"}}
	for _, o := range rep.Outcomes {
		t.Rows = append(t.Rows, []string{
			setPrefix + o.Label,
			tw.sci(o.Target),
			tw.sci(o.Match.Result),
			tw.pct(o.Match.Error),
			tw.sci(o.Delta()),
		})
	}
	tw.printf("\nResults:\n")
	tw.table(t)
	tw.pause()
}

func (tw *textWriter) statistics(rep *analysis.Report) {
	s := rep.Statistics
	tw.step("STEP 2: STATISTICAL ERROR ANALYSIS")
	t := &Table{Style: Simple, Rows: [][]string{
		{"Central Tendency", "μ = " + tw.pct(s.Mean) + "%", "M = " + tw.pct(s.Median) + "%"},
		{"Dispersion", "σ = " + tw.pct(s.StdDev) + "%", "σ² = " + tw.pct(s.Variance)},
		{"Range", "min = " + tw.pct(s.Min) + "%", "max = " + tw.pct(s.Max) + "%"},
		{"Quartiles", "Q₁ = " + tw.pct(s.Q1) + "%", "Q₃ = " + tw.pct(s.Q3) + "%"},
		{"Spread", "IQR = " + tw.pct(s.IQR) + "%", "R = " + tw.pct(s.Range) + "%"},
	}}
	tw.printf("\nDescriptive Statistics:\n")
	tw.table(t)
	tw.pause()
}

func (tw *textWriter) precision(rep *analysis.Report) {
	tw.step("STEP 3: PRECISION ANALYSIS")
	t := &Table{Style: Simple}
	for _, c := range rep.Tolerance {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("ε < %.1f%%", c.Threshold),
			fmt.Sprintf("%d/%d datasets", c.Count, c.Total),
			fmt.Sprintf("(%.1f%%)", c.Percent()),
		})
	}
	tw.printf("\nError Tolerance Distribution:\n")
	tw.table(t)
	tw.pause()
}

func (tw *textWriter) conclusion(rep *analysis.Report) {
	s := rep.Statistics
	tw.step("STEP 4: CONCLUSION")
	t := &Table{Style: Simple, Rows: [][]string{
		{"Reliability Rating:", rep.Rating.String()},
		{"Maximum Error (ε_max):", tw.pct(s.Max) + "%"},
		{"Mean Error (μ_ε):", tw.pct(s.Mean) + "%"},
		{"Standard Deviation (σ_ε):", tw.pct(s.StdDev) + "%"},
		{"Assessment:", rep.Assessment},
	}}
	tw.printf("\nFinal Results:\n")
	tw.table(t)
	tw.pause()
}
