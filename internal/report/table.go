package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Style selects the table border set.
type Style int

const (
	// Simple draws dashed rules under the header only.
	Simple Style = iota
	// Grid draws full borders around every cell.
	Grid
)

// widthCond measures Greek and superscript symbols as single columns
// regardless of the terminal locale.
var widthCond = &runewidth.Condition{EastAsianWidth: false}

// Table is a plain-text table. Cells that parse as numbers are right-aligned.
type Table struct {
	Headers []string
	Rows    [][]string
	Style   Style
}

func (t *Table) widths() []int {
	n := len(t.Headers)
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	w := make([]int, n)
	measure := func(row []string) {
		for i, c := range row {
			if sw := widthCond.StringWidth(c); sw > w[i] {
				w[i] = sw
			}
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		measure(r)
	}
	return w
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) error {
	_, err := io.WriteString(w, t.String())
	return err
}

func (t *Table) String() string {
	widths := t.widths()
	var b strings.Builder
	if t.Style == Grid {
		t.renderGrid(&b, widths)
	} else {
		t.renderSimple(&b, widths)
	}
	return b.String()
}

func (t *Table) renderSimple(b *strings.Builder, widths []int) {
	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}
	ruleLine := strings.Join(rule, "  ") + "\n"
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, widths, "", "  ", ""))
		b.WriteString(ruleLine)
	} else {
		b.WriteString(ruleLine)
	}
	for _, r := range t.Rows {
		b.WriteString(line(r, widths, "", "  ", ""))
	}
	if len(t.Headers) == 0 {
		b.WriteString(ruleLine)
	}
}

func (t *Table) renderGrid(b *strings.Builder, widths []int) {
	border := func(fill string) string {
		parts := make([]string, len(widths))
		for i, n := range widths {
			parts[i] = strings.Repeat(fill, n+2)
		}
		return "+" + strings.Join(parts, "+") + "+\n"
	}
	b.WriteString(border("-"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, widths, "| ", " | ", " |"))
		b.WriteString(border("="))
	}
	for _, r := range t.Rows {
		b.WriteString(line(r, widths, "| ", " | ", " |"))
		b.WriteString(border("-"))
	}
}

func line(cells []string, widths []int, left, sep, right string) string {
	parts := make([]string, len(widths))
	for i, n := range widths {
		c := ""
		if i < len(cells) {
			c = cells[i]
		}
		if isNumber(c) {
			parts[i] = padLeft(c, n)
		} else {
			parts[i] = padRight(c, n)
		}
	}
	return strings.TrimRight(left+strings.Join(parts, sep)+right, " ") + "\n"
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := widthCond.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func padLeft(s string, width int) string {
	sw := widthCond.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", width-sw) + s
}
