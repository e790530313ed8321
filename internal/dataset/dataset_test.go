package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fixtureRows mirrors the reference workbook: title rows, a target row,
// a header block, then one column of numbers per set with spacer columns.
var fixtureRows = [][]string{
	{"Target analysis", "", "", "", "", ""},
	{"", "", "", "", "", ""},
	{"Set A", "", "Set B", "", "Set C", ""},
	{"1.0", "", "309303.86", "", "12", ""},
	{"", "", "", "", "", ""},
	{"Numbers", "", "Numbers", "", "Numbers", ""},
	{"2", "", "1580060.07", "", "3", ""},
	{"5", "", "957467.65", "", "", ""},
	{"10", "", "", "", "4", ""},
	{"", "", "4.2", "", "", ""},
}

func testLayout() Layout {
	return Layout{TargetRow: 3, DataStartRow: 6, Sets: 3, ColumnStep: 2}
}

func writeCSVFixture(t *testing.T, rows [][]string) string {
	t.Helper()
	var lines []string
	for _, r := range rows {
		lines = append(lines, strings.Join(r, ","))
	}
	p := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return p
}

func writeXLSXFixture(t *testing.T, rows [][]string, sheet string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	} else {
		sheet = "Sheet1"
	}
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, ref, v))
		}
	}
	p := filepath.Join(t.TempDir(), "dataset.xlsx")
	require.NoError(t, f.SaveAs(p))
	return p
}

func assertFixture(t *testing.T, c *Collection) {
	t.Helper()
	require.Equal(t, 3, c.Len())
	sets := c.Datasets()
	assert.Equal(t, Dataset{Label: "A", Target: 1, Numbers: []float64{2, 5, 10}}, sets[0])
	assert.Equal(t, Dataset{Label: "B", Target: 309303.86, Numbers: []float64{1580060.07, 957467.65, 4.2}}, sets[1])
	assert.Equal(t, Dataset{Label: "C", Target: 12, Numbers: []float64{3, 4}}, sets[2])

	b, ok := c.Get("B")
	require.True(t, ok)
	assert.Equal(t, 309303.86, b.Target)
	_, ok = c.Get("Z")
	assert.False(t, ok)

	assert.Equal(t, Summary{Sets: 3, MaxNumbers: 3, DataPoints: 8}, c.Summary())
}

func TestLoadCSV(t *testing.T) {
	c, err := Load(writeCSVFixture(t, fixtureRows), testLayout())
	require.NoError(t, err)
	assertFixture(t, c)
}

func TestLoadXLSX(t *testing.T) {
	c, err := Load(writeXLSXFixture(t, fixtureRows, ""), testLayout())
	require.NoError(t, err)
	assertFixture(t, c)
}

func TestLoadXLSX_NamedSheet(t *testing.T) {
	p := writeXLSXFixture(t, fixtureRows, "Data")
	l := testLayout()
	l.Sheet = "Data"
	c, err := Load(p, l)
	require.NoError(t, err)
	assertFixture(t, c)

	l.Sheet = "Missing"
	_, err = Load(p, l)
	require.Error(t, err)
}

func TestLoadXLSX_UsesStoredValues(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"
	fixed, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	require.NoError(t, err)
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue(sheet, "A4", 309303.86))
	require.NoError(t, f.SetCellValue(sheet, "A7", 957467.654321))
	require.NoError(t, f.SetCellStyle(sheet, "A7", "A7", fixed))
	require.NoError(t, f.SetCellValue(sheet, "A8", 0.125))
	require.NoError(t, f.SetCellStyle(sheet, "A8", "A8", percent))
	p := filepath.Join(t.TempDir(), "styled.xlsx")
	require.NoError(t, f.SaveAs(p))

	l := testLayout()
	l.Sets = 1
	c, err := Load(p, l)
	require.NoError(t, err)
	d, ok := c.Get("A")
	require.True(t, ok)
	assert.Equal(t, 309303.86, d.Target)
	assert.Equal(t, []float64{957467.654321, 0.125}, d.Numbers)
}

func TestExtract_NonFiniteCells(t *testing.T) {
	l := testLayout()

	rows := cloneRows(fixtureRows)
	rows[6][4] = "NaN"
	rows[8][4] = "nan"
	c, err := l.Extract("nan", rows)
	require.NoError(t, err)
	d, _ := c.Get("C")
	assert.Empty(t, d.Numbers)

	rows = cloneRows(fixtureRows)
	rows[8][0] = "inf"
	_, err = l.Extract("inf", rows)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 9, le.Row)
	assert.Contains(t, le.Error(), `set A value "inf" is not a number`)

	rows = cloneRows(fixtureRows)
	rows[3][0] = "NaN"
	_, err = l.Extract("nan-target", rows)
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "set A has no target value")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), DefaultLayout())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
	var le *LoadError
	assert.ErrorAs(t, err, &le)
}

func TestLoad_Unsupported(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(p, []byte("{}"), 0o644))
	_, err := Load(p, DefaultLayout())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExtract_Errors(t *testing.T) {
	l := testLayout()

	_, err := l.Extract("short", fixtureRows[:2])
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), "target row 4 is missing")

	rows := cloneRows(fixtureRows)
	rows[3][2] = ""
	_, err = l.Extract("no-target", rows)
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 4, le.Row)
	assert.Equal(t, 3, le.Col)
	assert.Contains(t, le.Error(), "set B has no target value")

	rows = cloneRows(fixtureRows)
	rows[7][4] = "n/a"
	_, err = l.Extract("bad-cell", rows)
	require.ErrorAs(t, err, &le)
	assert.Contains(t, le.Error(), `set C value "n/a" is not a number`)
}

func TestExtract_EmptyPoolIsKept(t *testing.T) {
	rows := cloneRows(fixtureRows)
	for r := 6; r < len(rows); r++ {
		rows[r][4] = ""
	}
	c, err := testLayout().Extract("empty", rows)
	require.NoError(t, err)
	d, _ := c.Get("C")
	assert.Empty(t, d.Numbers)
}

func TestLayoutValidate(t *testing.T) {
	require.NoError(t, DefaultLayout().Validate())
	assert.Error(t, Layout{TargetRow: 3, DataStartRow: 3, Sets: 8, ColumnStep: 2}.Validate())
	assert.Error(t, Layout{TargetRow: 3, DataStartRow: 6, Sets: 0, ColumnStep: 2}.Validate())
	assert.Error(t, Layout{TargetRow: 3, DataStartRow: 6, Sets: 27, ColumnStep: 2}.Validate())
	assert.Error(t, Layout{TargetRow: 3, DataStartRow: 6, Sets: 8, ColumnStep: 0}.Validate())
	assert.Error(t, Layout{TargetRow: -1, DataStartRow: 6, Sets: 8, ColumnStep: 1}.Validate())
}

func TestNewCollection_OrdersAndCopies(t *testing.T) {
	nums := []float64{1, 2}
	c, err := NewCollection("mem", []Dataset{
		{Label: "B", Target: 2, Numbers: nums},
		{Label: "A", Target: 1, Numbers: []float64{3}},
	})
	require.NoError(t, err)
	nums[0] = 99
	sets := c.Datasets()
	assert.Equal(t, "A", sets[0].Label)
	assert.Equal(t, []float64{1, 2}, sets[1].Numbers)

	_, err = NewCollection("dup", []Dataset{{Label: "A"}, {Label: "A"}})
	assert.Error(t, err)
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" -3.5 ", -3.5, true},
		{"1.5e3", 1500, true},
		{"1,580,060.07", 1580060.07, true},
		{"1.000,5", 1000.5, true},
		{"0,5", 0.5, true},
		{"1,000", 1000, true},
		{"12.5%", 12.5, true},
		{"1 000", 1000, true},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"+Inf", 0, false},
		{"-Infinity", 0, false},
		{"1e400", 0, false},
		{"%", 0, false},
	}
	for _, c := range cases {
		got, ok := parseNumeric(c.in)
		assert.Equal(t, c.ok, ok, "parse %q", c.in)
		if c.ok {
			assert.InDelta(t, c.want, got, 1e-9, "parse %q", c.in)
		}
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "A", Label(0))
	assert.Equal(t, "H", Label(7))
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
