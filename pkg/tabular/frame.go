package tabular

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jverma/quiz-solver/models"
)

// Column is a named, uniformly typed column. When Numeric, Nums holds the
// coerced values and Missing marks cells that were empty or absent; when
// not, Strs keeps the original text for the whole column.
type Column struct {
	Name    string
	Numeric bool
	Nums    []float64
	Missing []bool
	Strs    []string
}

// Values returns the non-missing numeric values of the column.
func (c *Column) Values() []float64 {
	out := make([]float64, 0, len(c.Nums))
	for i, v := range c.Nums {
		if !c.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// Frame is a normalized table: trimmed column names, best-effort numeric
// coercion, original column order. Duplicate names after trimming are kept
// as-is; lookups return the first match and anything beyond that is
// undefined.
type Frame struct {
	Columns []Column
	RowLen  int
}

// numericJunkRe drops everything that is not a digit, a minus sign or a
// decimal point, so "$1,234.50" coerces to 1234.50. Whatever survives still
// has to parse as a float.
var numericJunkRe = regexp.MustCompile(`[^0-9.\-]+`)

// Normalize converts a raw table into a Frame. Coercion is all-or-nothing
// per column: if any non-empty cell refuses to parse after junk stripping,
// the whole column keeps its string values. Empty or absent cells in a
// numeric column become missing.
func Normalize(t *models.Table) *Frame {
	f := &Frame{RowLen: len(t.Rows)}

	for ci, name := range t.Headers {
		col := Column{Name: strings.TrimSpace(name)}

		cells := make([]string, len(t.Rows))
		for ri, row := range t.Rows {
			if ci < len(row) {
				cells[ri] = strings.TrimSpace(row[ci])
			}
		}

		nums := make([]float64, len(cells))
		missing := make([]bool, len(cells))
		numeric := true
		for i, cell := range cells {
			if cell == "" {
				missing[i] = true
				continue
			}
			v, ok := coerceNumber(cell)
			if !ok {
				numeric = false
				break
			}
			nums[i] = v
		}

		if numeric {
			col.Numeric = true
			col.Nums = nums
			col.Missing = missing
		} else {
			col.Strs = cells
		}
		f.Columns = append(f.Columns, col)
	}

	return f
}

func coerceNumber(cell string) (float64, bool) {
	cleaned := numericJunkRe.ReplaceAllString(cell, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ColumnExact returns the first column whose trimmed name equals name
// case-insensitively, or nil.
func (f *Frame) ColumnExact(name string) *Column {
	want := strings.ToLower(strings.TrimSpace(name))
	for i := range f.Columns {
		if strings.ToLower(f.Columns[i].Name) == want {
			return &f.Columns[i]
		}
	}
	return nil
}

// ColumnSubstring returns the first column whose name contains name
// case-insensitively, or nil.
func (f *Frame) ColumnSubstring(name string) *Column {
	want := strings.ToLower(strings.TrimSpace(name))
	for i := range f.Columns {
		if strings.Contains(strings.ToLower(f.Columns[i].Name), want) {
			return &f.Columns[i]
		}
	}
	return nil
}

// FirstNumeric returns the first numeric-typed column, or nil. Note this is
// a blunt fallback: an identifier column that happens to coerce wins.
func (f *Frame) FirstNumeric() *Column {
	for i := range f.Columns {
		if f.Columns[i].Numeric {
			return &f.Columns[i]
		}
	}
	return nil
}
