package models

// Table is a raw rectangular parse result: header names plus ordered rows
// of string cells. Rows are aligned by position; ragged rows are possible
// straight out of a parser and are tolerated downstream.
type Table struct {
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows"`
}

// Empty reports whether the table carries no usable data.
func (t *Table) Empty() bool {
	return t == nil || len(t.Headers) == 0 || len(t.Rows) == 0
}
