package model

import (
	"errors"
	"fmt"
)

// ErrInconsistentShape is returned when a table's columns do not share a
// common row count.
var ErrInconsistentShape = errors.New("table columns do not share a common row count")

// Column is one named, ordered sequence of typed values.
type Column struct {
	Name   string
	Values []Value
}

// Table is an ordered mapping from unique column name to a typed value
// sequence. Every column holds the same number of values. A Table is
// immutable once constructed: New copies the column slice, and accessors
// never expose state that callers are permitted to modify.
type Table struct {
	cols []Column
}

// New builds a table from ordered columns. The slice is copied; the value
// slices are adopted as-is and must not be modified by the caller afterward.
func New(cols []Column) *Table {
	copied := make([]Column, len(cols))
	copy(copied, cols)
	return &Table{cols: copied}
}

// ColCount returns the number of columns.
func (t *Table) ColCount() int {
	return len(t.cols)
}

// Names returns the ordered column names.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Values returns the value sequence of the column at index i. The returned
// slice is backing storage and must be treated as read-only.
func (t *Table) Values(i int) []Value {
	return t.cols[i].Values
}

// Name returns the name of the column at index i.
func (t *Table) Name(i int) string {
	return t.cols[i].Name
}

// RowCount derives the table's row count, asserting that every column holds
// the same number of values. A length disagreement is an internal invariant
// failure reported as ErrInconsistentShape, never as a comparison outcome.
func (t *Table) RowCount() (int, error) {
	if len(t.cols) == 0 {
		return 0, nil
	}
	n := len(t.cols[0].Values)
	for _, c := range t.cols[1:] {
		if len(c.Values) != n {
			return 0, fmt.Errorf("%w: column %q has %d rows, column %q has %d",
				ErrInconsistentShape, t.cols[0].Name, n, c.Name, len(c.Values))
		}
	}
	return n, nil
}

// Value returns the value at the given row in the column at index col.
func (t *Table) Value(row, col int) Value {
	return t.cols[col].Values[row]
}
