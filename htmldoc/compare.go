package htmldoc

import (
	"fmt"
	"strconv"
	"strings"
)

// StructureResult is the outcome of comparing the table structure of two
// HTML documents.
type StructureResult struct {
	Match   bool
	Summary string
}

// CompareStructure compares the table structure of two HTML files: table
// count, column layout, row count, numeric-vs-text column categories, and
// string-column content after whitespace and case normalization. Numeric
// cell-value differences are intentionally ignored; this path answers
// whether two renditions share a table skeleton, not whether the numbers
// agree.
func CompareStructure(leftPath, rightPath string) (StructureResult, error) {
	left, err := ReadTables(leftPath)
	if err != nil {
		return StructureResult{}, err
	}
	right, err := ReadTables(rightPath)
	if err != nil {
		return StructureResult{}, err
	}

	if len(left) != len(right) {
		return StructureResult{
			Summary: fmt.Sprintf("table count mismatch: left=%d, right=%d", len(left), len(right)),
		}, nil
	}

	for idx := range left {
		if reason := checkStructure(left[idx], right[idx]); reason != "" {
			return StructureResult{
				Summary: fmt.Sprintf("structure mismatch at table index %d: %s", idx, reason),
			}, nil
		}
	}

	return StructureResult{
		Match:   true,
		Summary: fmt.Sprintf("all tables identical (%d table(s) compared)", len(left)),
	}, nil
}

// checkStructure returns a short reason when the two tables differ
// structurally, or the empty string when they are equivalent.
func checkStructure(left, right *Table) string {
	if !stringsEqual(left.Columns, right.Columns) {
		return "column mismatch"
	}
	if len(left.Rows) != len(right.Rows) {
		return "row count mismatch"
	}

	leftNumeric := numericColumns(left)
	rightNumeric := numericColumns(right)
	if !setsEqual(leftNumeric, rightNumeric) {
		return "column type mismatch"
	}

	for col := range left.Columns {
		if leftNumeric[col] {
			continue
		}
		for row := range left.Rows {
			if normalizeText(left.Rows[row][col]) != normalizeText(right.Rows[row][col]) {
				return "string content differs"
			}
		}
	}
	return ""
}

// numericColumns classifies each column as numeric when a majority of its
// cells begin with a parseable number. The leading number is extracted so
// that "28 (46.7)" style cells still count as numeric.
func numericColumns(t *Table) map[int]bool {
	numeric := make(map[int]bool, len(t.Columns))
	for col := range t.Columns {
		count := 0
		for _, row := range t.Rows {
			if _, ok := leadingNumber(row[col]); ok {
				count++
			}
		}
		numeric[col] = count*2 > len(t.Rows)
	}
	return numeric
}

// leadingNumber extracts the number starting a cell, if any.
func leadingNumber(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// normalizeText lowercases and collapses whitespace for structural string
// comparison.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func setsEqual(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
