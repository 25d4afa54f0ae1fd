// Package compare classifies two assembled tables as identical or
// structurally different under configurable numeric and textual tolerances.
// The comparator borrows both tables read-only and never mutates either.
package compare

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/tsawler/rtfdelta/model"
	"github.com/tsawler/rtfdelta/rtf"
)

// ErrMissingJoinKey is returned when join columns must be inferred from an
// empty column-name schema.
var ErrMissingJoinKey = errors.New("cannot infer join columns from an empty schema")

// Category classifies a comparison outcome.
type Category int

const (
	// Identical means no structural or value difference was found under the
	// active options.
	Identical Category = iota
	// StructureDifferences means the tables differ in columns, row count, or
	// at least one value.
	StructureDifferences
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case Identical:
		return "identical"
	case StructureDifferences:
		return "structure_differences"
	default:
		return "unknown"
	}
}

// Options holds the structural tolerances for one comparison.
type Options struct {
	// AbsTol is the absolute numeric tolerance.
	AbsTol float64
	// RelTol is the relative numeric tolerance.
	RelTol float64
	// IgnoreCase lower-cases text values before comparison.
	IgnoreCase bool
	// IgnoreSpaces removes all whitespace from text values before comparison.
	IgnoreSpaces bool
}

// Result is the outcome of one comparison. It is produced fresh per call and
// carries no reference back to the compared tables.
type Result struct {
	Category Category
	Summary  string
}

// Tables compares two tables and classifies the outcome. Column names and
// order must match exactly; row counts must agree; values are scanned in
// column order, rows top to bottom, stopping at the first unequal pair. An
// inconsistent column shape inside either table is an invariant failure
// returned as an error, not a comparison outcome.
func Tables(left, right *model.Table, opts Options) (Result, error) {
	leftNames := left.Names()
	rightNames := right.Names()
	if !namesEqual(leftNames, rightNames) {
		return Result{
			Category: StructureDifferences,
			Summary: fmt.Sprintf("column names/order do not match: left=%q right=%q",
				leftNames, rightNames),
		}, nil
	}

	leftRows, err := left.RowCount()
	if err != nil {
		return Result{}, err
	}
	rightRows, err := right.RowCount()
	if err != nil {
		return Result{}, err
	}
	if leftRows != rightRows {
		return Result{
			Category: StructureDifferences,
			Summary:  fmt.Sprintf("row count mismatch: left=%d right=%d", leftRows, rightRows),
		}, nil
	}

	for col := 0; col < left.ColCount(); col++ {
		lv := left.Values(col)
		rv := right.Values(col)
		for row := 0; row < leftRows; row++ {
			if valuesEqual(lv[row], rv[row], opts) {
				continue
			}
			return Result{
				Category: StructureDifferences,
				Summary: fmt.Sprintf("value mismatch in column %q at row %d: left=%q right=%q",
					left.Name(col), row, lv[row].String(), rv[row].String()),
			}, nil
		}
	}

	return Result{
		Category: Identical,
		Summary: fmt.Sprintf(
			"tables are identical under comparison options (abs_tol=%g, rel_tol=%g, ignore_case=%t, ignore_spaces=%t)",
			opts.AbsTol, opts.RelTol, opts.IgnoreCase, opts.IgnoreSpaces),
	}, nil
}

// Files loads both sides through the RTF parser and compares them.
func Files(leftPath, rightPath string, opts Options) (Result, error) {
	left, err := rtf.LoadTable(leftPath)
	if err != nil {
		return Result{}, fmt.Errorf("loading left table: %w", err)
	}
	right, err := rtf.LoadTable(rightPath)
	if err != nil {
		return Result{}, fmt.Errorf("loading right table: %w", err)
	}
	return Tables(left, right, opts)
}

// JoinColumns infers the row-identity key columns from a composed header
// schema: every column before the first composite "group | measure" name,
// minimum one. Collaborators that align rows between tables join on these.
func JoinColumns(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, ErrMissingJoinKey
	}
	for i, name := range names {
		if strings.Contains(name, " | ") {
			if i < 1 {
				i = 1
			}
			return names[:i], nil
		}
	}
	return names[:1], nil
}

// valuesEqual applies the comparator's value equality rule: null equals only
// null; numeric pairs compare within the configured tolerances with NaN
// equal to NaN; everything else compares as normalized text.
func valuesEqual(a, b model.Value, opts Options) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}

	af, aok := a.AsFloat()
	bf, bok := b.AsFloat()
	if aok && bok {
		if math.IsNaN(af) || math.IsNaN(bf) {
			return math.IsNaN(af) && math.IsNaN(bf)
		}
		return scalar.EqualWithinAbsOrRel(af, bf, opts.AbsTol, opts.RelTol)
	}

	return normalize(a, opts) == normalize(b, opts)
}

// normalize renders a value for textual comparison. Case and whitespace
// normalization apply to text values only; other kinds pass through their
// canonical string form unchanged.
func normalize(v model.Value, opts Options) string {
	s := v.String()
	if v.Kind() != model.KindText {
		return s
	}
	if opts.IgnoreCase {
		s = strings.ToLower(s)
	}
	if opts.IgnoreSpaces {
		s = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}
	return s
}

func namesEqual(a, b []string) bool {
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
