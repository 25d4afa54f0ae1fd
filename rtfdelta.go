// Package rtfdelta extracts the tabular data embedded in RTF clinical-trial
// summary documents into typed, column-oriented tables, and compares two
// such tables for structural equivalence under configurable tolerances.
//
// Basic usage:
//
//	table, err := rtfdelta.LoadTable("ae_summary.rtf")
//	if err != nil {
//	    // handle error
//	}
//
//	result, err := rtfdelta.CompareFiles("left.rtf", "right.rtf", compare.Options{
//	    AbsTol:     0.01,
//	    IgnoreCase: true,
//	})
//
// The lower-level rtf, compare, htmldoc, and convert packages are also
// available for finer control.
package rtfdelta

import (
	"github.com/tsawler/rtfdelta/compare"
	"github.com/tsawler/rtfdelta/model"
	"github.com/tsawler/rtfdelta/rtf"
)

// LoadTable loads the single table embedded in an RTF file.
func LoadTable(path string) (*model.Table, error) {
	return rtf.LoadTable(path)
}

// Compare compares two assembled tables under the given options.
func Compare(left, right *model.Table, opts compare.Options) (compare.Result, error) {
	return compare.Tables(left, right, opts)
}

// CompareFiles loads two RTF files through the parser and compares the
// resulting tables.
func CompareFiles(leftPath, rightPath string, opts compare.Options) (compare.Result, error) {
	return compare.Files(leftPath, rightPath, opts)
}

// Must is a helper that wraps a call to a function returning (T, error) and
// panics if the error is non-nil. It is intended for use in scripts or tests
// where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
