package rtf

import (
	"math"
	"strconv"

	"github.com/tsawler/rtfdelta/model"
)

// inferColumn classifies one column's raw texts and parses them into typed
// values. The vote is strict and column-wide: every non-empty value must be
// a canonical in-range integer literal for the column to parse as integer,
// every value
// must parse as a finite decimal for float, and a single non-conforming
// value anywhere leaves the whole column text-typed. Empty strings map to
// null in every case.
func inferColumn(raw []string) []model.Value {
	allInt := true
	allFloat := true
	seen := false
	for _, s := range raw {
		if s == "" {
			continue
		}
		seen = true
		if allInt {
			if _, ok := parseIntegerLiteral(s); !ok {
				allInt = false
			}
		}
		if allFloat && !isFiniteFloat(s) {
			allFloat = false
		}
		if !allInt && !allFloat {
			break
		}
	}

	values := make([]model.Value, len(raw))
	for i, s := range raw {
		switch {
		case s == "":
			values[i] = model.Null()
		case seen && allInt:
			n, _ := parseIntegerLiteral(s)
			values[i] = model.Int(n)
		case seen && allFloat:
			f, _ := strconv.ParseFloat(s, 64)
			values[i] = model.Float(f)
		default:
			values[i] = model.Text(s)
		}
	}
	return values
}

// parseIntegerLiteral parses s as an integer literal whose canonical
// re-stringification reproduces the input exactly. Out-of-range, plus-signed,
// and zero-padded literals are rejected so an integer-typed column never
// loses its source text.
func parseIntegerLiteral(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != s {
		return 0, false
	}
	return n, true
}

// isFiniteFloat reports whether s parses as a finite decimal number.
func isFiniteFloat(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}
