// Package model defines the data model shared by the rtfdelta packages:
// typed cell values, the column-oriented Table, and comparison results.
package model

import "strconv"

// Kind identifies the type of data held by a Value.
type Kind int

const (
	// KindNull indicates an absent value (an empty cell).
	KindNull Kind = iota
	// KindInt indicates an integer value.
	KindInt
	// KindFloat indicates a floating-point value.
	KindFloat
	// KindText indicates a text value.
	KindText
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a tagged union holding one table cell: an integer, a float, a
// text string, or null. The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// Int returns an integer Value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float returns a floating-point Value.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Kind returns the kind of data held by the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumeric reports whether the value is an integer or a float.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// Int returns the integer payload. It is only meaningful for KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. It is only meaningful for KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns the text payload. It is only meaningful for KindText.
func (v Value) Text() string { return v.s }

// AsFloat returns the value as a float64 when it is numeric.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// String re-stringifies the value. Integers reproduce their literal text,
// floats use the shortest representation that round-trips, text returns
// itself, and null returns the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	default:
		return ""
	}
}
