// Package billparse turns raw bill export content into canonical transactions.
//
// It holds the pieces shared by every container format: cell values that keep
// their native type, date and amount coercion, quoted row splitting, vendor and
// header detection, and the per-vendor mapping onto model.Transaction.
package billparse

import (
	"math"
	"strings"
)

type valueKind uint8

const (
	kindEmpty valueKind = iota
	kindText
	kindNumber
)

// Value is a raw cell that remembers whether the source stored it as a number
// or as text. Workbook cells keep their native type so that date serials are
// never stringified before date decoding.
type Value struct {
	text string
	num  float64
	kind valueKind
}

// Text wraps a textual cell.
func Text(s string) Value {
	return Value{text: s, kind: kindText}
}

// Number wraps a numeric cell.
func Number(f float64) Value {
	return Value{num: f, kind: kindNumber}
}

// Empty is the zero Value; it stands for a missing cell.
var Empty = Value{}

// IsEmpty reports whether the cell is missing or holds only whitespace.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case kindText:
		return strings.TrimSpace(v.text) == ""
	case kindNumber:
		return false
	default:
		return true
	}
}

// Float returns the numeric content and whether the cell is numeric.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == kindNumber
}

// Raw returns the textual content of a text cell, untrimmed.
func (v Value) Raw() string {
	return v.text
}

// IsFinite reports whether a numeric cell holds a finite number. Text and
// empty cells are always finite.
func (v Value) IsFinite() bool {
	if v.kind != kindNumber {
		return true
	}
	return !math.IsNaN(v.num) && !math.IsInf(v.num, 0)
}
