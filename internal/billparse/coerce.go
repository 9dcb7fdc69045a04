package billparse

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var amountNoise = strings.NewReplacer(
	"¥", "",
	"￥", "",
	",", "",
	"，", "",
	" ", "",
	"\u00a0", "",
)

// String returns the trimmed textual form of a cell. Numeric cells are
// rendered without exponent or trailing zeros.
func String(v Value) string {
	if f, ok := v.Float(); ok {
		if !v.IsFinite() {
			return ""
		}
		return decimal.NewFromFloat(f).String()
	}
	return strings.TrimSpace(v.Raw())
}

// Amount extracts a non-negative amount from a cell. Currency glyphs and
// grouping separators are removed first; anything that still fails to parse
// counts as zero. The boolean is false only for non-finite numeric cells.
func Amount(v Value) (decimal.Decimal, bool) {
	if f, ok := v.Float(); ok {
		if !v.IsFinite() {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(f).Abs(), true
	}

	cleaned := amountNoise.Replace(strings.TrimSpace(v.Raw()))
	if cleaned == "" {
		return decimal.Zero, true
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, true
	}
	return d.Abs(), true
}

// StripControl removes tabs and other control characters that vendors pad
// identifiers with to stop spreadsheets from rendering them in scientific
// notation.
func StripControl(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s))
}
