package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/billmerge/internal/model"
)

// DefaultSliceLimit is the number of named slices kept before the rest is
// folded into a single Other slice.
const DefaultSliceLimit = 50

// Dimension is the transaction field a breakdown groups by.
type Dimension string

// Supported dimensions.
const (
	ByType         Dimension = "type"
	ByCounterparty Dimension = "counterparty"
	ByProduct      Dimension = "product"
	ByMethod       Dimension = "method"
)

// Dimensions lists every supported dimension in display order.
var Dimensions = []Dimension{ByType, ByCounterparty, ByProduct, ByMethod}

// ParseDimension accepts a dimension name in any case.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Dimensions {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dimension %q (want type, counterparty, product or method)", s)
}

// Slice is one named group of a breakdown.
type Slice struct {
	Name  string
	Value decimal.Decimal
}

// Key returns the group a transaction falls into for d.
func (d Dimension) Key(tx model.Transaction) string {
	var key string
	switch d {
	case ByCounterparty:
		if tx.Counterparty == model.NeutralSentinel {
			return model.LabelUnknownMerchant
		}
		key = tx.Counterparty
	case ByProduct:
		key = tx.Product
	case ByMethod:
		key = tx.PaymentMethod
	default:
		key = tx.Type
	}

	if strings.TrimSpace(key) == "" {
		return model.LabelOther
	}
	return key
}

// Breakdown groups the transactions of view moving in direction dir by d,
// keeping the top DefaultSliceLimit groups.
func Breakdown(view []model.Transaction, d Dimension, dir model.Direction) []Slice {
	return BreakdownN(view, d, dir, DefaultSliceLimit)
}

// BreakdownN is Breakdown with an explicit slice limit. Groups are sorted by
// value descending, ties by name. When more than limit groups exist, the rest
// is summed into one trailing Other slice, so the result holds at most
// limit+1 slices and its values always add up to the direction's total.
// A non-positive limit disables collapsing.
func BreakdownN(view []model.Transaction, d Dimension, dir model.Direction, limit int) []Slice {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range view {
		if tx.Direction != dir {
			continue
		}
		key := d.Key(tx)
		sums[key] = sums[key].Add(tx.Amount)
	}

	slices := make([]Slice, 0, len(sums))
	for name, value := range sums {
		slices = append(slices, Slice{Name: name, Value: value})
	}
	sort.Slice(slices, func(i, j int) bool {
		if c := slices[i].Value.Cmp(slices[j].Value); c != 0 {
			return c > 0
		}
		return slices[i].Name < slices[j].Name
	})

	if limit <= 0 || len(slices) <= limit {
		return slices
	}

	rest := decimal.Zero
	for _, s := range slices[limit:] {
		rest = rest.Add(s.Value)
	}
	return append(slices[:limit:limit], Slice{Name: model.LabelOther, Value: rest})
}
