// Package aggregate derives trend series, category breakdowns and totals from
// a filtered view of the ledger. Every function is pure and recomputes from
// the view it is given.
package aggregate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/billmerge/internal/model"
)

// Granularity selects the width of a trend bucket.
type Granularity string

// Supported granularities.
const (
	Daily   Granularity = "daily"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// ParseGranularity accepts a granularity name in any case.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Daily, Monthly, Yearly:
		return g, nil
	default:
		return "", fmt.Errorf("unknown granularity %q (want daily, monthly or yearly)", s)
	}
}

// KeyLen is the number of leading timestamp characters that form a bucket key.
func (g Granularity) KeyLen() int {
	switch g {
	case Daily:
		return len("2006-01-02")
	case Yearly:
		return len("2006")
	default:
		return len("2006-01")
	}
}

// TrendPoint is one bucket of a trend series.
type TrendPoint struct {
	Key     string // YYYY-MM-DD, YYYY-MM, YYYY or LabelUnknown
	Income  decimal.Decimal
	Expense decimal.Decimal
}

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// BucketKey returns the trend bucket a timestamp falls into.
func BucketKey(timestamp string, g Granularity) string {
	if !datePrefix.MatchString(timestamp) {
		return model.LabelUnknown
	}
	return timestamp[:g.KeyLen()]
}

// Trend groups view into buckets of the given granularity and sums income and
// expense separately. Neutral transactions are left out. Buckets come back in
// ascending key order.
func Trend(view []model.Transaction, g Granularity) []TrendPoint {
	buckets := make(map[string]*TrendPoint)

	for _, tx := range view {
		key := BucketKey(tx.Time, g)
		point, ok := buckets[key]
		if !ok {
			point = &TrendPoint{Key: key}
			buckets[key] = point
		}

		switch tx.Direction {
		case model.DirectionIncome:
			point.Income = point.Income.Add(tx.Amount)
		case model.DirectionExpense:
			point.Expense = point.Expense.Add(tx.Amount)
		}
	}

	out := make([]TrendPoint, 0, len(buckets))
	for _, point := range buckets {
		out = append(out, *point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// BucketRange returns the inclusive date range covered by a trend bucket key,
// suitable for a ledger filter. Monthly buckets end on the last day of the
// month.
func BucketRange(key string, g Granularity) (start, end string, ok bool) {
	const dateLayout = "2006-01-02"

	switch g {
	case Daily:
		d, err := time.Parse(dateLayout, key)
		if err != nil {
			return "", "", false
		}
		return d.Format(dateLayout), d.Format(dateLayout), true
	case Monthly:
		m, err := time.Parse("2006-01", key)
		if err != nil {
			return "", "", false
		}
		last := m.AddDate(0, 1, -1)
		return m.Format(dateLayout), last.Format(dateLayout), true
	case Yearly:
		y, err := time.Parse("2006", key)
		if err != nil {
			return "", "", false
		}
		return y.Format(dateLayout), y.AddDate(1, 0, -1).Format(dateLayout), true
	default:
		return "", "", false
	}
}
