package ledger

import (
	"strings"

	"github.com/Veraticus/billmerge/internal/model"
)

// DirectionAll disables direction filtering. The empty Direction does the same.
const DirectionAll model.Direction = "All"

// Filter selects transactions for a view. Zero values select everything.
type Filter struct {
	Search    string          // Case-sensitive substring of product, counterparty, type or payment method
	Direction model.Direction // DirectionAll or empty for no restriction
	StartDate string          // Inclusive YYYY-MM-DD lower bound, empty for none
	EndDate   string          // Inclusive YYYY-MM-DD upper bound, empty for none
}

// Match reports whether tx passes every predicate of f.
func (f Filter) Match(tx model.Transaction) bool {
	if f.Search != "" &&
		!strings.Contains(tx.Product, f.Search) &&
		!strings.Contains(tx.Counterparty, f.Search) &&
		!strings.Contains(tx.Type, f.Search) &&
		!strings.Contains(tx.PaymentMethod, f.Search) {
		return false
	}

	if f.Direction != "" && f.Direction != DirectionAll && tx.Direction != f.Direction {
		return false
	}

	date := tx.Date()
	if f.StartDate != "" && date < f.StartDate {
		return false
	}
	if f.EndDate != "" && date > f.EndDate {
		return false
	}
	return true
}

// View returns the transactions of l matching f, newest first.
func View(l Ledger, f Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(l.byID))
	for _, tx := range l.byID {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	sortNewestFirst(out)
	return out
}
