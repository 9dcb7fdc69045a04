// Package ledger holds the deduplicated set of canonical transactions and the
// pure functions that merge into it and derive filtered views from it.
package ledger

import (
	"sort"

	"github.com/Veraticus/billmerge/internal/model"
)

// Ledger maps transaction ids to transactions. A Ledger is never modified
// after construction; Merge returns a new one.
type Ledger struct {
	byID map[string]model.Transaction
}

// New returns an empty ledger.
func New() Ledger {
	return Ledger{byID: map[string]model.Transaction{}}
}

// Len returns the number of transactions held.
func (l Ledger) Len() int {
	return len(l.byID)
}

// Get looks a transaction up by id.
func (l Ledger) Get(id string) (model.Transaction, bool) {
	tx, ok := l.byID[id]
	return tx, ok
}

// Transactions returns every transaction, newest first.
func (l Ledger) Transactions() []model.Transaction {
	out := make([]model.Transaction, 0, len(l.byID))
	for _, tx := range l.byID {
		out = append(out, tx)
	}
	sortNewestFirst(out)
	return out
}

// MergeStats summarizes one merge.
type MergeStats struct {
	Total      int // Ledger size after the merge
	NewAdded   int
	Duplicates int
}

// Merge folds batch into l and returns the resulting ledger. An id already in
// the ledger, or seen earlier in the same batch, counts as a duplicate and the
// first-seen transaction is kept. Merging the same batch twice adds nothing
// the second time.
func Merge(l Ledger, batch []model.Transaction) (Ledger, MergeStats) {
	merged := make(map[string]model.Transaction, len(l.byID)+len(batch))
	for id, tx := range l.byID {
		merged[id] = tx
	}

	var stats MergeStats
	for _, tx := range batch {
		if _, exists := merged[tx.TransactionID]; exists {
			stats.Duplicates++
			continue
		}
		merged[tx.TransactionID] = tx
		stats.NewAdded++
	}
	stats.Total = len(merged)

	return Ledger{byID: merged}, stats
}

// DateBounds is the date span covered by a ledger.
type DateBounds struct {
	Earliest string // YYYY-MM-DD, empty for an empty ledger
	Latest   string
}

// Bounds returns the earliest and latest transaction dates in l.
func Bounds(l Ledger) DateBounds {
	var b DateBounds
	for _, tx := range l.byID {
		d := tx.Date()
		if d == "" {
			continue
		}
		if b.Earliest == "" || d < b.Earliest {
			b.Earliest = d
		}
		if d > b.Latest {
			b.Latest = d
		}
	}
	return b
}

func sortNewestFirst(txs []model.Transaction) {
	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Time != txs[j].Time {
			return txs[i].Time > txs[j].Time
		}
		return txs[i].TransactionID < txs[j].TransactionID
	})
}
