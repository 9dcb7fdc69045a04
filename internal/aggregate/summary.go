package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/billmerge/internal/model"
)

// Summary holds the totals of a view.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Neutral decimal.Decimal
	Net     decimal.Decimal // Income - Expense
	Count   int
}

// Summarize totals view by direction.
func Summarize(view []model.Transaction) Summary {
	var s Summary
	for _, tx := range view {
		s.Count++
		switch tx.Direction {
		case model.DirectionIncome:
			s.Income = s.Income.Add(tx.Amount)
		case model.DirectionExpense:
			s.Expense = s.Expense.Add(tx.Amount)
		default:
			s.Neutral = s.Neutral.Add(tx.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}
