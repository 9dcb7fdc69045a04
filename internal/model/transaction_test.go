package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  Direction
		known bool
	}{
		{"vendor income", "收入", DirectionIncome, true},
		{"vendor expense", "支出", DirectionExpense, true},
		{"vendor neutral", "不计收支", DirectionNeutral, true},
		{"slash sentinel", "/", DirectionNeutral, true},
		{"empty", "", DirectionNeutral, true},
		{"canonical expense", "Expense", DirectionExpense, true},
		{"canonical neutral", "Neutral", DirectionNeutral, true},
		{"unknown label", "其他", DirectionNeutral, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := ParseDirection(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestTransactionDate(t *testing.T) {
	assert.Equal(t, "2024-03-01", Transaction{Time: "2024-03-01 12:30:00"}.Date())
	assert.Equal(t, "2024", Transaction{Time: "2024"}.Date())
	assert.Empty(t, Transaction{}.Date())
}
