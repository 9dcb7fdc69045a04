package aggregate

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/billmerge/internal/model"
)

func tx(when string, dir model.Direction, amount string) model.Transaction {
	return model.Transaction{
		Time:          when,
		Direction:     dir,
		Amount:        decimal.RequireFromString(amount),
		TransactionID: when + amount,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestTrend(t *testing.T) {
	view := []model.Transaction{
		tx("2024-02-01 09:00:00", model.DirectionExpense, "5"),
		tx("2024-01-05 12:00:00", model.DirectionExpense, "10.50"),
		tx("2024-01-20 12:00:00", model.DirectionIncome, "100"),
		tx("2024-01-21 12:00:00", model.DirectionNeutral, "999"),
		tx("2023-12-31 23:59:59", model.DirectionExpense, "1"),
		tx("garbage", model.DirectionExpense, "7"),
	}

	t.Run("monthly", func(t *testing.T) {
		points := Trend(view, Monthly)
		require.Len(t, points, 4)

		keys := make([]string, 0, len(points))
		for _, p := range points {
			keys = append(keys, p.Key)
		}
		assert.Equal(t, []string{"2023-12", "2024-01", "2024-02", model.LabelUnknown}, keys)

		assertDecimal(t, "10.5", points[1].Expense)
		assertDecimal(t, "100", points[1].Income, "neutral amounts are excluded")
		assertDecimal(t, "7", points[3].Expense)
	})

	t.Run("daily", func(t *testing.T) {
		points := Trend(view, Daily)
		assert.Equal(t, "2023-12-31", points[0].Key)
		assert.Len(t, points, 6)
	})

	t.Run("yearly", func(t *testing.T) {
		points := Trend(view, Yearly)
		require.Len(t, points, 3)
		assert.Equal(t, "2023", points[0].Key)
		assert.Equal(t, "2024", points[1].Key)
		assertDecimal(t, "15.5", points[1].Expense)
	})

	t.Run("neutral only bucket", func(t *testing.T) {
		points := Trend([]model.Transaction{tx("2024-05-01 00:00:00", model.DirectionNeutral, "3")}, Monthly)
		require.Len(t, points, 1)
		assert.True(t, points[0].Income.IsZero())
		assert.True(t, points[0].Expense.IsZero())
	})

	assert.Empty(t, Trend(nil, Monthly))
}

func TestBucketKey(t *testing.T) {
	assert.Equal(t, "2024-01", BucketKey("2024-01-05 12:00:00", Monthly))
	assert.Equal(t, model.LabelUnknown, BucketKey("", Daily))
	assert.Equal(t, model.LabelUnknown, BucketKey("2024/01/05", Daily))
	assert.Equal(t, "2024", BucketKey("2024-01-05", Yearly))
}

func TestBucketRange(t *testing.T) {
	tests := []struct {
		key       string
		g         Granularity
		wantStart string
		wantEnd   string
		wantOK    bool
	}{
		{key: "2024-02", g: Monthly, wantStart: "2024-02-01", wantEnd: "2024-02-29", wantOK: true},
		{key: "2023-12", g: Monthly, wantStart: "2023-12-01", wantEnd: "2023-12-31", wantOK: true},
		{key: "2024-03-09", g: Daily, wantStart: "2024-03-09", wantEnd: "2024-03-09", wantOK: true},
		{key: "2024", g: Yearly, wantStart: "2024-01-01", wantEnd: "2024-12-31", wantOK: true},
		{key: model.LabelUnknown, g: Monthly},
		{key: "2024-13", g: Monthly},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.g, tt.key), func(t *testing.T) {
			start, end, ok := BucketRange(tt.key, tt.g)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestParseGranularityAndDimension(t *testing.T) {
	g, err := ParseGranularity(" Monthly ")
	require.NoError(t, err)
	assert.Equal(t, Monthly, g)
	assert.Equal(t, 7, g.KeyLen())

	_, err = ParseGranularity("weekly")
	assert.Error(t, err)

	d, err := ParseDimension("METHOD")
	require.NoError(t, err)
	assert.Equal(t, ByMethod, d)

	_, err = ParseDimension("status")
	assert.Error(t, err)
}

func TestBreakdown(t *testing.T) {
	view := []model.Transaction{
		{Direction: model.DirectionExpense, Amount: decimal.NewFromInt(30), Counterparty: "/", Type: "餐饮"},
		{Direction: model.DirectionExpense, Amount: decimal.NewFromInt(20), Counterparty: "Cafe", Type: "餐饮"},
		{Direction: model.DirectionExpense, Amount: decimal.NewFromInt(20), Counterparty: "Bakery", Type: ""},
		{Direction: model.DirectionExpense, Amount: decimal.NewFromInt(5), Counterparty: "  ", Type: "交通"},
		{Direction: model.DirectionIncome, Amount: decimal.NewFromInt(500), Counterparty: "Employer", Type: "转账"},
		{Direction: model.DirectionNeutral, Amount: decimal.NewFromInt(1), Counterparty: "Bank", Type: "利息"},
	}

	t.Run("counterparty", func(t *testing.T) {
		slices := Breakdown(view, ByCounterparty, model.DirectionExpense)
		require.Len(t, slices, 4)
		assert.Equal(t, model.LabelUnknownMerchant, slices[0].Name)
		assert.Equal(t, "Bakery", slices[1].Name, "ties sort by name")
		assert.Equal(t, "Cafe", slices[2].Name)
		assert.Equal(t, model.LabelOther, slices[3].Name)
	})

	t.Run("type", func(t *testing.T) {
		slices := Breakdown(view, ByType, model.DirectionExpense)
		require.Len(t, slices, 3)
		assert.Equal(t, "餐饮", slices[0].Name)
		assertDecimal(t, "50", slices[0].Value)
		assert.Equal(t, model.LabelOther, slices[1].Name)
	})

	t.Run("income", func(t *testing.T) {
		slices := Breakdown(view, ByType, model.DirectionIncome)
		require.Len(t, slices, 1)
		assert.Equal(t, "转账", slices[0].Name)
	})

	t.Run("neutral never selected by income or expense", func(t *testing.T) {
		for _, s := range Breakdown(view, ByCounterparty, model.DirectionExpense) {
			assert.NotEqual(t, "Bank", s.Name)
		}
	})
}

func TestBreakdownCollapse(t *testing.T) {
	var view []model.Transaction
	for i := 1; i <= 60; i++ {
		view = append(view, model.Transaction{
			Direction: model.DirectionExpense,
			Amount:    decimal.NewFromInt(int64(1000 - i)),
			Product:   fmt.Sprintf("product-%02d", i),
		})
	}

	slices := Breakdown(view, ByProduct, model.DirectionExpense)
	require.Len(t, slices, 51)
	assert.Equal(t, "product-01", slices[0].Name)
	assert.Equal(t, "product-50", slices[49].Name)
	assert.Equal(t, model.LabelOther, slices[50].Name)

	rest := decimal.Zero
	for i := 51; i <= 60; i++ {
		rest = rest.Add(decimal.NewFromInt(int64(1000 - i)))
	}
	assert.True(t, rest.Equal(slices[50].Value))

	t.Run("explicit limit", func(t *testing.T) {
		slices := BreakdownN(view, ByProduct, model.DirectionExpense, 5)
		assert.Len(t, slices, 6)
		assert.Len(t, BreakdownN(view, ByProduct, model.DirectionExpense, 0), 60)
	})
}

func TestBreakdownConservation(t *testing.T) {
	var view []model.Transaction
	for i := 0; i < 300; i++ {
		dir := model.DirectionExpense
		if i%7 == 0 {
			dir = model.DirectionIncome
		}
		view = append(view, model.Transaction{
			Direction:     dir,
			Amount:        decimal.New(int64(i*37%1000+1), -2),
			Type:          fmt.Sprintf("type-%d", i%90),
			Counterparty:  []string{"/", "", "Shop", fmt.Sprintf("shop-%d", i)}[i%4],
			Product:       fmt.Sprintf("p-%d", i%13),
			PaymentMethod: fmt.Sprintf("m-%d", i%3),
		})
	}

	for _, dir := range []model.Direction{model.DirectionExpense, model.DirectionIncome} {
		want := decimal.Zero
		for _, tx := range view {
			if tx.Direction == dir {
				want = want.Add(tx.Amount)
			}
		}

		for _, d := range Dimensions {
			for _, limit := range []int{1, 10, DefaultSliceLimit, 1000} {
				slices := BreakdownN(view, d, dir, limit)
				got := decimal.Zero
				for _, s := range slices {
					got = got.Add(s.Value)
				}
				assert.True(t, want.Equal(got), "%s/%s/%d: want %s, got %s", dir, d, limit, want, got)
				assert.LessOrEqual(t, len(slices), limit+1)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]model.Transaction{
		tx("2024-01-01 00:00:00", model.DirectionIncome, "100"),
		tx("2024-01-02 00:00:00", model.DirectionExpense, "30.25"),
		tx("2024-01-03 00:00:00", model.DirectionNeutral, "8"),
	})

	assert.Equal(t, 3, s.Count)
	assertDecimal(t, "100", s.Income)
	assertDecimal(t, "30.25", s.Expense)
	assertDecimal(t, "8", s.Neutral)
	assertDecimal(t, "69.75", s.Net)

	empty := Summarize(nil)
	assert.Zero(t, empty.Count)
	assert.True(t, empty.Net.IsZero())
}
