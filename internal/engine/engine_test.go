package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/billmerge/internal/aggregate"
	"github.com/Veraticus/billmerge/internal/ingest"
	"github.com/Veraticus/billmerge/internal/ledger"
	"github.com/Veraticus/billmerge/internal/model"
)

type stubIngester struct {
	batches [][]model.Transaction
	calls   int
}

func (s *stubIngester) Run(_ context.Context, files []ingest.File) ingest.Result {
	batch := s.batches[s.calls%len(s.batches)]
	s.calls++

	reports := make([]ingest.FileReport, len(files))
	for i, f := range files {
		reports[i] = ingest.FileReport{Name: f.Name, Records: len(batch), HeaderRow: 0}
	}
	return ingest.Result{Transactions: batch, Files: reports}
}

func txn(id, when string, dir model.Direction, amount int64, typ string) model.Transaction {
	return model.Transaction{
		TransactionID: id,
		Time:          when,
		Direction:     dir,
		Amount:        decimal.NewFromInt(amount),
		Type:          typ,
		Source:        model.SourceWeChat,
	}
}

func vendorAWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	rows := [][]any{
		{"交易时间", "交易类型", "交易对方", "商品", "收/支", "金额(元)", "支付方式", "当前状态", "交易单号", "商户单号", "备注"},
		{44927, "商户消费", "Shop", "Tea", "Expense", "100.00", "零钱", "支付成功", "A1", "", ""},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

const vendorBCSV = "交易时间,交易分类,交易对方,对方账号,商品说明,收/支,金额,收/付款方式,交易状态,交易订单号,商家订单号,备注\n" +
	"2023-01-02 08:00:00,投资理财,Fund,,Transfer,/,100.00,余额宝,交易成功,B1\t,,\n"

func TestSessionMixedVendors(t *testing.T) {
	s := New(ingest.NewPipeline(ingest.DefaultOptions()))

	report := s.Ingest(context.Background(), []ingest.File{
		{Name: "wechat.xlsx", Data: vendorAWorkbook(t)},
		{Name: "alipay.csv", Data: []byte(vendorBCSV)},
	})

	require.Len(t, report.Files, 2)
	assert.Equal(t, ledger.MergeStats{Total: 2, NewAdded: 2}, report.Stats)
	require.Equal(t, 2, s.Ledger().Len())

	a, ok := s.Ledger().Get("A1")
	require.True(t, ok)
	assert.Equal(t, "2023-01-01 00:00:00", a.Time)
	assert.Equal(t, model.DirectionExpense, a.Direction)
	assert.Equal(t, model.SourceWeChat, a.Source)

	b, ok := s.Ledger().Get("B1")
	require.True(t, ok)
	assert.Equal(t, model.DirectionNeutral, b.Direction)
	assert.Equal(t, model.SourceAlipay, b.Source)
	assert.True(t, a.Amount.Equal(b.Amount))

	summary := s.Summary(ledger.Filter{})
	assert.Equal(t, 2, summary.Count)
	assert.True(t, decimal.NewFromInt(100).Equal(summary.Neutral))
	assert.True(t, decimal.NewFromInt(-100).Equal(summary.Net))

	assert.Equal(t, ledger.DateBounds{Earliest: "2023-01-01", Latest: "2023-01-02"}, s.Bounds())
}

func TestSessionRepeatedImport(t *testing.T) {
	s := New(ingest.NewPipeline(ingest.DefaultOptions()))
	files := []ingest.File{{Name: "alipay.csv", Data: []byte(vendorBCSV)}}

	first := s.Ingest(context.Background(), files)
	assert.Equal(t, 1, first.Stats.NewAdded)

	second := s.Ingest(context.Background(), files)
	assert.Equal(t, 0, second.Stats.NewAdded)
	assert.Equal(t, 1, second.Stats.Duplicates)
	assert.Equal(t, first.Stats.Total, second.Stats.Total)
	assert.Equal(t, 1, s.Ledger().Len())
}

func TestSessionViewsAreSnapshots(t *testing.T) {
	stub := &stubIngester{batches: [][]model.Transaction{
		{txn("1", "2024-01-01 10:00:00", model.DirectionExpense, 10, "餐饮")},
		{txn("2", "2024-02-01 10:00:00", model.DirectionIncome, 50, "转账")},
	}}
	s := New(stub)

	s.Ingest(context.Background(), []ingest.File{{Name: "a.csv"}})
	before := s.Ledger()
	view := s.View(ledger.Filter{})

	report := s.Ingest(context.Background(), []ingest.File{{Name: "b.csv"}})
	assert.Equal(t, 1, report.Stats.NewAdded)
	assert.Len(t, report.Added, 1)

	assert.Equal(t, 1, before.Len())
	assert.Len(t, view, 1)
	assert.Equal(t, 2, s.Ledger().Len())

	points := s.Trend(ledger.Filter{}, aggregate.Monthly)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01", points[0].Key)

	income := s.View(ledger.Filter{Direction: model.DirectionIncome})
	require.Len(t, income, 1)
	assert.Equal(t, "2", income[0].TransactionID)

	s.Reset()
	assert.Zero(t, s.Ledger().Len())
	assert.Equal(t, 2, stub.calls)
	assert.Empty(t, s.Trend(ledger.Filter{}, aggregate.Daily))
}

func TestSessionBreakdownLimit(t *testing.T) {
	var batch []model.Transaction
	for i := 0; i < 60; i++ {
		batch = append(batch, txn(fmt.Sprint(i), "2024-01-01 10:00:00", model.DirectionExpense, int64(i+1), fmt.Sprintf("type-%02d", i)))
	}

	t.Run("default", func(t *testing.T) {
		s := New(&stubIngester{batches: [][]model.Transaction{batch}})
		s.Ingest(context.Background(), nil)

		slices := s.Breakdown(ledger.Filter{}, aggregate.ByType, model.DirectionExpense)
		require.Len(t, slices, 51)
		assert.Equal(t, "type-59", slices[0].Name)
		assert.Equal(t, model.LabelOther, slices[50].Name)
		assert.True(t, decimal.NewFromInt(55).Equal(slices[50].Value), "1+2+...+10")
	})

	t.Run("configured", func(t *testing.T) {
		s := NewWithConfig(&stubIngester{batches: [][]model.Transaction{batch}}, Config{SliceLimit: 3})
		s.Ingest(context.Background(), nil)

		slices := s.Breakdown(ledger.Filter{Search: "type-5"}, aggregate.ByType, model.DirectionExpense)
		require.Len(t, slices, 4)
		assert.Equal(t, model.LabelOther, slices[3].Name)
	})
}
