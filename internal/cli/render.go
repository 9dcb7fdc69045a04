package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/billmerge/internal/aggregate"
	"github.com/Veraticus/billmerge/internal/engine"
	"github.com/Veraticus/billmerge/internal/ingest"
	"github.com/Veraticus/billmerge/internal/ledger"
	"github.com/Veraticus/billmerge/internal/model"
)

const maxCellWidth = 24

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
}

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// ImportReport renders the per-file diagnostics and merge statistics of one
// import.
func ImportReport(report engine.IngestReport) string {
	t := newTable("File", "Vendor", "Format", "Encoding", "Records", "Skipped", "Status")
	for _, f := range report.Files {
		vendor := string(f.Vendor)
		if vendor == "" {
			vendor = "-"
		}
		encoding := string(f.Encoding)
		if f.Retried {
			encoding += " (retried)"
		}
		t.Row(
			truncate(f.Name, maxCellWidth),
			vendor,
			f.Kind.String(),
			encoding,
			fmt.Sprint(f.Records),
			fmt.Sprint(f.RowsSkipped),
			fileStatus(f),
		)
	}

	stats := fmt.Sprintf("%d new, %d duplicates, ledger holds %d transactions",
		report.Stats.NewAdded, report.Stats.Duplicates, report.Stats.Total)

	return t.String() + "\n" + FormatSuccess(stats)
}

func fileStatus(f ingest.FileReport) string {
	if f.Err != nil && !f.Recognized() {
		return ErrorStyle.Render(ErrorIcon + " " + reasonList(f.Reasons))
	}
	if f.Err != nil {
		return ErrorStyle.Render(ErrorIcon + " " + f.Err.Error())
	}
	if f.RowsSkipped > 0 {
		return WarningStyle.Render(reasonList(f.Reasons))
	}
	return SuccessStyle.Render(SuccessIcon)
}

func reasonList(reasons map[ingest.Reason]int) string {
	keys := make([]string, 0, len(reasons))
	for r := range reasons {
		keys = append(keys, string(r))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, reasons[ingest.Reason(k)]))
	}
	return strings.Join(parts, " ")
}

// TransactionTable renders at most limit transactions of a view. A
// non-positive limit renders all of them.
func TransactionTable(view []model.Transaction, limit int) string {
	shown := view
	if limit > 0 && len(view) > limit {
		shown = view[:limit]
	}

	t := newTable("Time", "Direction", "Amount", "Type", "Counterparty", "Product", "Method", "Source")
	for _, tx := range shown {
		t.Row(
			tx.Time,
			string(tx.Direction),
			directionStyle(tx.Direction).Render(Money(tx.Amount)),
			truncate(tx.Type, maxCellWidth),
			truncate(tx.Counterparty, maxCellWidth),
			truncate(tx.Product, maxCellWidth),
			truncate(tx.PaymentMethod, maxCellWidth),
			string(tx.Source),
		)
	}

	out := t.String()
	if hidden := len(view) - len(shown); hidden > 0 {
		out += "\n" + SubtleStyle.Render(fmt.Sprintf("... and %d more", hidden))
	}
	return out
}

func directionStyle(dir model.Direction) lipgloss.Style {
	switch dir {
	case model.DirectionIncome:
		return IncomeStyle
	case model.DirectionExpense:
		return ExpenseStyle
	default:
		return SubtleStyle
	}
}

// TrendTable renders a trend series with the net of each bucket.
func TrendTable(points []aggregate.TrendPoint, g aggregate.Granularity) string {
	t := newTable(periodHeader(g), "Income", "Expense", "Net")
	for _, p := range points {
		t.Row(
			p.Key,
			IncomeStyle.Render(Money(p.Income)),
			ExpenseStyle.Render(Money(p.Expense)),
			Money(p.Income.Sub(p.Expense)),
		)
	}
	return t.String()
}

func periodHeader(g aggregate.Granularity) string {
	switch g {
	case aggregate.Daily:
		return "Day"
	case aggregate.Yearly:
		return "Year"
	default:
		return "Month"
	}
}

// BreakdownTable renders category slices with their share of the total.
func BreakdownTable(slices []aggregate.Slice, d aggregate.Dimension, dir model.Direction) string {
	total := decimal.Zero
	for _, s := range slices {
		total = total.Add(s.Value)
	}

	hundred := decimal.NewFromInt(100)
	t := newTable("#", fmt.Sprintf("%s (%s)", strings.ToUpper(string(d[:1]))+string(d[1:]), dir), "Amount", "Share")
	for i, s := range slices {
		share := "-"
		if !total.IsZero() {
			share = s.Value.Div(total).Mul(hundred).StringFixed(1) + "%"
		}
		t.Row(fmt.Sprint(i+1), truncate(s.Name, maxCellWidth), Money(s.Value), share)
	}
	return t.String() + "\n" + SubtleStyle.Render("Total "+Money(total))
}

// SummaryBox renders the totals of a view and the date span of the ledger.
func SummaryBox(s aggregate.Summary, bounds ledger.DateBounds) string {
	span := "empty ledger"
	if bounds.Earliest != "" {
		span = bounds.Earliest + " → " + bounds.Latest
	}

	content := fmt.Sprintf("Transactions: %d\n", s.Count) +
		fmt.Sprintf("Income:       %s\n", IncomeStyle.Render(Money(s.Income))) +
		fmt.Sprintf("Expense:      %s\n", ExpenseStyle.Render(Money(s.Expense))) +
		fmt.Sprintf("Neutral:      %s\n", Money(s.Neutral)) +
		fmt.Sprintf("Net:          %s\n", Money(s.Net)) +
		fmt.Sprintf("Period:       %s", span)

	return RenderBox(ChartIcon+" Summary", content)
}
