package model

import (
	"github.com/shopspring/decimal"
)

// TimeLayout is the canonical timestamp layout. Lexical order of strings in
// this layout equals chronological order.
const TimeLayout = "2006-01-02 15:04:05"

// DateLen is the length of the date-only prefix of a canonical timestamp.
const DateLen = len("2006-01-02")

// Transaction represents a single bill line from any supported payment provider.
type Transaction struct {
	Amount        decimal.Decimal
	Time          string // Canonical YYYY-MM-DD HH:mm:ss
	Type          string // Vendor-supplied category label
	Counterparty  string // "/" means unknown and is kept verbatim
	Product       string
	Direction     Direction
	PaymentMethod string
	Status        string
	TransactionID string // Dedup key, always non-empty once in a ledger
	MerchantID    string
	Note          string
	Source        Source
}

// Date returns the date-only prefix of the timestamp, or the whole value when
// it is shorter than a date.
func (t Transaction) Date() string {
	if len(t.Time) < DateLen {
		return t.Time
	}
	return t.Time[:DateLen]
}

// Source identifies the payment provider an export came from.
type Source string

// Supported sources.
const (
	SourceWeChat Source = "WeChat"
	SourceAlipay Source = "Alipay"
)

// Direction describes whether money moved in, out, or neither.
type Direction string

// Canonical direction labels.
const (
	DirectionIncome  Direction = "Income"
	DirectionExpense Direction = "Expense"
	DirectionNeutral Direction = "Neutral"
)

// Vendor-side direction labels.
const (
	vendorIncome  = "收入"
	vendorExpense = "支出"
	vendorNeutral = "不计收支"
	// NeutralSentinel is the placeholder both vendors use for "not applicable".
	NeutralSentinel = "/"
)

// ParseDirection maps a raw vendor or canonical label onto a Direction.
// The boolean reports whether the label was recognized; unrecognized labels
// are treated as neutral.
func ParseDirection(raw string) (Direction, bool) {
	switch raw {
	case vendorIncome, string(DirectionIncome):
		return DirectionIncome, true
	case vendorExpense, string(DirectionExpense):
		return DirectionExpense, true
	case vendorNeutral, string(DirectionNeutral), NeutralSentinel, "":
		return DirectionNeutral, true
	default:
		return DirectionNeutral, false
	}
}

// Labels used when a value is missing or collapsed.
const (
	LabelOther           = "Other"
	LabelUnknownMerchant = "Unknown Merchant"
	LabelUnknown         = "Unknown"
)
