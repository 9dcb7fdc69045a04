package billparse

import (
	"log/slog"

	"github.com/Veraticus/billmerge/internal/model"
)

// Field names a canonical transaction attribute.
type Field int

// Canonical fields.
const (
	FieldTime Field = iota
	FieldType
	FieldCounterparty
	FieldProduct
	FieldDirection
	FieldAmount
	FieldPaymentMethod
	FieldStatus
	FieldTransactionID
	FieldMerchantID
	FieldNote
)

type columnMap map[Field]string

// columns maps each canonical field onto the header label a vendor uses.
var columns = map[model.Source]columnMap{
	model.SourceWeChat: {
		FieldTime:          "交易时间",
		FieldType:          "交易类型",
		FieldCounterparty:  "交易对方",
		FieldProduct:       "商品",
		FieldDirection:     "收/支",
		FieldAmount:        "金额(元)",
		FieldPaymentMethod: "支付方式",
		FieldStatus:        "当前状态",
		FieldTransactionID: "交易单号",
		FieldMerchantID:    "商户单号",
		FieldNote:          "备注",
	},
	model.SourceAlipay: {
		FieldTime:          "交易时间",
		FieldType:          "交易分类",
		FieldCounterparty:  "交易对方",
		FieldProduct:       "商品说明",
		FieldDirection:     "收/支",
		FieldAmount:        "金额",
		FieldPaymentMethod: "收/付款方式",
		FieldStatus:        "交易状态",
		FieldTransactionID: "交易订单号",
		FieldMerchantID:    "商家订单号",
		FieldNote:          "备注",
	},
}

// Column returns the header label vendor uses for field, or "" when the
// vendor is unknown.
func Column(vendor model.Source, field Field) string {
	return columns[vendor][field]
}

// RawRecord is one data row tagged with the vendor that produced it. Fields
// are only reachable through the vendor's column map.
type RawRecord struct {
	cells  map[string]Value
	Vendor model.Source
}

// NewRawRecord zips header labels with the cells of one row. Cells beyond the
// header are ignored and missing cells read as Empty.
func NewRawRecord(vendor model.Source, headers []string, row []Value) RawRecord {
	cells := make(map[string]Value, len(headers))
	for i, h := range headers {
		if i < len(row) {
			cells[h] = row[i]
		} else {
			cells[h] = Empty
		}
	}
	return RawRecord{Vendor: vendor, cells: cells}
}

// NewTextRecord is NewRawRecord for already split text fields.
func NewTextRecord(vendor model.Source, headers, fields []string) RawRecord {
	row := make([]Value, len(fields))
	for i, f := range fields {
		if f == "" {
			row[i] = Empty
			continue
		}
		row[i] = Text(f)
	}
	return NewRawRecord(vendor, headers, row)
}

// Get returns the cell holding field for this record's vendor.
func (r RawRecord) Get(field Field) Value {
	label := Column(r.Vendor, field)
	if label == "" {
		return Empty
	}
	return r.cells[label]
}

// Normalize maps a vendor record onto the canonical schema. It reports false
// when the record has no usable time or a non-finite amount; the caller drops
// such records. A missing transaction id is left for the caller to judge.
func Normalize(r RawRecord) (model.Transaction, bool) {
	if _, ok := columns[r.Vendor]; !ok {
		return model.Transaction{}, false
	}

	amount, ok := Amount(r.Get(FieldAmount))
	if !ok {
		return model.Transaction{}, false
	}

	tx := model.Transaction{
		Time:          NormalizeDate(r.Get(FieldTime)),
		Type:          String(r.Get(FieldType)),
		Counterparty:  String(r.Get(FieldCounterparty)),
		Product:       String(r.Get(FieldProduct)),
		Amount:        amount,
		PaymentMethod: String(r.Get(FieldPaymentMethod)),
		Status:        String(r.Get(FieldStatus)),
		TransactionID: StripControl(String(r.Get(FieldTransactionID))),
		MerchantID:    StripControl(String(r.Get(FieldMerchantID))),
		Note:          String(r.Get(FieldNote)),
		Source:        r.Vendor,
	}
	if tx.Time == "" {
		return model.Transaction{}, false
	}

	rawDirection := String(r.Get(FieldDirection))
	direction, known := model.ParseDirection(rawDirection)
	if !known {
		slog.Debug("Unrecognized direction label, treating as neutral",
			"label", rawDirection,
			"source", r.Vendor,
			"transaction_id", tx.TransactionID)
	}
	tx.Direction = direction

	if r.Vendor == model.SourceAlipay && tx.Type == "" {
		tx.Type = model.LabelOther
	}

	return tx, true
}
