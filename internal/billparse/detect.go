package billparse

import (
	"strings"

	"github.com/Veraticus/billmerge/internal/model"
)

// Header and banner markers found in the exports.
const (
	labelTime        = "交易时间"
	labelAmountYuan  = "金额(元)"
	labelAmount      = "金额"
	labelCategory    = "交易分类"
	labelDescription = "商品说明"
	labelProduct     = "商品"

	alipayName        = "支付宝"
	alipayBanner      = "支付宝交易明细"
	alipayAccount     = "支付宝账户"
	wechatBanner      = "微信支付"
	gridCellSeparator = ","
)

// Detection is the outcome of locating the header row of an export.
type Detection struct {
	Vendor    model.Source
	Suspected model.Source // Guess from name and banner before the header was seen
	HeaderRow int
}

// SuspectVendor guesses the vendor from the file name and banner text alone.
// The guess only drives encoding selection and logging; the header row has
// the final say.
func SuspectVendor(name, text string) model.Source {
	if strings.Contains(name, alipayName) ||
		strings.Contains(text, alipayBanner) ||
		strings.Contains(text, alipayAccount) {
		return model.SourceAlipay
	}
	return model.SourceWeChat
}

// HasVendorMarkers reports whether decoded text contains any marker of either
// vendor. A miss usually means the bytes were decoded with the wrong charset.
func HasVendorMarkers(text string) bool {
	wechat := strings.Contains(text, wechatBanner) || strings.Contains(text, labelTime)
	alipay := strings.Contains(text, alipayName) ||
		(strings.Contains(text, labelCategory) && strings.Contains(text, labelProduct))
	return wechat || alipay
}

// ClassifyHeader decides whether row is a header line and which vendor wrote it.
func ClassifyHeader(row string) (model.Source, bool) {
	if !strings.Contains(row, labelTime) {
		return "", false
	}
	if strings.Contains(row, labelAmountYuan) {
		return model.SourceWeChat, true
	}
	if strings.Contains(row, labelCategory) && strings.Contains(row, labelDescription) {
		return model.SourceAlipay, true
	}
	return "", false
}

// DetectText finds the first header line of a delimited export.
func DetectText(name string, lines []string) (Detection, bool) {
	det := Detection{
		Suspected: SuspectVendor(name, strings.Join(lines, "\n")),
		HeaderRow: -1,
	}

	for i, line := range lines {
		if vendor, ok := ClassifyHeader(strings.TrimSpace(line)); ok {
			det.Vendor = vendor
			det.HeaderRow = i
			return det, true
		}
	}
	return det, false
}

// DetectGrid finds the first header row of a workbook sheet. Besides the
// text signatures it accepts any row with a time and an amount column, which
// is how workbook exports label the Alipay amount.
func DetectGrid(name string, rows [][]Value) (Detection, bool) {
	det := Detection{
		Suspected: SuspectVendor(name, ""),
		HeaderRow: -1,
	}

	for i, row := range rows {
		joined := joinCells(row)
		if vendor, ok := ClassifyHeader(joined); ok {
			det.Vendor = vendor
			det.HeaderRow = i
			return det, true
		}
		if strings.Contains(joined, labelTime) && strings.Contains(joined, labelAmount) {
			det.Vendor = model.SourceWeChat
			if strings.Contains(joined, labelCategory) {
				det.Vendor = model.SourceAlipay
			}
			det.HeaderRow = i
			return det, true
		}
	}
	return det, false
}

func joinCells(row []Value) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if cell.IsEmpty() {
			continue
		}
		parts = append(parts, String(cell))
	}
	return strings.Join(parts, gridCellSeparator)
}
