package ingest

import (
	"github.com/Veraticus/billmerge/internal/model"
)

// Reason explains why a row or a whole file contributed nothing.
type Reason string

// Skip reasons.
const (
	ReasonUnrecognizedFile Reason = "unrecognized_file"
	ReasonMalformedRow     Reason = "malformed_row"
	ReasonInvalidRecord    Reason = "invalid_record"
	ReasonMissingID        Reason = "missing_id"
	ReasonFileError        Reason = "file_error"
)

// FileReport is the per-file diagnostic of one pipeline run.
type FileReport struct {
	Err         error
	Reasons     map[Reason]int
	Name        string
	Vendor      model.Source // Empty when no header row was found
	Encoding    Encoding     // Encoding that was finally used; empty for workbooks
	Kind        Kind
	HeaderRow   int // -1 when no header row was found
	Records     int
	RowsSkipped int
	Retried     bool // Text was decoded a second time with the alternate encoding
}

func newFileReport(f File) FileReport {
	return FileReport{
		Name:      f.Name,
		Kind:      f.kind(),
		HeaderRow: -1,
		Reasons:   make(map[Reason]int),
	}
}

func (r *FileReport) skipRow(reason Reason) {
	r.RowsSkipped++
	r.Reasons[reason]++
}

func (r *FileReport) fail(reason Reason, err error) {
	r.Reasons[reason]++
	r.Err = err
}

// Recognized reports whether a header row was located.
func (r FileReport) Recognized() bool {
	return r.HeaderRow >= 0
}

// Result is the outcome of a batch: all valid records in input order plus
// one report per input file.
type Result struct {
	Transactions []model.Transaction
	Files        []FileReport
}
