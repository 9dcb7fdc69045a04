package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/billmerge/internal/billparse"
	"github.com/Veraticus/billmerge/internal/common"
	"github.com/Veraticus/billmerge/internal/model"
)

// Options configures a Pipeline.
type Options struct {
	// OnFile, when set, is called after each file has been processed.
	OnFile func(FileReport)
	// DefaultEncoding is tried first for delimited files.
	DefaultEncoding Encoding
	// AlipayEncoding is tried first for files whose name marks them as Alipay exports.
	AlipayEncoding Encoding
}

// DefaultOptions returns the encodings the vendors actually ship with.
func DefaultOptions() Options {
	return Options{
		DefaultEncoding: EncodingUTF8,
		AlipayEncoding:  EncodingGBK,
	}
}

// Pipeline turns a batch of export files into canonical transactions.
// Files are processed strictly one after another in input order.
type Pipeline struct {
	opts Options
}

// NewPipeline creates a pipeline. Zero encodings fall back to DefaultOptions.
func NewPipeline(opts Options) *Pipeline {
	defaults := DefaultOptions()
	if opts.DefaultEncoding == "" {
		opts.DefaultEncoding = defaults.DefaultEncoding
	}
	if opts.AlipayEncoding == "" {
		opts.AlipayEncoding = defaults.AlipayEncoding
	}
	return &Pipeline{opts: opts}
}

// Run ingests every file in order. A failing file is logged, recorded in its
// report and contributes no records; it never stops the batch. The context
// only carries logging values; a batch is not cancelable once started.
func (p *Pipeline) Run(ctx context.Context, files []File) Result {
	var result Result

	for _, f := range files {
		report, txs := p.runFile(ctx, f)

		slog.InfoContext(ctx, "Processed file",
			"file", report.Name,
			"kind", report.Kind,
			"vendor", report.Vendor,
			"records", report.Records,
			"skipped", report.RowsSkipped)

		result.Files = append(result.Files, report)
		result.Transactions = append(result.Transactions, txs...)

		if p.opts.OnFile != nil {
			p.opts.OnFile(report)
		}
	}

	return result
}

func (p *Pipeline) runFile(ctx context.Context, f File) (report FileReport, txs []model.Transaction) {
	report = newFileReport(f)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic while parsing %s: %v", f.Name, r)
			slog.ErrorContext(ctx, "Failed to parse file", "file", f.Name, "error", err)
			report.fail(ReasonFileError, err)
			report.Records = 0
			txs = nil
		}
	}()

	data, err := f.load()
	if err != nil {
		slog.WarnContext(ctx, "Failed to read file", "file", f.Name, "error", err)
		report.fail(ReasonFileError, err)
		return report, nil
	}
	if len(data) == 0 {
		report.fail(ReasonFileError, common.ErrEmptyFile)
		return report, nil
	}

	switch report.Kind {
	case KindWorkbook:
		txs, err = p.parseWorkbook(f.Name, data, &report)
	default:
		txs, err = p.parseDelimited(ctx, f.Name, data, &report)
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to parse file", "file", f.Name, "error", err)
		return report, nil
	}

	report.Records = len(txs)
	return report, txs
}

func (p *Pipeline) parseDelimited(ctx context.Context, name string, data []byte, report *FileReport) ([]model.Transaction, error) {
	primary := p.opts.DefaultEncoding
	retry := p.opts.AlipayEncoding
	if strings.Contains(name, "支付宝") {
		primary, retry = retry, primary
	}
	if retry == primary {
		retry = primary.Alternate()
	}

	text, err := primary.Decode(data)
	if err != nil {
		report.fail(ReasonFileError, err)
		return nil, err
	}
	report.Encoding = primary

	if !billparse.HasVendorMarkers(text) {
		slog.DebugContext(ctx, "No vendor markers found, retrying with alternate encoding",
			"file", name,
			"encoding", primary,
			"retry_encoding", retry)

		text, err = retry.Decode(data)
		if err != nil {
			report.fail(ReasonFileError, err)
			return nil, err
		}
		report.Encoding = retry
		report.Retried = true
	}

	lines := billparse.SplitLines(text)
	det, ok := billparse.DetectText(name, lines)
	if !ok {
		err := fmt.Errorf("%w: %s", common.ErrUnrecognizedFile, name)
		report.fail(ReasonUnrecognizedFile, err)
		return nil, err
	}
	report.Vendor = det.Vendor
	report.HeaderRow = det.HeaderRow

	headers := billparse.SplitHeader(lines[det.HeaderRow])

	var txs []model.Transaction
	for _, line := range lines[det.HeaderRow+1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := billparse.SplitRow(line)
		if len(fields) < billparse.MinFields {
			report.skipRow(ReasonMalformedRow)
			continue
		}

		if tx, ok := accept(billparse.NewTextRecord(det.Vendor, headers, fields), report); ok {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func (p *Pipeline) parseWorkbook(name string, data []byte, report *FileReport) ([]model.Transaction, error) {
	grid, err := readGrid(data)
	if err != nil {
		report.fail(ReasonFileError, err)
		return nil, err
	}

	det, ok := billparse.DetectGrid(name, grid)
	if !ok {
		err := fmt.Errorf("%w: %s", common.ErrUnrecognizedFile, name)
		report.fail(ReasonUnrecognizedFile, err)
		return nil, err
	}
	report.Vendor = det.Vendor
	report.HeaderRow = det.HeaderRow

	labels := make([]string, len(grid[det.HeaderRow]))
	for i, cell := range grid[det.HeaderRow] {
		labels[i] = billparse.String(cell)
	}
	headers := billparse.CleanHeaders(labels)

	var txs []model.Transaction
	for _, row := range grid[det.HeaderRow+1:] {
		if blankRow(row) {
			continue
		}
		if tx, ok := accept(billparse.NewRawRecord(det.Vendor, headers, row), report); ok {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

// accept normalizes one record and applies the id requirement.
func accept(rec billparse.RawRecord, report *FileReport) (model.Transaction, bool) {
	tx, ok := billparse.Normalize(rec)
	if !ok {
		report.skipRow(ReasonInvalidRecord)
		return model.Transaction{}, false
	}
	if tx.TransactionID == "" {
		report.skipRow(ReasonMissingID)
		return model.Transaction{}, false
	}
	return tx, true
}

func blankRow(row []billparse.Value) bool {
	for _, cell := range row {
		if !cell.IsEmpty() {
			return false
		}
	}
	return true
}
