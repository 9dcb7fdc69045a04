// Package engine owns the ledger for a single consumer and connects the
// ingestion pipeline to the views and aggregates derived from it.
package engine

import (
	"context"
	"log/slog"

	"github.com/Veraticus/billmerge/internal/aggregate"
	"github.com/Veraticus/billmerge/internal/ingest"
	"github.com/Veraticus/billmerge/internal/ledger"
	"github.com/Veraticus/billmerge/internal/model"
)

// Session holds the current ledger. After every batch the ledger is replaced
// wholesale, so views taken earlier stay valid snapshots. A Session is not
// safe for concurrent use.
type Session struct {
	ingester   Ingester
	ledger     ledger.Ledger
	sliceLimit int
}

// Config holds configuration options for a session.
type Config struct {
	SliceLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SliceLimit: aggregate.DefaultSliceLimit,
	}
}

// New creates a session with an empty ledger.
func New(ingester Ingester) *Session {
	return NewWithConfig(ingester, DefaultConfig())
}

// NewWithConfig creates a session with custom configuration.
func NewWithConfig(ingester Ingester, config Config) *Session {
	if config.SliceLimit <= 0 {
		config.SliceLimit = aggregate.DefaultSliceLimit
	}
	return &Session{
		ingester:   ingester,
		ledger:     ledger.New(),
		sliceLimit: config.SliceLimit,
	}
}

// IngestReport is the outcome of one Ingest call.
type IngestReport struct {
	Files []ingest.FileReport
	Stats ledger.MergeStats
	Added []model.Transaction // Records produced by the batch, before deduplication
}

// Ingest runs the pipeline over files and merges the result into the ledger.
func (s *Session) Ingest(ctx context.Context, files []ingest.File) IngestReport {
	slog.InfoContext(ctx, "Starting import", "files", len(files), "ledger_size", s.ledger.Len())

	result := s.ingester.Run(ctx, files)

	next, stats := ledger.Merge(s.ledger, result.Transactions)
	s.ledger = next

	slog.InfoContext(ctx, "Import complete",
		"records", len(result.Transactions),
		"new", stats.NewAdded,
		"duplicates", stats.Duplicates,
		"total", stats.Total)

	return IngestReport{
		Files: result.Files,
		Stats: stats,
		Added: result.Transactions,
	}
}

// Ledger returns the current ledger snapshot.
func (s *Session) Ledger() ledger.Ledger {
	return s.ledger
}

// Bounds returns the date span of the current ledger.
func (s *Session) Bounds() ledger.DateBounds {
	return ledger.Bounds(s.ledger)
}

// View returns the transactions matching f, newest first.
func (s *Session) View(f ledger.Filter) []model.Transaction {
	return ledger.View(s.ledger, f)
}

// Trend returns the trend series of the filtered view.
func (s *Session) Trend(f ledger.Filter, g aggregate.Granularity) []aggregate.TrendPoint {
	return aggregate.Trend(s.View(f), g)
}

// Breakdown returns the category breakdown of the filtered view for one
// direction.
func (s *Session) Breakdown(f ledger.Filter, d aggregate.Dimension, dir model.Direction) []aggregate.Slice {
	return aggregate.BreakdownN(s.View(f), d, dir, s.sliceLimit)
}

// Summary returns the totals of the filtered view.
func (s *Session) Summary(f ledger.Filter) aggregate.Summary {
	return aggregate.Summarize(s.View(f))
}

// Reset empties the ledger.
func (s *Session) Reset() {
	slog.Info("Clearing ledger", "size", s.ledger.Len())
	s.ledger = ledger.New()
}
