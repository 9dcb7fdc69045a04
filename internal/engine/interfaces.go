package engine

import (
	"context"

	"github.com/Veraticus/billmerge/internal/ingest"
)

// Ingester defines the contract for turning export files into transactions.
type Ingester interface {
	Run(ctx context.Context, files []ingest.File) ingest.Result
}
