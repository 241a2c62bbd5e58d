package tick

import (
	"context"
	"time"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
)

// IngestSummary describes one ingestion run.
type IngestSummary struct {
	BuildID     string
	Files       int
	Rows        int64
	Dropped     int64
	Records     int64
	Minutes     int
	BinaryBytes int64
	Elapsed     time.Duration
}

// IngestUsecase rebuilds the binary store from the CSV source.
type IngestUsecase interface {
	Ingest(ctx context.Context) (IngestSummary, error)
}

// QueryUsecase answers window aggregate queries against the binary store.
type QueryUsecase interface {
	Query(ctx context.Context, window v1.Window) (v1.Aggregate, error)
}
