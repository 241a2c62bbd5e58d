package ingest

import (
	"context"
	"time"

	tickDomain "github.com/muhammadchandra19/tickstore/internal/domain/tick"
	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/binstore"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/csvsource"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

// Target names the files an ingestion run replaces.
type Target struct {
	BinaryPath string
	IndexPath  string
	Codec      string
}

// Usecase rebuilds the binary store from a tick source.
type Usecase struct {
	source csvsource.TickSource
	target Target
	logger logger.Interface
}

var _ tickDomain.IngestUsecase = (*Usecase)(nil)

// NewUsecase creates a new ingest usecase.
func NewUsecase(source csvsource.TickSource, target Target, logger logger.Interface) *Usecase {
	return &Usecase{source: source, target: target, logger: logger}
}

// Ingest loads every tick from the source and rewrites the binary file and its index.
func (u *Usecase) Ingest(ctx context.Context) (tickDomain.IngestSummary, error) {
	started := time.Now()

	res, err := u.source.Load(ctx)
	if err != nil {
		u.logger.ErrorContext(ctx, err, logger.NewField("action", "load_ticks"))
		return tickDomain.IngestSummary{}, errors.TracerFromError(err)
	}

	written, err := binstore.WriteStore(u.target.BinaryPath, u.target.IndexPath, u.target.Codec, toRecords(res.Ticks))
	if err != nil {
		u.logger.ErrorContext(ctx, err, logger.NewField("action", "write_store"))
		return tickDomain.IngestSummary{}, errors.TracerFromError(err)
	}

	summary := tickDomain.IngestSummary{
		BuildID:     written.Index.BuildID,
		Files:       res.Files,
		Rows:        res.Rows,
		Dropped:     res.Dropped,
		Records:     written.Index.RecordCount,
		Minutes:     len(written.Index.Minutes()),
		BinaryBytes: written.BinaryBytes,
		Elapsed:     time.Since(started),
	}

	if summary.Records == 0 {
		u.logger.WarnContext(ctx, "no ticks survived cleaning, store is empty",
			logger.NewField("files", summary.Files),
			logger.NewField("rows", summary.Rows),
		)
	}
	u.logger.InfoContext(ctx, "ingestion finished",
		logger.NewField("build_id", summary.BuildID),
		logger.NewField("files", summary.Files),
		logger.NewField("rows", summary.Rows),
		logger.NewField("kept", summary.Records),
		logger.NewField("dropped", summary.Dropped),
		logger.NewField("minutes", summary.Minutes),
		logger.NewField("binary_bytes", summary.BinaryBytes),
		logger.NewField("elapsed", summary.Elapsed.String()),
	)
	return summary, nil
}

func toRecords(ticks []v1.Tick) []binstore.Record {
	records := make([]binstore.Record, len(ticks))
	for i, t := range ticks {
		records[i] = binstore.Record{
			UnixMilli: t.Timestamp.UnixMilli(),
			Price:     t.Price,
			Volume:    t.Volume,
		}
	}
	return records
}
