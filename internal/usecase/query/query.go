package query

import (
	"context"
	"time"

	tickDomain "github.com/muhammadchandra19/tickstore/internal/domain/tick"
	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/binstore"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/redis/querycache"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/interval"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

// Usecase answers window queries against an opened store.
type Usecase struct {
	store   binstore.Reader
	cache   querycache.Cache
	session interval.Session
	workers int
	logger  logger.Interface
}

var _ tickDomain.QueryUsecase = (*Usecase)(nil)

// NewUsecase creates a new query usecase.
func NewUsecase(store binstore.Reader, cache querycache.Cache, session interval.Session, workers int, logger logger.Interface) *Usecase {
	if cache == nil {
		cache = querycache.Noop{}
	}
	return &Usecase{
		store:   store,
		cache:   cache,
		session: session,
		workers: workers,
		logger:  logger,
	}
}

// Query validates window against the trading session and aggregates the ticks inside it.
func (u *Usecase) Query(ctx context.Context, window v1.Window) (v1.Aggregate, error) {
	if err := u.session.ValidateWindow(window.Start, window.End); err != nil {
		u.logger.WarnContext(ctx, "rejected query window",
			logger.NewField("start", window.Start),
			logger.NewField("end", window.End),
			logger.NewField("reason", err.Error()),
		)
		return v1.Aggregate{}, err
	}

	buildID := u.store.Index().BuildID

	cached, hit, err := u.cache.Get(ctx, buildID, window)
	if err != nil {
		u.logger.WarnContext(ctx, "query cache lookup failed", logger.NewField("error", err.Error()))
	}
	if hit {
		u.logger.DebugContext(ctx, "query cache hit", logger.NewField("build_id", buildID))
		return cached, nil
	}

	started := time.Now()
	agg, rng, err := u.store.Query(ctx, window, u.workers)
	if err != nil {
		if binstore.IsNoDataInRange(err) {
			u.logger.InfoContext(ctx, "no data in range",
				logger.NewField("start", window.Start),
				logger.NewField("end", window.End),
			)
		} else {
			u.logger.ErrorContext(ctx, err, logger.NewField("action", "query_store"))
		}
		return v1.Aggregate{}, errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "query finished",
		logger.NewField("range_start", rng.Start),
		logger.NewField("range_end", rng.End),
		logger.NewField("records_scanned", rng.Records()),
		logger.NewField("matched", agg.Count),
		logger.NewField("workers", u.workers),
		logger.NewField("elapsed", time.Since(started).String()),
	)

	if err := u.cache.Set(ctx, buildID, window, agg); err != nil {
		u.logger.WarnContext(ctx, "query cache store failed", logger.NewField("error", err.Error()))
	}
	return agg, nil
}
