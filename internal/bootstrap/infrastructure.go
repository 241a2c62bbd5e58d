package bootstrap

import (
	"context"

	"github.com/muhammadchandra19/tickstore/internal/infrastructure/binstore"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/csvsource"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/redis/querycache"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
	"github.com/muhammadchandra19/tickstore/pkg/redis"
	"github.com/shopspring/decimal"
)

// Infrastructure holds the adapters the usecases run on.
type Infrastructure struct {
	Source csvsource.TickSource
	Store  binstore.Reader
	Redis  redis.Client
	Cache  querycache.Cache
}

func (b *Bootstrap) registerSource() error {
	loc, err := b.Config.Store.LoadLocation()
	if err != nil {
		return err
	}

	b.Infrastructure.Source = csvsource.NewFileSource(csvsource.Config{
		Dir:      b.Config.Store.DataDir,
		Suffix:   b.Config.Store.FileSuffix,
		Workers:  Workers(b.Config.Store.Workers),
		Location: loc,
		Rules: csvsource.Rules{
			HourFrom:     b.Config.Clean.HourFrom,
			HourTo:       b.Config.Clean.HourTo,
			MaxJumpRatio: decimal.NewFromFloat(b.Config.Clean.MaxJumpRatio),
		},
	}, b.Logger)
	return nil
}

func (b *Bootstrap) registerStore() error {
	store, err := binstore.Open(b.Config.Store.BinaryPath, b.Config.Store.IndexPath)
	if err != nil {
		return err
	}
	b.Logger.Debug("store opened", logger.NewField("index", store.Index().String()))
	b.Infrastructure.Store = store
	return nil
}

// registerCache falls back to no caching when Redis is disabled or unreachable.
func (b *Bootstrap) registerCache(ctx context.Context) {
	b.Infrastructure.Cache = querycache.Noop{}
	if !b.Config.QueryCache.Enabled {
		return
	}

	client := redis.NewClient(b.Logger, &b.Config.Redis)
	if err := client.Connect(ctx); err != nil {
		b.Logger.WarnContext(ctx, "query cache disabled, redis unavailable", logger.NewField("error", err.Error()))
		_ = client.Disconnect(ctx)
		return
	}

	b.Infrastructure.Redis = client
	b.Infrastructure.Cache = querycache.NewRedisCache(client, b.Config.QueryCache.TTL)
}
