package bootstrap

import (
	"context"
	"runtime"

	"github.com/muhammadchandra19/tickstore/pkg/config"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
)

// Bootstrap wires the store, its collaborators and the usecases for one command.
type Bootstrap struct {
	Config         config.Config
	Logger         logger.Interface
	Infrastructure Infrastructure
	Usecase        Usecase
}

// BootstrapConfig is the config for the bootstrap.
type BootstrapConfig struct {
	Config config.Config
	Logger logger.Interface
}

// NewLogger builds the process logger from the app config. Every entry carries
// the app name and environment.
func NewLogger(cfg config.AppConfig) (*logger.Logger, error) {
	log, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutputPaths(cfg.LogOutput),
		logger.WithTimeKey(cfg.LogTimeKey),
		logger.WithLevelKey(cfg.LogLevelKey),
		logger.WithCallerTraceSkip(cfg.LogCallerSkip),
	)
	if err != nil {
		return nil, err
	}
	return log.WithFields(
		logger.NewField("app", cfg.Name),
		logger.NewField("environment", cfg.Environment),
	), nil
}

// Workers resolves a configured worker count; zero or less means one per CPU.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// InitIngest initializes the bootstrap for an ingestion run.
func (b *Bootstrap) InitIngest(cfg BootstrapConfig) (Bootstrap, error) {
	b.Config = cfg.Config
	b.Logger = cfg.Logger

	if err := b.registerSource(); err != nil {
		return *b, err
	}
	b.registerIngestUsecase()

	return *b, nil
}

// InitQuery initializes the bootstrap for answering queries.
func (b *Bootstrap) InitQuery(ctx context.Context, cfg BootstrapConfig) (Bootstrap, error) {
	b.Config = cfg.Config
	b.Logger = cfg.Logger

	if err := b.registerStore(); err != nil {
		return *b, err
	}
	b.registerCache(ctx)
	if err := b.registerQueryUsecase(); err != nil {
		return *b, err
	}

	return *b, nil
}

// Close releases the connections opened by Init.
func (b *Bootstrap) Close(ctx context.Context) {
	if b.Infrastructure.Redis == nil {
		return
	}
	if err := b.Infrastructure.Redis.Disconnect(ctx); err != nil {
		b.Logger.ErrorContext(ctx, err, logger.NewField("action", "disconnect_redis"))
	}
}
