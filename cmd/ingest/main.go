package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadchandra19/tickstore/internal/bootstrap"
	"github.com/muhammadchandra19/tickstore/pkg/config"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
	"github.com/muhammadchandra19/tickstore/pkg/util"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout))
}

func run(ctx context.Context, args []string, stdout io.Writer) int {
	cfg := config.Config{}
	if err := config.Load(&cfg); err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}

	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	var (
		dataDir = fs.String("data", cfg.Store.DataDir, "Directory holding the tick CSV files")
		binPath = fs.String("bin", cfg.Store.BinaryPath, "Binary file to write")
		idxPath = fs.String("index", cfg.Store.IndexPath, "Index file to write")
		workers = fs.Int("workers", cfg.Store.Workers, "CSV producers (0 means one per CPU)")
		codec   = fs.String("codec", cfg.Store.Codec, "Record codec: milli or legacy")
	)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	cfg.Store.DataDir = *dataDir
	cfg.Store.BinaryPath = *binPath
	cfg.Store.IndexPath = *idxPath
	cfg.Store.Workers = *workers
	cfg.Store.Codec = *codec

	log, err := bootstrap.NewLogger(cfg.App)
	if err != nil {
		slog.Error("Failed to create logger", "error", err)
		return 1
	}
	defer log.Sync()

	ctx = util.WithCommand(util.WithRequestID(ctx, ""), "ingest")

	app, err := (&bootstrap.Bootstrap{}).InitIngest(bootstrap.BootstrapConfig{Config: cfg, Logger: log})
	if err != nil {
		log.ErrorContext(ctx, err, logger.NewField("action", "init_ingest"))
		return 1
	}

	summary, err := app.Usecase.IngestUsecase.Ingest(ctx)
	if err != nil {
		log.ErrorContext(ctx, err, logger.NewField("action", "ingest"))
		return 1
	}

	fmt.Fprintf(stdout, "Ingested %d ticks from %d files (%d rows, %d dropped) into %s in %s\n",
		summary.Records, summary.Files, summary.Rows, summary.Dropped, cfg.Store.BinaryPath, summary.Elapsed)
	fmt.Fprintf(stdout, "Index %s: %d minutes, build %s\n", cfg.Store.IndexPath, summary.Minutes, summary.BuildID)
	return 0
}
