package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadchandra19/tickstore/internal/bootstrap"
	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/binstore"
	"github.com/muhammadchandra19/tickstore/internal/report"
	"github.com/muhammadchandra19/tickstore/pkg/config"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
	"github.com/muhammadchandra19/tickstore/pkg/util"
)

// TimeLayout is the format of the start and end arguments.
const TimeLayout = "2006-01-02-15:04:05.000"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Config{}
	if err := config.Load(&cfg); err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}

	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		binPath = fs.String("bin", cfg.Store.BinaryPath, "Binary file to read")
		idxPath = fs.String("index", cfg.Store.IndexPath, "Index file to read")
		workers = fs.Int("workers", cfg.Store.Workers, "Scanner goroutines (0 means one per CPU)")
		output  = fs.String("out", cfg.Report.OutputPath, "CSV file the result is written to")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: query [flags] <start_time> <end_time>\n")
		fmt.Fprintf(stderr, "Times use the format YYYY-MM-DD-HH:MM:SS.sss in %s\n", cfg.Store.Location)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}
	cfg.Store.BinaryPath = *binPath
	cfg.Store.IndexPath = *idxPath
	cfg.Store.Workers = *workers
	cfg.Report.OutputPath = *output

	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}

	loc, err := cfg.Store.LoadLocation()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	window, err := parseWindow(fs.Arg(0), fs.Arg(1), loc)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	log, err := bootstrap.NewLogger(cfg.App)
	if err != nil {
		slog.Error("Failed to create logger", "error", err)
		return 1
	}
	defer log.Sync()

	ctx = util.WithCommand(util.WithRequestID(ctx, ""), "query")

	app, err := (&bootstrap.Bootstrap{}).InitQuery(ctx, bootstrap.BootstrapConfig{Config: cfg, Logger: log})
	if err != nil {
		log.ErrorContext(ctx, err, logger.NewField("action", "init_query"))
		return 1
	}
	defer app.Close(ctx)

	agg, err := app.Usecase.QueryUsecase.Query(ctx, window)
	switch {
	case binstore.IsNoDataInRange(err):
		fmt.Fprintln(stdout, report.NoDataMessage)
		return 0
	case errors.ErrorCodeEquals(err, string(errors.StoreInvalidWindow)):
		fmt.Fprintf(stderr, "Error: %s\n", errorMessage(err))
		return 1
	case err != nil:
		return 1
	}

	if err := report.Print(stdout, agg); err != nil {
		return 1
	}
	if !agg.HasData() {
		return 0
	}
	if err := report.WriteCSV(cfg.Report.OutputPath, agg); err != nil {
		log.ErrorContext(ctx, err, logger.NewField("action", "write_report"))
		return 1
	}
	fmt.Fprintf(stdout, "Query result saved to %s\n", cfg.Report.OutputPath)
	return 0
}

func parseWindow(start, end string, loc *time.Location) (v1.Window, error) {
	s, err := time.ParseInLocation(TimeLayout, start, loc)
	if err != nil {
		return v1.Window{}, fmt.Errorf("invalid start_time %q, use the format YYYY-MM-DD-HH:MM:SS.sss", start)
	}
	e, err := time.ParseInLocation(TimeLayout, end, loc)
	if err != nil {
		return v1.Window{}, fmt.Errorf("invalid end_time %q, use the format YYYY-MM-DD-HH:MM:SS.sss", end)
	}
	return v1.Window{Start: s, End: e}, nil
}

// errorMessage returns the message of the innermost error detail.
func errorMessage(err error) string {
	var details *errors.ErrorDetails
	if stderrors.As(err, &details) {
		return details.Message
	}
	return err.Error()
}
