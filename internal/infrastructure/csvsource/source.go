package csvsource

import (
	"bufio"
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const cancelCheckEvery = 8192

// Config configures a FileSource.
type Config struct {
	Dir      string
	Suffix   string
	Workers  int
	Location *time.Location
	Rules    Rules
}

// FileSource loads ticks from the CSV files of one directory.
type FileSource struct {
	cfg    Config
	logger logger.Interface
}

// NewFileSource creates a new FileSource.
func NewFileSource(cfg Config, logger logger.Interface) *FileSource {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &FileSource{cfg: cfg, logger: logger}
}

// Discover lists the regular files of the directory sorted by name,
// keeping only those ending in the configured suffix when one is set.
func (s *FileSource) Discover() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return nil, errors.NewTracer("read_data_dir").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.StoreIOError), "data_dir"))
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if s.cfg.Suffix != "" && !strings.HasSuffix(e.Name(), s.cfg.Suffix) {
			continue
		}
		files = append(files, filepath.Join(s.cfg.Dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Load reads every discovered file with up to Workers producers and
// returns the cleaned ticks in file order.
func (s *FileSource) Load(ctx context.Context) (Result, error) {
	files, err := s.Discover()
	if err != nil {
		return Result{}, err
	}

	chunks := Split(files, s.cfg.Workers)
	results := make([]Result, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			res, err := s.loadChunk(gctx, chunk)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	out := Result{Files: len(files)}
	total := 0
	for _, r := range results {
		total += len(r.Ticks)
	}
	out.Ticks = make([]v1.Tick, 0, total)
	for _, r := range results {
		out.Ticks = append(out.Ticks, r.Ticks...)
		out.Rows += r.Rows
		out.Dropped += r.Dropped
	}

	s.logger.InfoContext(ctx, "csv source loaded",
		logger.NewField("files", out.Files),
		logger.NewField("producers", len(chunks)),
		logger.NewField("rows", out.Rows),
		logger.NewField("dropped", out.Dropped),
	)
	return out, nil
}

func (s *FileSource) loadChunk(ctx context.Context, files []string) (Result, error) {
	var res Result
	cleaner := NewCleaner(s.cfg.Rules, s.cfg.Location)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := s.loadFile(ctx, path, cleaner, &res); err != nil {
			return res, err
		}
		res.Files++
	}
	return res, nil
}

func (s *FileSource) loadFile(ctx context.Context, path string, cleaner *Cleaner, res *Result) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.NewTracer("open_csv_file").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.StoreIOError), "path"))
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReaderSize(f, 256*1024))
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var rows, dropped int64
	for {
		row, err := r.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		rows++
		if rows%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		var perr *csv.ParseError
		if stderrors.As(err, &perr) {
			dropped++
			continue
		}
		if err != nil {
			return errors.NewTracer("read_csv_file").Wrap(
				errors.NewErrorDetails(err.Error(), string(errors.StoreIOError), "path"))
		}

		tick, ok := cleaner.Clean(row)
		if !ok {
			dropped++
			continue
		}
		res.Ticks = append(res.Ticks, tick)
	}

	res.Rows += rows
	res.Dropped += dropped
	s.logger.Debug("csv file loaded",
		logger.NewField("path", path),
		logger.NewField("rows", rows),
		logger.NewField("dropped", dropped),
	)
	return nil
}

// Split divides files into at most workers contiguous chunks whose sizes
// differ by at most one. No chunk is empty.
func Split(files []string, workers int) [][]string {
	if len(files) == 0 {
		return nil
	}
	workers = max(1, min(workers, len(files)))

	base, extra := len(files)/workers, len(files)%workers
	chunks := make([][]string, 0, workers)
	start := 0
	for i := range workers {
		n := base
		if i < extra {
			n++
		}
		chunks = append(chunks, files[start:start+n])
		start += n
	}
	return chunks
}
