package binstore

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"math"
	"os"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// cancelCheckEvery is how many records a worker scans between context checks.
const cancelCheckEvery = 4096

// Partition splits rng into at most workers contiguous, record-aligned
// sub-ranges. Each gets records/workers records and the last one also takes
// the remainder. workers is clamped to [1, records] so no partition is empty
// unless rng itself is.
func Partition(rng Range, workers int) []Range {
	records := rng.Records()
	if workers < 1 {
		workers = 1
	}
	if int64(workers) > records {
		workers = int(max(records, 1))
	}

	chunk := records / int64(workers)
	parts := make([]Range, workers)
	for i := range parts {
		start := rng.Start + int64(i)*chunk*RecordSize
		end := start + chunk*RecordSize
		if i == workers-1 {
			end = rng.End
		}
		parts[i] = Range{Start: start, End: end}
	}
	return parts
}

// partial is one worker's local aggregate.
type partial struct {
	min, max    float64
	volume      int64
	count       int64
	first, last float64
}

func newPartial() partial {
	return partial{min: math.Inf(1)}
}

func (p *partial) add(price float32, volume int32) {
	f := float64(price)
	if p.count == 0 {
		p.first = f
	}
	p.last = f
	p.min = math.Min(p.min, f)
	p.max = math.Max(p.max, f)
	p.volume += int64(volume)
	p.count++
}

// merge folds partials in partition order. The window's start price comes
// from the earliest partition holding an in-window record and the end price
// from the latest one.
func merge(parts []partial) v1.Aggregate {
	agg := v1.NewAggregate()
	for _, p := range parts {
		if p.count == 0 {
			continue
		}
		if agg.Count == 0 {
			agg.StartPrice = p.first
		}
		agg.EndPrice = p.last
		agg.MinPrice = math.Min(agg.MinPrice, p.min)
		agg.MaxPrice = math.Max(agg.MaxPrice, p.max)
		agg.TotalVolume += p.volume
		agg.Count += p.count
	}
	return agg
}

// Scanner computes window aggregates over a byte range of a binary file
// with one goroutine and one file handle per partition.
type Scanner struct {
	path    string
	codec   Codec
	workers int
}

// NewScanner returns a Scanner over the binary file at path.
func NewScanner(path string, codec Codec, workers int) *Scanner {
	return &Scanner{path: path, codec: codec, workers: workers}
}

// Scan aggregates every record in rng whose timestamp lies in [window.Start, window.End].
// Any worker failure fails the whole scan; no partial aggregate is returned.
func (s *Scanner) Scan(ctx context.Context, rng Range, window v1.Window) (v1.Aggregate, error) {
	if rng.Start < 0 || rng.Len() < 0 || rng.Start%RecordSize != 0 || rng.Len()%RecordSize != 0 {
		return v1.Aggregate{}, errCorrupt("range", "range [%d, %d) is not record aligned", rng.Start, rng.End)
	}
	if rng.Len() == 0 {
		return v1.NewAggregate(), nil
	}

	parts := Partition(rng, s.workers)
	results := make([]partial, len(parts))
	startMs, endMs := window.Start.UnixMilli(), window.End.UnixMilli()

	g, gctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		g.Go(func() error {
			p, err := s.scanPartition(gctx, part, startMs, endMs)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return v1.Aggregate{}, err
	}

	return merge(results), nil
}

func (s *Scanner) scanPartition(ctx context.Context, part Range, startMs, endMs int64) (partial, error) {
	p := newPartial()

	f, err := os.Open(s.path)
	if err != nil {
		return p, errIO("open_binary_file", err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(io.NewSectionReader(f, part.Start, part.Len()), 64*1024)
	buf := make([]byte, s.codec.Size())

	for n, off := int64(0), part.Start; off < part.End; n, off = n+1, off+RecordSize {
		if n%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return p, err
			}
		}

		if _, err := io.ReadFull(r, buf); err != nil {
			if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
				return p, errors.NewTracer("scan_partition").Wrap(
					errCorrupt("offset", "truncated record at offset %d of %s", off, s.path))
			}
			return p, errIO("read_record", err)
		}

		rec := s.codec.Decode(buf)
		if rec.UnixMilli < startMs || rec.UnixMilli > endMs {
			continue
		}
		p.add(rec.Price, rec.Volume)
	}
	return p, nil
}
