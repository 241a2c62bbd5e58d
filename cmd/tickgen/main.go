package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"
)

// Tick is one generated CSV row.
type Tick struct {
	Timestamp time.Time
	Price     float64
	Size      int
}

// GenOptions controls the generated data set.
type GenOptions struct {
	Day         time.Time
	Files       int
	PerFile     int
	BasePrice   float64
	PriceSpread float64
	JunkRatio   float64
}

// generateTicks creates a time-ordered random walk from 09:00 to 16:00 of
// opts.Day, split into opts.Files consecutive slices.
func generateTicks(r *rand.Rand, opts GenOptions) [][]Tick {
	open := opts.Day.Add(9 * time.Hour)
	total := opts.Files * opts.PerFile
	step := 7 * time.Hour / time.Duration(max(total, 1))

	price := opts.BasePrice
	files := make([][]Tick, opts.Files)
	ts := open
	for f := range files {
		ticks := make([]Tick, opts.PerFile)
		for i := range ticks {
			ts = ts.Add(time.Duration(r.Int64N(int64(step))))

			// Random walk within the spread around the base price
			price += (r.Float64() - 0.5) * opts.PriceSpread * 0.01
			price = min(max(price, opts.BasePrice-opts.PriceSpread), opts.BasePrice+opts.PriceSpread)
			price = math.Round(price*100) / 100 // Round to cents

			ticks[i] = Tick{
				Timestamp: ts,
				Price:     price,
				Size:      1 + r.IntN(500),
			}
		}
		files[f] = ticks
	}
	return files
}

// junkRow returns a row the ingestion cleaner is expected to drop.
func junkRow(r *rand.Rand, t Tick) string {
	switch r.IntN(4) {
	case 0:
		return fmt.Sprintf("%s,%.2f,%d", t.Timestamp.Format(layout), -t.Price, t.Size)
	case 1:
		return fmt.Sprintf("%s,%.2f,0", t.Timestamp.Format(layout), t.Price)
	case 2:
		return fmt.Sprintf("%s,%.2f,%d", t.Timestamp.Add(-10*time.Hour).Format(layout), t.Price, t.Size)
	default:
		return "not,a,tick"
	}
}

const layout = "2006-01-02 15:04:05.000000"

func writeFiles(dir string, r *rand.Rand, files [][]Tick, junkRatio float64) (rows, junk int, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, 0, err
	}

	for i, ticks := range files {
		path := filepath.Join(dir, fmt.Sprintf("ticks_%04d.csv", i))
		f, err := os.Create(path)
		if err != nil {
			return rows, junk, err
		}
		w := bufio.NewWriter(f)
		for _, t := range ticks {
			if r.Float64() < junkRatio {
				fmt.Fprintln(w, junkRow(r, t))
				junk++
			}
			fmt.Fprintf(w, "%s,%.2f,%d\n", t.Timestamp.Format(layout), t.Price, t.Size)
			rows++
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return rows, junk, err
		}
		if err := f.Close(); err != nil {
			return rows, junk, err
		}
	}
	return rows, junk, nil
}

func main() {
	var (
		out         = flag.String("out", "./data", "Directory the CSV files are written to")
		day         = flag.String("day", "2024-01-02", "Trading day (YYYY-MM-DD, UTC)")
		files       = flag.Int("files", 8, "Number of CSV files")
		perFile     = flag.Int("count", 10000, "Ticks per file")
		basePrice   = flag.Float64("base-price", 3945.5, "Base price for ticks")
		priceSpread = flag.Float64("price-spread", 200.0, "Price spread range")
		junkRatio   = flag.Float64("junk", 0.01, "Fraction of extra malformed or filtered rows")
		seed        = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	)
	flag.Parse()

	d, err := time.Parse(time.DateOnly, *day)
	if err != nil {
		log.Fatalf("Invalid day %q: %v", *day, err)
	}
	if *files < 1 || *perFile < 1 {
		log.Fatalf("files and count must be positive")
	}

	r := rand.New(rand.NewPCG(*seed, *seed>>1))
	opts := GenOptions{
		Day:         d,
		Files:       *files,
		PerFile:     *perFile,
		BasePrice:   *basePrice,
		PriceSpread: *priceSpread,
		JunkRatio:   *junkRatio,
	}

	log.Printf("Generating %d files of %d ticks...", opts.Files, opts.PerFile)
	rows, junk, err := writeFiles(*out, r, generateTicks(r, opts), opts.JunkRatio)
	if err != nil {
		log.Fatalf("Failed to write ticks: %v", err)
	}
	log.Printf("Wrote %d ticks and %d junk rows to %s (seed %d)", rows, junk, *out, *seed)
}
