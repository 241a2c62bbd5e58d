package binstore

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(h, m, s, ms int) time.Time {
	return time.Date(2024, 1, 1, h, m, s, ms*int(time.Millisecond), time.UTC)
}

func rec(t time.Time, price float32, volume int32) Record {
	return Record{UnixMilli: t.UnixMilli(), Price: price, Volume: volume}
}

// exampleRecords is the three-tick scenario spanning 09:30 and 09:31.
func exampleRecords() []Record {
	return []Record{
		rec(at(9, 30, 0, 0), 100, 10),
		rec(at(9, 30, 30, 0), 101, 5),
		rec(at(9, 31, 5, 0), 99, 7),
	}
}

// randomRecords returns n time-ordered records starting at 09:30 with
// irregular gaps, some spanning several minutes.
func randomRecords(seed uint64, n int) []Record {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ts := at(9, 30, 0, 0).UnixMilli()
	out := make([]Record, 0, n)
	for range n {
		ts += r.Int64N(45_000)
		out = append(out, Record{
			UnixMilli: ts,
			Price:     90 + float32(r.IntN(2000))/100,
			Volume:    int32(1 + r.IntN(500)),
		})
	}
	return out
}

func writeTestStore(t *testing.T, codec string, records []Record) (binPath, indexPath string, res WriteResult) {
	t.Helper()
	dir := t.TempDir()
	binPath = filepath.Join(dir, "tick_data.bin")
	indexPath = filepath.Join(dir, "tick_data_index.json")
	res, err := WriteStore(binPath, indexPath, codec, records)
	require.NoError(t, err)
	return binPath, indexPath, res
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.Size()
}

func timeOf(minute int64) time.Time {
	return time.Unix(minute, 0).UTC()
}
