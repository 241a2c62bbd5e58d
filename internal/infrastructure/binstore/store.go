package binstore

import (
	"context"
	"os"
	"time"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/util"
)

// WriteResult describes the files produced by WriteStore.
type WriteResult struct {
	Index       *Index
	BinaryBytes int64
}

// WriteStore rebuilds the binary file and its index from records, which must
// be in time order. Both files are replaced; the index is never patched.
func WriteStore(binPath, indexPath, codecName string, records []Record) (WriteResult, error) {
	f, err := os.Create(binPath)
	if err != nil {
		return WriteResult{}, errIO("create_binary_file", err)
	}

	b, err := NewBuilder(f, codecName)
	if err != nil {
		f.Close()
		return WriteResult{}, err
	}
	for _, r := range records {
		if err := b.Add(r); err != nil {
			f.Close()
			return WriteResult{}, err
		}
	}
	idx, err := b.Finish()
	if err != nil {
		f.Close()
		return WriteResult{}, err
	}
	if err := f.Close(); err != nil {
		return WriteResult{}, errIO("close_binary_file", err)
	}

	idx.BuildID = util.NewBuildID()
	idx.CreatedAt = time.Now().UTC()
	if err := WriteIndex(indexPath, idx); err != nil {
		return WriteResult{}, err
	}

	size := int64(0)
	if idx.Len() > 0 {
		size = (idx.RecordCount + 1) * RecordSize
	}
	return WriteResult{Index: idx, BinaryBytes: size}, nil
}

// Store is an opened, validated binary file and its index. It is immutable
// and safe for concurrent queries.
type Store struct {
	binPath string
	index   *Index
	codec   Codec
	size    int64
}

// Open loads the index at indexPath and checks it against the binary file at binPath.
func Open(binPath, indexPath string) (*Store, error) {
	idx, err := ReadIndex(indexPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(binPath)
	if err != nil {
		return nil, errIO("stat_binary_file", err)
	}

	if err := idx.Validate(info.Size()); err != nil {
		return nil, errors.NewTracer("validate_store").Wrap(err)
	}

	codec, err := NewCodec(idx.Codec, idx.BaseMinute)
	if err != nil {
		return nil, err
	}

	return &Store{
		binPath: binPath,
		index:   idx,
		codec:   codec,
		size:    info.Size(),
	}, nil
}

// Index returns the store's read-only index.
func (s *Store) Index() *Index {
	return s.index
}

// Codec returns the codec the binary file was written with.
func (s *Store) Codec() Codec {
	return s.codec
}

// Resolve maps window onto a byte range of the binary file.
func (s *Store) Resolve(window v1.Window) (Range, error) {
	return Resolve(s.index, window.Start, window.End)
}

// Query resolves window and scans it with workers goroutines.
func (s *Store) Query(ctx context.Context, window v1.Window, workers int) (v1.Aggregate, Range, error) {
	rng, err := s.Resolve(window)
	if err != nil {
		return v1.Aggregate{}, Range{}, err
	}
	if rng.End > s.size {
		return v1.Aggregate{}, rng, errCorrupt("range", "range end %d beyond file size %d", rng.End, s.size)
	}

	agg, err := NewScanner(s.binPath, s.codec, workers).Scan(ctx, rng, window)
	if err != nil {
		return v1.Aggregate{}, rng, err
	}
	return agg, rng, nil
}
