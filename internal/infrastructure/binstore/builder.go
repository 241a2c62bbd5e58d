package binstore

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/interval"
)

// Builder writes time-ordered records sequentially and builds the minute
// index as it goes. It is a single-threaded fold: callers producing records
// concurrently must merge them into one ordered stream first.
type Builder struct {
	w         *bufio.Writer
	codecName string
	codec     Codec
	buf       []byte

	cursor  int64
	current int64
	started bool
	count   int64
	entries []IndexEntry
	done    bool
}

// NewBuilder returns a Builder writing records encoded with the named codec to w.
func NewBuilder(w io.Writer, codecName string) (*Builder, error) {
	// resolve the name up front so an unknown codec fails before any write
	codec, err := NewCodec(codecName, 0)
	if err != nil {
		return nil, err
	}
	return &Builder{
		w:         bufio.NewWriterSize(w, 64*1024),
		codecName: codec.Name(),
		buf:       make([]byte, RecordSize),
	}, nil
}

// Add appends r. Records must arrive in non-decreasing minute order.
func (b *Builder) Add(r Record) error {
	if b.done {
		return errors.NewErrorDetails("builder already finished", string(errors.GeneralInternalServerError), "builder")
	}
	if !(r.Price > 0) || math.IsInf(float64(r.Price), 0) || r.Volume <= 0 {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("tick at %d ms has price %v and volume %d", r.UnixMilli, r.Price, r.Volume),
			string(errors.StoreInvalidRecord), "record", r)
	}

	minute := interval.MinuteKey(r.UnixMilli)
	if !b.started {
		codec, err := NewCodec(b.codecName, minute)
		if err != nil {
			return err
		}
		b.codec = codec
	} else if minute < b.current {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("tick at %d ms belongs to minute %d, before current minute %d", r.UnixMilli, minute, b.current),
			string(errors.StoreOutOfOrder), "timestamp", r)
	}

	if !b.codec.Fits(r) {
		return errors.NewErrorDetailsWithObject(
			fmt.Sprintf("tick at %d ms cannot be encoded by codec %s", r.UnixMilli, b.codec.Name()),
			string(errors.StoreTimestampOutOfRange), "timestamp", r)
	}

	if !b.started || minute != b.current {
		b.entries = append(b.entries, IndexEntry{Minute: minute, Offset: b.cursor})
		b.current = minute
		b.started = true
	}

	if err := b.write(r); err != nil {
		return err
	}
	b.count++
	return nil
}

func (b *Builder) write(r Record) error {
	b.codec.Encode(b.buf, r)
	if _, err := b.w.Write(b.buf); err != nil {
		return errIO("write_record", err)
	}
	b.cursor += RecordSize
	return nil
}

// Finish appends the sentinel record, flushes, and returns the index.
// With no records written nothing is appended and the index is empty.
func (b *Builder) Finish() (*Index, error) {
	if b.done {
		return nil, errors.NewErrorDetails("builder already finished", string(errors.GeneralInternalServerError), "builder")
	}
	b.done = true

	if !b.started {
		if err := b.w.Flush(); err != nil {
			return nil, errIO("flush_binary_file", err)
		}
		return newIndex(b.codecName, 0, []IndexEntry{}, 0), nil
	}

	sentinel := interval.Interval1m.NextKey(b.current)
	placeholder := Record{UnixMilli: sentinel * 1000}
	if !b.codec.Fits(placeholder) {
		return nil, errors.NewErrorDetailsWithObject(
			fmt.Sprintf("sentinel minute %d cannot be encoded by codec %s", sentinel, b.codec.Name()),
			string(errors.StoreTimestampOutOfRange), "sentinel", placeholder)
	}
	b.entries = append(b.entries, IndexEntry{Minute: sentinel, Offset: b.cursor})
	if err := b.write(placeholder); err != nil {
		return nil, err
	}
	if err := b.w.Flush(); err != nil {
		return nil, errIO("flush_binary_file", err)
	}

	return newIndex(b.codec.Name(), b.entries[0].Minute, b.entries, b.count), nil
}

// Build folds records into an in-memory binary image and its index.
func Build(records []Record, codecName string) ([]byte, *Index, error) {
	var out bytes.Buffer
	b, err := NewBuilder(&out, codecName)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range records {
		if err := b.Add(r); err != nil {
			return nil, nil, err
		}
	}
	idx, err := b.Finish()
	if err != nil {
		return nil, nil, err
	}
	return out.Bytes(), idx, nil
}
