package binstore

import (
	"sort"
	"time"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

// IndexVersion is bumped whenever the index document changes shape.
const IndexVersion = 1

// IndexEntry maps a minute key (Unix seconds) to the byte offset of the first
// record in that minute.
type IndexEntry struct {
	Minute int64 `json:"minute"`
	Offset int64 `json:"offset"`
}

// Index is the sparse minute index of one binary file. It is built once per
// ingestion run and is read-only afterwards, so it can be shared by any
// number of scanners without locking.
//
// The last entry, when present, is the sentinel: its key is one minute past
// the last minute with data and its offset is the placeholder record that
// terminates the file.
type Index struct {
	Version     int          `json:"version"`
	BuildID     string       `json:"build_id"`
	CreatedAt   time.Time    `json:"created_at"`
	Codec       string       `json:"codec"`
	BaseMinute  int64        `json:"base_minute"`
	RecordSize  int64        `json:"record_size"`
	RecordCount int64        `json:"record_count"`
	Entries     []IndexEntry `json:"entries"`

	offsets map[int64]int64
}

func newIndex(codec string, baseMinute int64, entries []IndexEntry, records int64) *Index {
	idx := &Index{
		Version:     IndexVersion,
		Codec:       codec,
		BaseMinute:  baseMinute,
		RecordSize:  RecordSize,
		RecordCount: records,
		Entries:     entries,
	}
	idx.buildLookup()
	return idx
}

func (i *Index) buildLookup() {
	i.offsets = make(map[int64]int64, len(i.Entries))
	for _, e := range i.Entries {
		i.offsets[e.Minute] = e.Offset
	}
}

// Offset returns the offset of the first record in minute.
func (i *Index) Offset(minute int64) (int64, bool) {
	off, ok := i.offsets[minute]
	return off, ok
}

// After returns the first entry keyed strictly after minute.
func (i *Index) After(minute int64) (IndexEntry, bool) {
	n := sort.Search(len(i.Entries), func(k int) bool { return i.Entries[k].Minute > minute })
	if n == len(i.Entries) {
		return IndexEntry{}, false
	}
	return i.Entries[n], true
}

// Len returns the number of entries, sentinel included.
func (i *Index) Len() int {
	return len(i.Entries)
}

// IsEmpty reports whether the ingestion run produced no records.
func (i *Index) IsEmpty() bool {
	return len(i.Entries) == 0
}

// Sentinel returns the trailing placeholder entry.
func (i *Index) Sentinel() (IndexEntry, bool) {
	if len(i.Entries) == 0 {
		return IndexEntry{}, false
	}
	return i.Entries[len(i.Entries)-1], true
}

// Minutes returns the keys of the minutes holding data, sentinel excluded.
func (i *Index) Minutes() []int64 {
	if len(i.Entries) == 0 {
		return nil
	}
	keys := make([]int64, 0, len(i.Entries)-1)
	for _, e := range i.Entries[:len(i.Entries)-1] {
		keys = append(keys, e.Minute)
	}
	return keys
}

// Validate checks the index against the size of the binary file it describes.
// Every inconsistency is reported as a StoreCorrupt detail.
func (i *Index) Validate(fileSize int64) error {
	base := errors.NewBaseError()

	if i.RecordSize != RecordSize {
		base.AddErrorDetails(errCorrupt("record_size", "record size %d, expected %d", i.RecordSize, RecordSize))
		return base
	}
	if fileSize%RecordSize != 0 {
		base.AddErrorDetails(errCorrupt("file_size", "file size %d is not a multiple of %d", fileSize, RecordSize))
	}

	if len(i.Entries) == 0 {
		if fileSize != 0 || i.RecordCount != 0 {
			base.AddErrorDetails(errCorrupt("entries", "empty index but file holds %d bytes", fileSize))
		}
		return baseOrNil(base)
	}

	if !sort.SliceIsSorted(i.Entries, func(a, b int) bool { return i.Entries[a].Minute < i.Entries[b].Minute }) {
		base.AddErrorDetails(errCorrupt("entries", "minute keys are not sorted"))
	}
	if len(i.offsets) != len(i.Entries) {
		base.AddErrorDetails(errCorrupt("entries", "duplicate minute keys"))
	}

	for n, e := range i.Entries {
		if e.Minute%60 != 0 {
			base.AddErrorDetails(errCorrupt("entries", "key %d at position %d is not minute aligned", e.Minute, n))
		}
		if e.Offset%RecordSize != 0 {
			base.AddErrorDetails(errCorrupt("entries", "offset %d at position %d is not record aligned", e.Offset, n))
		}
		if e.Offset < 0 || e.Offset >= fileSize {
			base.AddErrorDetails(errCorrupt("entries", "offset %d at position %d is beyond file size %d", e.Offset, n, fileSize))
		}
		if n > 0 && e.Offset <= i.Entries[n-1].Offset {
			base.AddErrorDetails(errCorrupt("entries", "offset %d at position %d does not increase", e.Offset, n))
		}
	}

	if i.Entries[0].Offset != 0 {
		base.AddErrorDetails(errCorrupt("entries", "first minute starts at %d, expected 0", i.Entries[0].Offset))
	}

	sentinel, _ := i.Sentinel()
	if sentinel.Offset != fileSize-RecordSize {
		base.AddErrorDetails(errCorrupt("sentinel", "sentinel at %d but last record starts at %d", sentinel.Offset, fileSize-RecordSize))
	}
	if want := (i.RecordCount + 1) * RecordSize; want != fileSize {
		base.AddErrorDetails(errCorrupt("record_count", "%d records need %d bytes, file has %d", i.RecordCount, want, fileSize))
	}

	return baseOrNil(base)
}

func baseOrNil(base *errors.BaseError) error {
	if base.HasDetails() {
		return base
	}
	return nil
}
