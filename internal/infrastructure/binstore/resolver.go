package binstore

import (
	"time"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/interval"
)

// Range is a half-open byte span [Start, End) of whole records.
type Range struct {
	Start int64
	End   int64
}

// Len returns the span length in bytes.
func (r Range) Len() int64 {
	return r.End - r.Start
}

// Records returns the number of whole records in the span.
func (r Range) Records() int64 {
	return r.Len() / RecordSize
}

// Resolve maps [start, end] onto the byte range holding every record of the
// minutes from floor(start) up to ceil(end). Both keys must be indexed,
// otherwise the window is reported as having no data. The range may also hold
// records just outside the window in the boundary minutes; scanners must
// re-filter.
func Resolve(idx *Index, start, end time.Time) (Range, error) {
	if end.Before(start) {
		return Range{}, errors.NewErrorDetails("end before start", string(errors.StoreInvalidWindow), "window")
	}

	startKey := interval.MinuteKey(start.UnixMilli())
	endKey := interval.CeilMinuteKey(end.UnixMilli())

	startOffset, ok := idx.Offset(startKey)
	if !ok {
		return Range{}, errNoDataInRange("start_time", startKey)
	}
	endOffset, ok := idx.Offset(endKey)
	if !ok {
		return Range{}, errNoDataInRange("end_time", endKey)
	}

	// the window is closed, so an end exactly on a minute boundary still
	// needs that minute's records; they end where the next indexed minute
	// starts, which exists unless endKey is the sentinel
	if endKey*1000 == end.UnixMilli() {
		if next, ok := idx.After(endKey); ok {
			endOffset = next.Offset
		}
	}

	return Range{Start: startOffset, End: endOffset}, nil
}
