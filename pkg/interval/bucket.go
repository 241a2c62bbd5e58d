package interval

import "time"

// FloorKey returns the Unix second at which the bucket containing unixMilli starts.
// Floors toward negative infinity so pre-epoch instants bucket correctly.
func (i Interval) FloorKey(unixMilli int64) int64 {
	width := i.millis()
	q := unixMilli / width
	if unixMilli%width != 0 && unixMilli < 0 {
		q--
	}
	return q * i.seconds()
}

// CeilKey returns the smallest bucket boundary, in Unix seconds, at or after unixMilli.
func (i Interval) CeilKey(unixMilli int64) int64 {
	floor := i.FloorKey(unixMilli)
	if floor*1000 == unixMilli {
		return floor
	}
	return floor + i.seconds()
}

// NextKey returns the key of the bucket following key.
func (i Interval) NextKey(key int64) int64 {
	return key + i.seconds()
}

// CalculateBucketTime calculates the start time of the interval bucket
func (i Interval) CalculateBucketTime(timestamp time.Time) time.Time {
	return time.Unix(i.FloorKey(timestamp.UnixMilli()), 0).In(timestamp.Location())
}

// MinuteKey is the minute bucket key of unixMilli in Unix seconds.
func MinuteKey(unixMilli int64) int64 {
	return Interval1m.FloorKey(unixMilli)
}

// CeilMinuteKey is the first minute boundary at or after unixMilli, in Unix seconds.
func CeilMinuteKey(unixMilli int64) int64 {
	return Interval1m.CeilKey(unixMilli)
}
