package interval

import (
	"time"
)

// Interval is a fixed-width time bucket. Duration must be a whole number of seconds.
type Interval struct {
	Name     string
	Duration time.Duration
}

// Interval1m is the bucket width of the minute index.
var Interval1m = Interval{Name: "1m", Duration: time.Minute}

func (i Interval) millis() int64 {
	return i.Duration.Milliseconds()
}

// seconds returns the bucket width in whole seconds.
func (i Interval) seconds() int64 {
	return int64(i.Duration / time.Second)
}
