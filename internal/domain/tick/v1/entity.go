package v1

import (
	"math"
	"time"
)

// Tick is one cleaned trade: price and size at an instant.
type Tick struct {
	Timestamp time.Time
	Price     float32
	Volume    int32
}

// Aggregate is the result of a window query.
//
// StartPrice and EndPrice are the prices of the first and last tick inside
// the window, not derived from MinPrice/MaxPrice. When Count is zero no tick
// matched: MinPrice is +Inf and the other fields are zero.
type Aggregate struct {
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
	TotalVolume int64   `json:"total_volume"`
	StartPrice  float64 `json:"start_price"`
	EndPrice    float64 `json:"end_price"`
	Count       int64   `json:"count"`
}

// NewAggregate returns the empty aggregate.
func NewAggregate() Aggregate {
	return Aggregate{MinPrice: math.Inf(1)}
}

// HasData reports whether at least one tick matched.
func (a Aggregate) HasData() bool {
	return a.Count > 0
}

// Window is a closed query interval [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}
