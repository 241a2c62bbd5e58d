package csvsource

import (
	"math"
	"strconv"
	"strings"
	"time"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/shopspring/decimal"
)

// TimestampLayout is the timestamp format of the first CSV column.
const TimestampLayout = "2006-01-02 15:04:05.999999"

// Rules are the row filters a Cleaner applies.
type Rules struct {
	HourFrom     int
	HourTo       int
	MaxJumpRatio decimal.Decimal
}

// DefaultRules keeps ticks between 09:00 and 16:00 and drops jumps above 50%.
func DefaultRules() Rules {
	return Rules{
		HourFrom:     9,
		HourTo:       16,
		MaxJumpRatio: decimal.NewFromFloat(0.5),
	}
}

// Cleaner parses and filters rows of one producer. It remembers the last
// accepted price, so each producer owns its own Cleaner.
type Cleaner struct {
	rules   Rules
	loc     *time.Location
	prev    decimal.Decimal
	hasPrev bool
}

// NewCleaner returns a Cleaner parsing timestamps in loc.
func NewCleaner(rules Rules, loc *time.Location) *Cleaner {
	if loc == nil {
		loc = time.UTC
	}
	return &Cleaner{rules: rules, loc: loc}
}

// Clean returns the tick for row, or false when the row is malformed or filtered.
func (c *Cleaner) Clean(row []string) (v1.Tick, bool) {
	if len(row) < 3 {
		return v1.Tick{}, false
	}

	ts, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(row[0]), c.loc)
	if err != nil {
		return v1.Tick{}, false
	}
	price, err := decimal.NewFromString(strings.TrimSpace(row[1]))
	if err != nil {
		return v1.Tick{}, false
	}
	size, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 32)
	if err != nil {
		return v1.Tick{}, false
	}

	if !price.IsPositive() || size <= 0 {
		return v1.Tick{}, false
	}
	// the stored price is a float32; reject values that narrow to 0 or +Inf
	narrowed := float32(price.InexactFloat64())
	if !(narrowed > 0) || math.IsInf(float64(narrowed), 0) {
		return v1.Tick{}, false
	}
	if c.hasPrev && price.Sub(c.prev).Abs().Div(c.prev).GreaterThan(c.rules.MaxJumpRatio) {
		return v1.Tick{}, false
	}
	if h := ts.Hour(); h < c.rules.HourFrom || h >= c.rules.HourTo {
		return v1.Tick{}, false
	}

	c.prev = price
	c.hasPrev = true

	return v1.Tick{
		Timestamp: ts,
		Price:     narrowed,
		Volume:    int32(size),
	}, true
}
