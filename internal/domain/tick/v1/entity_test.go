package v1

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAggregate(t *testing.T) {
	agg := NewAggregate()

	assert.True(t, math.IsInf(agg.MinPrice, 1))
	assert.Zero(t, agg.MaxPrice)
	assert.Zero(t, agg.TotalVolume)
	assert.False(t, agg.HasData())
}
