package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/redis"
)

// RedisCache keeps aggregates in Redis as JSON.
type RedisCache struct {
	client redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new RedisCache.
func NewRedisCache(client redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Key returns the cache key of window for the store build buildID.
// The client adds its own prefix.
func Key(buildID string, window v1.Window) string {
	return fmt.Sprintf("agg:%s:%d:%d", buildID, window.Start.UnixMilli(), window.End.UnixMilli())
}

// Get returns the cached aggregate, or false on a miss.
func (c *RedisCache) Get(ctx context.Context, buildID string, window v1.Window) (v1.Aggregate, bool, error) {
	val, err := c.client.Get(ctx, Key(buildID, window))
	if err != nil {
		return v1.Aggregate{}, false, errors.TracerFromError(err)
	}
	if val == "" {
		return v1.Aggregate{}, false, nil
	}

	var agg v1.Aggregate
	if err := json.Unmarshal([]byte(val), &agg); err != nil {
		return v1.Aggregate{}, false, errors.NewTracer("decode_cached_aggregate").Wrap(err)
	}
	return agg, true, nil
}

// Set caches agg. Empty aggregates are skipped since +Inf has no JSON form.
func (c *RedisCache) Set(ctx context.Context, buildID string, window v1.Window, agg v1.Aggregate) error {
	if !agg.HasData() {
		return nil
	}

	data, err := json.Marshal(agg)
	if err != nil {
		return errors.NewTracer("encode_aggregate").Wrap(err)
	}
	if err := c.client.Set(ctx, Key(buildID, window), string(data), c.ttl); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// Noop is the Cache used when caching is disabled.
type Noop struct{}

// Get always misses.
func (Noop) Get(context.Context, string, v1.Window) (v1.Aggregate, bool, error) {
	return v1.Aggregate{}, false, nil
}

// Set does nothing.
func (Noop) Set(context.Context, string, v1.Window, v1.Aggregate) error {
	return nil
}
