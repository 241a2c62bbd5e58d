package querycache

import (
	"context"
	"testing"
	"time"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	redisMock "github.com/muhammadchandra19/tickstore/pkg/redis/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var (
	testWindow = v1.Window{
		Start: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 9, 31, 30, 0, time.UTC),
	}
	testKey = "agg:build-1:1704101400000:1704101490000"
	testAgg = v1.Aggregate{MinPrice: 99, MaxPrice: 101, TotalVolume: 22, StartPrice: 100, EndPrice: 99, Count: 3}
)

func TestKey(t *testing.T) {
	assert.Equal(t, testKey, Key("build-1", testWindow))
}

func TestRedisCache_Get(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(t *testing.T, client *redisMock.MockClient)
		assertFn func(t *testing.T, agg v1.Aggregate, hit bool, err error)
	}{
		{
			name: "hit",
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().Get(gomock.Any(), testKey).Return(
					`{"min_price":99,"max_price":101,"total_volume":22,"start_price":100,"end_price":99,"count":3}`, nil)
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, hit bool, err error) {
				assert.NoError(t, err)
				assert.True(t, hit)
				assert.Equal(t, testAgg, agg)
			},
		},
		{
			name: "miss",
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().Get(gomock.Any(), testKey).Return("", nil)
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, hit bool, err error) {
				assert.NoError(t, err)
				assert.False(t, hit)
			},
		},
		{
			name: "redis error",
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().Get(gomock.Any(), testKey).Return("",
					errors.NewErrorDetails("Failed to get value from Redis", string(errors.RedisGetError), "get"))
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, hit bool, err error) {
				assert.False(t, hit)
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.RedisGetError)))
			},
		},
		{
			name: "garbage value",
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().Get(gomock.Any(), testKey).Return("{", nil)
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, hit bool, err error) {
				assert.Error(t, err)
				assert.False(t, hit)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redisMock.NewMockClient(ctrl)
			tc.mockFn(t, client)

			agg, hit, err := NewRedisCache(client, time.Minute).Get(context.Background(), "build-1", testWindow)
			tc.assertFn(t, agg, hit, err)
		})
	}
}

func TestRedisCache_Set(t *testing.T) {
	testCases := []struct {
		name     string
		agg      v1.Aggregate
		mockFn   func(t *testing.T, client *redisMock.MockClient)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "stores json with ttl",
			agg:  testAgg,
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().Set(gomock.Any(), testKey, gomock.Any(), 10*time.Minute).DoAndReturn(
					func(_ context.Context, _ string, value any, _ time.Duration) error {
						assert.JSONEq(t,
							`{"min_price":99,"max_price":101,"total_volume":22,"start_price":100,"end_price":99,"count":3}`,
							value.(string))
						return nil
					})
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "empty aggregate is skipped",
			agg:    v1.NewAggregate(),
			mockFn: func(t *testing.T, client *redisMock.MockClient) {},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "redis error",
			agg:  testAgg,
			mockFn: func(t *testing.T, client *redisMock.MockClient) {
				client.EXPECT().Set(gomock.Any(), testKey, gomock.Any(), 10*time.Minute).Return(
					errors.NewErrorDetails("Failed to set value in Redis", string(errors.RedisSetError), "set"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.RedisSetError)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redisMock.NewMockClient(ctrl)
			tc.mockFn(t, client)

			err := NewRedisCache(client, 10*time.Minute).Set(context.Background(), "build-1", testWindow, tc.agg)
			tc.assertFn(t, err)
		})
	}
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}

	assert.NoError(t, c.Set(context.Background(), "b", testWindow, testAgg))
	_, hit, err := c.Get(context.Background(), "b", testWindow)
	assert.NoError(t, err)
	assert.False(t, hit)
}
