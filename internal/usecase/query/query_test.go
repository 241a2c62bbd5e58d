package query

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/binstore"
	binstoreMock "github.com/muhammadchandra19/tickstore/internal/infrastructure/binstore/mock"
	"github.com/muhammadchandra19/tickstore/internal/infrastructure/redis/querycache"
	cacheMock "github.com/muhammadchandra19/tickstore/internal/infrastructure/redis/querycache/mock"
	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/muhammadchandra19/tickstore/pkg/interval"
	"github.com/muhammadchandra19/tickstore/pkg/logger"
	loggerMock "github.com/muhammadchandra19/tickstore/pkg/logger/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func at(h, m, s int) time.Time {
	return time.Date(2024, 1, 1, h, m, s, 0, time.UTC)
}

var (
	testWindow = v1.Window{Start: at(9, 30, 0), End: at(9, 31, 30)}
	testIndex  = &binstore.Index{BuildID: "build-1"}
	testAgg    = v1.Aggregate{MinPrice: 99, MaxPrice: 101, TotalVolume: 22, StartPrice: 100, EndPrice: 99, Count: 3}
)

func TestUsecase_Query(t *testing.T) {
	testCases := []struct {
		name       string
		testParams v1.Window
		mockFn     func(t *testing.T, window v1.Window, store *binstoreMock.MockReader, cache *cacheMock.MockCache, logger *loggerMock.MockInterface)
		assertFn   func(t *testing.T, agg v1.Aggregate, err error)
	}{
		{
			name:       "success caches the result",
			testParams: testWindow,
			mockFn: func(t *testing.T, window v1.Window, store *binstoreMock.MockReader, cache *cacheMock.MockCache, logger *loggerMock.MockInterface) {
				store.EXPECT().Index().Return(testIndex)
				cache.EXPECT().Get(gomock.Any(), "build-1", window).Return(v1.Aggregate{}, false, nil)
				store.EXPECT().Query(gomock.Any(), window, 4).Return(testAgg, binstore.Range{Start: 0, End: 36}, nil)
				logger.EXPECT().InfoContext(gomock.Any(), "query finished", gomock.Any()).Times(1)
				cache.EXPECT().Set(gomock.Any(), "build-1", window, testAgg).Return(nil)
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, err error) {
				assert.NoError(t, err)
				assert.Equal(t, testAgg, agg)
			},
		},
		{
			name:       "cache hit skips the store",
			testParams: testWindow,
			mockFn: func(t *testing.T, window v1.Window, store *binstoreMock.MockReader, cache *cacheMock.MockCache, logger *loggerMock.MockInterface) {
				store.EXPECT().Index().Return(testIndex)
				cache.EXPECT().Get(gomock.Any(), "build-1", window).Return(testAgg, true, nil)
				logger.EXPECT().DebugContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, err error) {
				assert.NoError(t, err)
				assert.Equal(t, testAgg, agg)
			},
		},
		{
			name:       "cache failures are not fatal",
			testParams: testWindow,
			mockFn: func(t *testing.T, window v1.Window, store *binstoreMock.MockReader, cache *cacheMock.MockCache, logger *loggerMock.MockInterface) {
				store.EXPECT().Index().Return(testIndex)
				cache.EXPECT().Get(gomock.Any(), "build-1", window).Return(v1.Aggregate{}, false,
					errors.NewErrorDetails("Failed to get value from Redis", string(errors.RedisGetError), "get"))
				store.EXPECT().Query(gomock.Any(), window, 4).Return(testAgg, binstore.Range{Start: 0, End: 36}, nil)
				cache.EXPECT().Set(gomock.Any(), "build-1", window, testAgg).Return(
					errors.NewErrorDetails("Failed to set value in Redis", string(errors.RedisSetError), "set"))
				logger.EXPECT().WarnContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
				logger.EXPECT().InfoContext(gomock.Any(), "query finished", gomock.Any()).Times(1)
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, err error) {
				assert.NoError(t, err)
				assert.Equal(t, testAgg, agg)
			},
		},
		{
			name:       "no data in range",
			testParams: testWindow,
			mockFn: func(t *testing.T, window v1.Window, store *binstoreMock.MockReader, cache *cacheMock.MockCache, logger *loggerMock.MockInterface) {
				store.EXPECT().Index().Return(testIndex)
				cache.EXPECT().Get(gomock.Any(), "build-1", window).Return(v1.Aggregate{}, false, nil)
				store.EXPECT().Query(gomock.Any(), window, 4).Return(v1.Aggregate{}, binstore.Range{},
					errors.NewErrorDetails("no data available for the specified time range", string(errors.StoreNoDataInRange), "end_time"))
				logger.EXPECT().InfoContext(gomock.Any(), "no data in range", gomock.Any()).Times(1)
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, err error) {
				assert.True(t, binstore.IsNoDataInRange(err))
			},
		},
		{
			name:       "store failure",
			testParams: testWindow,
			mockFn: func(t *testing.T, window v1.Window, store *binstoreMock.MockReader, cache *cacheMock.MockCache, logger *loggerMock.MockInterface) {
				store.EXPECT().Index().Return(testIndex)
				cache.EXPECT().Get(gomock.Any(), "build-1", window).Return(v1.Aggregate{}, false, nil)
				store.EXPECT().Query(gomock.Any(), window, 4).Return(v1.Aggregate{}, binstore.Range{},
					errors.NewErrorDetails("truncated record", string(errors.StoreCorrupt), "offset"))
				logger.EXPECT().ErrorContext(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, err error) {
				assert.True(t, binstore.IsCorrupt(err))
			},
		},
		{
			name:       "end before start",
			testParams: v1.Window{Start: at(9, 31, 0), End: at(9, 30, 0)},
			mockFn: func(t *testing.T, window v1.Window, store *binstoreMock.MockReader, cache *cacheMock.MockCache, logger *loggerMock.MockInterface) {
				logger.EXPECT().WarnContext(gomock.Any(), "rejected query window", gomock.Any()).Times(1)
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.StoreInvalidWindow)))
			},
		},
		{
			name:       "outside trading session",
			testParams: v1.Window{Start: at(9, 0, 0), End: at(9, 45, 0)},
			mockFn: func(t *testing.T, window v1.Window, store *binstoreMock.MockReader, cache *cacheMock.MockCache, logger *loggerMock.MockInterface) {
				logger.EXPECT().WarnContext(gomock.Any(), "rejected query window", gomock.Any()).Times(1)
			},
			assertFn: func(t *testing.T, agg v1.Aggregate, err error) {
				assert.True(t, errors.ErrorCodeEquals(err, string(errors.StoreInvalidWindow)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := binstoreMock.NewMockReader(ctrl)
			cache := cacheMock.NewMockCache(ctrl)
			logger := loggerMock.NewMockInterface(ctrl)

			tc.mockFn(t, tc.testParams, store, cache, logger)

			agg, err := NewUsecase(store, cache, interval.DefaultSession, 4, logger).Query(context.Background(), tc.testParams)
			tc.assertFn(t, agg, err)
		})
	}
}

func TestUsecase_QueryOnDisk(t *testing.T) {
	dir := t.TempDir()
	binPath, indexPath := filepath.Join(dir, "tick_data.bin"), filepath.Join(dir, "tick_data_index.json")
	_, err := binstore.WriteStore(binPath, indexPath, binstore.CodecMilli, []binstore.Record{
		{UnixMilli: at(9, 30, 0).UnixMilli(), Price: 100, Volume: 10},
		{UnixMilli: at(9, 30, 30).UnixMilli(), Price: 101, Volume: 5},
		{UnixMilli: at(9, 31, 5).UnixMilli(), Price: 99, Volume: 7},
	})
	require.NoError(t, err)

	store, err := binstore.Open(binPath, indexPath)
	require.NoError(t, err)

	uc := NewUsecase(store, querycache.Noop{}, interval.DefaultSession, 2, logger.NewNop())

	agg, err := uc.Query(context.Background(), testWindow)
	require.NoError(t, err)
	assert.Equal(t, testAgg, agg)

	_, err = uc.Query(context.Background(), v1.Window{Start: at(10, 0, 0), End: at(10, 5, 0)})
	assert.True(t, binstore.IsNoDataInRange(err))
}
