package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeEquals(t *testing.T) {
	corrupt := NewErrorDetails("partial record", string(StoreCorrupt), "offset")

	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{
			name:     "direct details",
			err:      corrupt,
			code:     StoreCorrupt,
			expected: true,
		},
		{
			name:     "different code",
			err:      corrupt,
			code:     StoreNoDataInRange,
			expected: false,
		},
		{
			name:     "wrapped by tracer",
			err:      NewTracer("scan").Wrap(corrupt),
			code:     StoreCorrupt,
			expected: true,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("query: %w", corrupt),
			code:     StoreCorrupt,
			expected: true,
		},
		{
			name: "second detail in base error",
			err: NewBaseError(
				NewErrorDetails("bad codec", string(StoreUnknownCodec), "codec"),
				NewErrorDetails("bad offset", string(StoreCorrupt), "offset"),
			),
			code:     StoreCorrupt,
			expected: true,
		},
		{
			name:     "plain error",
			err:      stderrors.New("boom"),
			code:     StoreCorrupt,
			expected: false,
		},
		{
			name:     "nil",
			err:      nil,
			code:     StoreCorrupt,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCodeEquals(tc.err, string(tc.code)))
		})
	}
}

func TestTracerFromError(t *testing.T) {
	assert.Nil(t, TracerFromError(nil))

	base := stderrors.New("disk full")
	err := TracerFromError(base)
	assert.Equal(t, "disk full", err.Error())
	assert.ErrorIs(t, err, base)

	tracer, ok := err.(*ErrorTracer)
	assert.True(t, ok)
	assert.NotNil(t, tracer.StackTrace())
}

func TestErrorTracer_Wrap(t *testing.T) {
	base := stderrors.New("permission denied")
	err := NewTracer("open_binary_file").Wrap(base)

	assert.Equal(t, "open_binary_file: permission denied", err.Error())
	assert.ErrorIs(t, err, base)
	assert.NotNil(t, err.StackTrace())
}

func TestBaseError(t *testing.T) {
	b := NewBaseError()
	assert.False(t, b.HasDetails())
	assert.False(t, b.IsAllCodeEqual(string(StoreCorrupt)))

	b.AddErrorDetails(
		NewErrorDetails("offset not aligned", string(StoreCorrupt), "entries[1].offset"),
		NewErrorDetails("size mismatch", string(StoreCorrupt), "size"),
	)
	assert.True(t, b.HasDetails())
	assert.True(t, b.IsAllCodeEqual(string(StoreCorrupt)))
	assert.Len(t, b.Unwrap(), 2)
	assert.Contains(t, b.Error(), "field: entries[1].offset")

	b.UpdateCode(string(StoreIOError))
	assert.True(t, b.IsAnyCodeEqual(string(StoreIOError)))
	assert.False(t, b.IsAnyCodeEqual(string(StoreCorrupt)))
}
