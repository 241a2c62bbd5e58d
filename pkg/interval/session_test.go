package interval

import (
	"testing"
	"time"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSession(t *testing.T) {
	s, err := ParseSession("09:30", "16:00")
	require.NoError(t, err)
	assert.Equal(t, DefaultSession, s)

	_, err = ParseSession("9h", "16:00")
	assert.Error(t, err)

	_, err = ParseSession("16:00", "09:30")
	assert.Error(t, err)
}

func TestSession_ValidateWindow(t *testing.T) {
	day := func(h, m, s int) time.Time {
		return time.Date(2024, 1, 1, h, m, s, 0, time.UTC)
	}

	testCases := []struct {
		name  string
		start time.Time
		end   time.Time
		valid bool
	}{
		{name: "inside session", start: day(9, 30, 0), end: day(9, 31, 10), valid: true},
		{name: "touches close", start: day(15, 59, 0), end: day(16, 0, 0), valid: true},
		{name: "end before start", start: day(10, 0, 0), end: day(9, 59, 0), valid: false},
		{name: "equal bounds", start: day(10, 0, 0), end: day(10, 0, 0), valid: false},
		{name: "start before open", start: day(9, 29, 59), end: day(10, 0, 0), valid: false},
		{name: "end after close", start: day(15, 0, 0), end: day(16, 0, 1), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := DefaultSession.ValidateWindow(tc.start, tc.end)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.ErrorCodeEquals(err, string(errors.StoreInvalidWindow)))
		})
	}
}
