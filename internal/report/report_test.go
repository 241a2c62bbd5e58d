package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	v1 "github.com/muhammadchandra19/tickstore/internal/domain/tick/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAgg = v1.Aggregate{
	MinPrice:    99,
	MaxPrice:    float64(float32(101.1)),
	TotalVolume: 22,
	StartPrice:  100,
	EndPrice:    99,
	Count:       3,
}

func TestPrint(t *testing.T) {
	testCases := []struct {
		name     string
		agg      v1.Aggregate
		assertFn func(t *testing.T, out string)
	}{
		{
			name: "aggregate",
			agg:  testAgg,
			assertFn: func(t *testing.T, out string) {
				assert.Equal(t, "min_price:    99\n"+
					"max_price:    101.1\n"+
					"total_volume: 22\n"+
					"start_price:  100\n"+
					"end_price:    99\n", out)
			},
		},
		{
			name: "no data",
			agg:  v1.NewAggregate(),
			assertFn: func(t *testing.T, out string) {
				assert.Equal(t, NoDataMessage+"\n", out)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Print(&buf, tc.agg))
			tc.assertFn(t, buf.String())
		})
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query_result.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	require.NoError(t, WriteCSV(path, testAgg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "min_price,max_price,total_volume,start_price,end_price\n99,101.1,22,100,99\n", string(data))
}

func TestWriteCSV_BadPath(t *testing.T) {
	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "query_result.csv"), testAgg)
	assert.Error(t, err)
}
