package binstore

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilliCodec_RoundTrip(t *testing.T) {
	base := at(9, 30, 0, 0).Unix()
	codec, err := NewCodec(CodecMilli, base)
	require.NoError(t, err)
	assert.Equal(t, RecordSize, codec.Size())

	testCases := []struct {
		name string
		r    Record
	}{
		{name: "base instant", r: rec(at(9, 30, 0, 0), 100, 10)},
		{name: "millisecond precision", r: rec(at(15, 59, 59, 999), 101.25, 1)},
		{name: "tiny price", r: Record{UnixMilli: base*1000 + 1, Price: math.SmallestNonzeroFloat32, Volume: 3}},
		{name: "max volume", r: Record{UnixMilli: base * 1000, Price: 1, Volume: math.MaxInt32}},
		{name: "last encodable instant", r: Record{UnixMilli: base*1000 + math.MaxUint32, Price: 7.5, Volume: 2}},
	}

	buf := make([]byte, RecordSize)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, codec.Fits(tc.r))
			codec.Encode(buf, tc.r)
			assert.Equal(t, tc.r, codec.Decode(buf))
		})
	}
}

func TestMilliCodec_RandomRoundTrip(t *testing.T) {
	records := randomRecords(7, 2000)
	codec, err := NewCodec(CodecMilli, records[0].UnixMilli/60000*60)
	require.NoError(t, err)

	buf := make([]byte, RecordSize)
	for _, r := range records {
		codec.Encode(buf, r)
		assert.Equal(t, r, codec.Decode(buf))
	}
}

func TestMilliCodec_Fits(t *testing.T) {
	base := at(9, 30, 0, 0).Unix()
	codec, err := NewCodec(CodecMilli, base)
	require.NoError(t, err)

	assert.False(t, codec.Fits(Record{UnixMilli: base*1000 - 1}))
	assert.False(t, codec.Fits(Record{UnixMilli: base*1000 + math.MaxUint32 + 1}))
}

func TestMilliCodec_Layout(t *testing.T) {
	base := at(9, 30, 0, 0).Unix()
	codec, err := NewCodec(CodecMilli, base)
	require.NoError(t, err)

	buf := make([]byte, RecordSize)
	codec.Encode(buf, rec(at(9, 31, 5, 250), 99, 7))

	assert.Equal(t, uint32(65_250), binary.LittleEndian.Uint32(buf[0:]))
	assert.Equal(t, float32(99), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
	assert.Equal(t, int32(7), int32(binary.LittleEndian.Uint32(buf[8:])))
}

func TestLegacyCodec_Layout(t *testing.T) {
	codec, err := NewCodec(CodecLegacy, 0)
	require.NoError(t, err)

	// struct.pack("<ffi", 90.5, 100.0, 10)
	want := make([]byte, RecordSize)
	binary.LittleEndian.PutUint32(want[0:], math.Float32bits(90.5))
	binary.LittleEndian.PutUint32(want[4:], math.Float32bits(100))
	binary.LittleEndian.PutUint32(want[8:], 10)

	r := Record{UnixMilli: 90_500, Price: 100, Volume: 10}
	got := make([]byte, RecordSize)
	codec.Encode(got, r)

	assert.Equal(t, want, got)
	assert.Equal(t, r, codec.Decode(got))
	assert.True(t, codec.Fits(rec(at(9, 30, 0, 0), 1, 1)))
}

func TestLegacyCodec_PrecisionLoss(t *testing.T) {
	codec, err := NewCodec(CodecLegacy, 0)
	require.NoError(t, err)

	r := rec(at(9, 30, 30, 0), 101, 5)
	buf := make([]byte, RecordSize)
	codec.Encode(buf, r)

	got := codec.Decode(buf)
	assert.NotEqual(t, r.UnixMilli, got.UnixMilli)
	assert.InDelta(t, r.UnixMilli, got.UnixMilli, 128_000)
	assert.Equal(t, r.Price, got.Price)
	assert.Equal(t, r.Volume, got.Volume)
}

func TestNewCodec_Unknown(t *testing.T) {
	_, err := NewCodec("zstd", 0)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.StoreUnknownCodec)))

	codec, err := NewCodec("", 0)
	require.NoError(t, err)
	assert.Equal(t, CodecMilli, codec.Name())
}
