package binstore

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/muhammadchandra19/tickstore/pkg/errors"
)

// RecordSize is the width of every record on disk, for both codecs.
const RecordSize = 12

// Codec names stored in the index file.
const (
	CodecMilli  = "milli"
	CodecLegacy = "legacy"
)

// Record is one tick as stored on disk.
type Record struct {
	UnixMilli int64
	Price     float32
	Volume    int32
}

// Codec encodes records into fixed RecordSize little-endian blocks.
//
// Layouts:
//
//	milli:  [uint32 ms since base minute][float32 price][int32 volume]
//	legacy: [float32 unix seconds][float32 price][int32 volume]
//
// legacy matches files written with struct.pack("<ffi"). A float32 cannot
// hold current Unix seconds to better than 128s, so legacy timestamps are
// lossy and the codec exists only to read and write that layout.
type Codec interface {
	Name() string
	Size() int
	// Fits reports whether r survives Encode/Decode without timestamp loss
	// beyond the codec's documented resolution.
	Fits(r Record) bool
	Encode(dst []byte, r Record)
	Decode(src []byte) Record
}

// NewCodec returns the named codec. baseMinute (Unix seconds) anchors the milli layout.
func NewCodec(name string, baseMinute int64) (Codec, error) {
	switch name {
	case CodecMilli, "":
		return milliCodec{baseMilli: baseMinute * 1000}, nil
	case CodecLegacy:
		return legacyCodec{}, nil
	default:
		return nil, errors.NewErrorDetails(fmt.Sprintf("unknown codec %q", name), string(errors.StoreUnknownCodec), "codec")
	}
}

type milliCodec struct {
	baseMilli int64
}

func (milliCodec) Name() string { return CodecMilli }
func (milliCodec) Size() int    { return RecordSize }

func (c milliCodec) Fits(r Record) bool {
	delta := r.UnixMilli - c.baseMilli
	return delta >= 0 && delta <= math.MaxUint32
}

func (c milliCodec) Encode(dst []byte, r Record) {
	binary.LittleEndian.PutUint32(dst[0:], uint32(r.UnixMilli-c.baseMilli))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(r.Price))
	binary.LittleEndian.PutUint32(dst[8:], uint32(r.Volume))
}

func (c milliCodec) Decode(src []byte) Record {
	return Record{
		UnixMilli: c.baseMilli + int64(binary.LittleEndian.Uint32(src[0:])),
		Price:     math.Float32frombits(binary.LittleEndian.Uint32(src[4:])),
		Volume:    int32(binary.LittleEndian.Uint32(src[8:])),
	}
}

type legacyCodec struct{}

func (legacyCodec) Name() string     { return CodecLegacy }
func (legacyCodec) Size() int        { return RecordSize }
func (legacyCodec) Fits(Record) bool { return true }

func (legacyCodec) Encode(dst []byte, r Record) {
	seconds := float32(float64(r.UnixMilli) / 1000)
	binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(seconds))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(r.Price))
	binary.LittleEndian.PutUint32(dst[8:], uint32(r.Volume))
}

func (legacyCodec) Decode(src []byte) Record {
	seconds := math.Float32frombits(binary.LittleEndian.Uint32(src[0:]))
	return Record{
		UnixMilli: int64(math.Round(float64(seconds) * 1000)),
		Price:     math.Float32frombits(binary.LittleEndian.Uint32(src[4:])),
		Volume:    int32(binary.LittleEndian.Uint32(src[8:])),
	}
}
