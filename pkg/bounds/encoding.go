package bounds

import (
	"encoding/binary"
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// ErrTypeDecode marks a malformed binary box record
const ErrTypeDecode = "bounds_decode"

// binarySize is the length of a binary box record: six float64 values
const binarySize = 6 * 8

// MarshalBinary encodes the box as six little-endian float64 values in the
// order MinX, MaxX, MinY, MaxY, MinZ, MaxZ.
func (b Box) MarshalBinary() ([]byte, error) {
	buf := make([]byte, binarySize)
	for i, v := range [6]float64{b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ} {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf, nil
}

// UnmarshalBinary decodes a record written by MarshalBinary
func (b *Box) UnmarshalBinary(data []byte) error {
	if len(data) != binarySize {
		return errors.New("invalid box record length").
			WithType(ErrTypeDecode).
			WithTag("length", len(data))
	}
	var v [6]float64
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	*b = Box{MinX: v[0], MaxX: v[1], MinY: v[2], MaxY: v[3], MinZ: v[4], MaxZ: v[5]}
	return nil
}
