// ABOUTME: Binary codec for embedding vectors stored as BLOBs
// ABOUTME: Each component is a little-endian float64, 8 bytes per component
package vector

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrCodec indicates a stored vector blob that cannot be decoded.
var ErrCodec = errors.New("malformed vector encoding")

// Encode converts a vector to its binary form: 8 bytes per component,
// little-endian float64, in order. len(Encode(v)) == 8*len(v).
func Encode(v []float64) []byte {
	blob := make([]byte, len(v)*8)
	for i, c := range v {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(c))
	}
	return blob
}

// Decode is the exact inverse of Encode. It fails with ErrCodec if the
// byte length is not a multiple of 8.
func Decode(blob []byte) ([]float64, error) {
	if len(blob)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of float64s", ErrCodec, len(blob))
	}
	v := make([]float64, len(blob)/8)
	for i := range v {
		v[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return v, nil
}

// DecodeDim decodes a blob and verifies it holds exactly dim
// components, failing with ErrCodec otherwise.
func DecodeDim(blob []byte, dim int) ([]float64, error) {
	v, err := Decode(blob)
	if err != nil {
		return nil, err
	}
	if len(v) != dim {
		return nil, fmt.Errorf("%w: decoded %d components, store dimension is %d", ErrCodec, len(v), dim)
	}
	return v, nil
}
