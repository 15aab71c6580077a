package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeFloats encodes a coordinate buffer into a BLOB representation
// suitable for storage in SQLite: a little-endian sequence of IEEE 754
// float32 values without a length prefix; the length is derived from the
// BLOB size on decode.
func EncodeFloats(values []float32) []byte {
	if len(values) == 0 {
		return nil
	}
	b := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// DecodeFloats decodes a BLOB produced by EncodeFloats.
func DecodeFloats(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("store: invalid point blob length %d (not a multiple of 4)", len(b))
	}
	n := len(b) / 4
	values := make([]float32, n)
	for i := 0; i < n; i++ {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return values, nil
}
