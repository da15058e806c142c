package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// LongSize is the width of an HBase long cell value.
const LongSize = 8

var ErrInvalidLong = errors.New("invalid long encoding")

// Codec converts counter values to and from cell bytes.
type Codec interface {
	EncodeLong(int64) []byte
	DecodeLong([]byte) (int64, error)
}

// DefaultCodec uses the 8-byte big-endian layout of HBase's Bytes.toBytes(long),
// which is also what server-side increments read and write.
type DefaultCodec struct{}

func (*DefaultCodec) EncodeLong(n int64) []byte {
	b := make([]byte, LongSize)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}

func (*DefaultCodec) DecodeLong(b []byte) (int64, error) {
	if len(b) != LongSize {
		return 0, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLong, len(b), LongSize)
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}
