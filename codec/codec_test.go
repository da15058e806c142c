package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeLongBigEndian(t *testing.T) {
	c := &DefaultCodec{}
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, c.EncodeLong(1))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, c.EncodeLong(-1))
}

func TestDecodeLong(t *testing.T) {
	c := &DefaultCodec{}
	n, err := c.DecodeLong([]byte{0, 0, 0, 0, 0, 0, 0x13, 0x88})
	assert.Nil(t, err)
	assert.Equal(t, int64(5000), n)
}

func TestDecodeLongWrongSize(t *testing.T) {
	c := &DefaultCodec{}
	for _, b := range [][]byte{nil, {1}, make([]byte, 9)} {
		_, err := c.DecodeLong(b)
		assert.True(t, errors.Is(err, ErrInvalidLong), "len %d", len(b))
	}
}
