package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderAppend(t *testing.T) {
	cases := []struct {
		name   string
		write  func(*Builder)
		result []byte
	}{
		{"uint8", func(b *Builder) { b.Uint8(1) }, []byte{0x01}},
		{"uint16", func(b *Builder) { b.Uint16(0x0201) }, []byte{0x01, 0x02}},
		{"uint32", func(b *Builder) { b.Uint32(0x04030201) }, []byte{0x01, 0x02, 0x03, 0x04}},
		{"uint64", func(b *Builder) { b.Uint64(0x0807060504030201) }, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"bytes", func(b *Builder) { b.Bytes([]byte{0x01, 0x02}) }, []byte{0x01, 0x02}},
		{"string", func(b *Builder) { b.String("abc") }, []byte("abc\x00")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Init(1)
			tc.write(b)
			assert.Equal(t, append([]byte{0x00, 0x00, 0x01}, tc.result...), b.data)
		})
	}
}

func TestBuilderFinish(t *testing.T) {
	b := Init(1)
	b.Uint32(0)
	packet, err := b.Finish(SendTCPMTU)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x07, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}, packet)
}

func TestBuilderFinishTooBig(t *testing.T) {
	b := Init(1)
	b.Uint32(0)

	_, err := b.Finish(1)
	require.Error(t, err)
	var tooBig *PacketTooBig
	assert.True(t, errors.As(err, &tooBig))
}

func TestEmptyStringEncodesAsSingleNUL(t *testing.T) {
	b := Init(1)
	b.String("")
	packet, err := b.Finish(SendTCPMTU)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x00, 0x01, 0x00}, packet)
}
