package framing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packet(tag byte, body ...byte) []byte {
	p := append([]byte{0, 0, tag}, body...)
	p[0] = byte(len(p))
	p[1] = byte(len(p) >> 8)
	return p
}

func TestFramerSingleCall(t *testing.T) {
	p1 := packet(6, 1, 2, 3)
	p2 := packet(7)

	f := New()
	packets, err := f.Push(append(append([]byte{}, p1...), p2...))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{p1, p2}, packets)
	assert.Equal(t, 0, f.Pending())
}

func TestFramerStableUnderArbitrarySplits(t *testing.T) {
	p1 := packet(6, 1, 2, 3)
	p2 := packet(7)
	whole := append(append([]byte{}, p1...), p2...)

	for split := 0; split <= len(whole); split++ {
		f := New()
		var got [][]byte

		first, err := f.Push(whole[:split])
		require.NoError(t, err)
		got = append(got, first...)

		second, err := f.Push(whole[split:])
		require.NoError(t, err)
		got = append(got, second...)

		assert.Equal(t, [][]byte{p1, p2}, got, "split at %d", split)
	}
}

func TestFramerWaitsForMoreData(t *testing.T) {
	f := New()
	packets, err := f.Push([]byte{0x04, 0x00, 0x00})
	require.NoError(t, err)
	assert.Empty(t, packets)
	assert.Equal(t, 3, f.Pending())

	packets, err = f.Push([]byte{0x99})
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, []byte{0x04, 0x00, 0x00, 0x99}, packets[0])
}

func TestFramerRejectsImpossibleLength(t *testing.T) {
	f := New()
	_, err := f.Push([]byte{0x01, 0x00, 0xff})
	require.Error(t, err)
}

func TestFramerLeavesPartialPrefixBuffered(t *testing.T) {
	p1 := packet(6, 1, 2, 3)
	partial := packet(7)[:2] // just the length prefix of a second packet

	f := New()
	packets, err := f.Push(append(append([]byte{}, p1...), partial...))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{p1}, packets)
	assert.Equal(t, len(partial), f.Pending())
}
