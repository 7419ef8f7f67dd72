package proxyproto

import (
	"net/netip"
	"testing"

	"github.com/OpenTTD/openttd-net/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func original() source.Source {
	return source.Source{IP: netip.MustParseAddr("127.0.0.2"), Port: 54321}
}

func TestDetectPassesThroughNonProxyData(t *testing.T) {
	data := []byte{0x03, 0x00, 0x00}
	out, updated, ok, err := Detect(original(), data)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, data, out)
	assert.Equal(t, original(), updated)
}

func TestDetectParsesPreamble(t *testing.T) {
	data := []byte("PROXY TCP4 127.0.0.1 127.0.0.1 12345 12121\r\n\x03\x00\x00")
	out, updated, ok, err := Detect(original(), data)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x03, 0x00, 0x00}, out)
	assert.Equal(t, "127.0.0.1", updated.IP.String())
	assert.EqualValues(t, 12345, updated.Port)
}

func TestDetectMissingCRLF(t *testing.T) {
	data := []byte("PROXY TCP4 127.0.0.1 127.0.0.1 12345 12121")
	out, updated, ok, err := Detect(original(), data)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, data, out)
	assert.Equal(t, original(), updated)
}
