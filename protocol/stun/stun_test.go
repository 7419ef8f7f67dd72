package stun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTTD/openttd-net/wire"
)

func TestDecodeSercliStun(t *testing.T) {
	b := wire.Init(PacketSercliStun)
	b.Uint8(6)
	b.String("tok3n")
	b.Uint8(2)
	body, err := b.Finish(wire.SendTCPMTU)
	require.NoError(t, err)

	r := wire.NewReader(body)
	_, err = r.Uint16()
	require.NoError(t, err)
	_, err = r.Uint8()
	require.NoError(t, err)

	msg, err := Decoder{}.Decode(PacketSercliStun, r.Bytes())
	require.NoError(t, err)

	stun := msg.(SercliStun)
	assert.EqualValues(t, 6, stun.ProtocolVersion)
	assert.Equal(t, "tok3n", stun.Token)
	assert.EqualValues(t, 2, stun.InterfaceNumber)
}

func TestDecodeSercliStunRejectsOldVersion(t *testing.T) {
	b := wire.Init(PacketSercliStun)
	b.Uint8(2)
	b.String("tok3n")
	b.Uint8(0)
	body, err := b.Finish(wire.SendTCPMTU)
	require.NoError(t, err)

	r := wire.NewReader(body)
	_, err = r.Uint16()
	require.NoError(t, err)
	_, err = r.Uint8()
	require.NoError(t, err)

	_, err = Decoder{}.Decode(PacketSercliStun, r.Bytes())
	require.Error(t, err)
}
