package turn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTTD/openttd-net/wire"
)

func TestDecodeSercliConnect(t *testing.T) {
	b := wire.Init(PacketSercliConnect)
	b.Uint8(6)
	b.String("ticket-abc")
	body, err := b.Finish(wire.SendTCPMTU)
	require.NoError(t, err)

	r := wire.NewReader(body)
	_, err = r.Uint16()
	require.NoError(t, err)
	_, err = r.Uint8()
	require.NoError(t, err)

	msg, err := Decoder{}.Decode(PacketSercliConnect, r.Bytes())
	require.NoError(t, err)

	connect := msg.(SercliConnect)
	assert.Equal(t, "ticket-abc", connect.Ticket)
}

func TestDecodeSercliConnectRejectsOldVersion(t *testing.T) {
	b := wire.Init(PacketSercliConnect)
	b.Uint8(4)
	b.String("ticket-abc")
	body, err := b.Finish(wire.SendTCPMTU)
	require.NoError(t, err)

	r := wire.NewReader(body)
	_, err = r.Uint16()
	require.NoError(t, err)
	_, err = r.Uint8()
	require.NoError(t, err)

	_, err = Decoder{}.Decode(PacketSercliConnect, r.Bytes())
	require.Error(t, err)
}

func TestEncodeTurnConnected(t *testing.T) {
	body, err := EncodeTurnConnected(TurnConnected{Hostname: "relay.example.com"})
	require.NoError(t, err)

	r := wire.NewReader(body)
	_, err = r.Uint16()
	require.NoError(t, err)
	tag, err := r.Uint8()
	require.NoError(t, err)
	assert.Equal(t, PacketTurnConnected, tag)

	hostname, err := r.String()
	require.NoError(t, err)
	assert.Equal(t, "relay.example.com", hostname)
}
