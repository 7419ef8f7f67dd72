package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTTD/openttd-net/protocol"
	"github.com/OpenTTD/openttd-net/wire"
)

func buildPacket(t *testing.T, tag uint8, fields func(b *wire.Builder)) []byte {
	t.Helper()
	b := wire.Init(tag)
	fields(b)
	body, err := b.Finish(wire.SendTCPMTU)
	require.NoError(t, err)

	r := wire.NewReader(body)
	_, err = r.Uint16()
	require.NoError(t, err)
	_, err = r.Uint8()
	require.NoError(t, err)
	return r.Bytes()
}

func TestDecodeServerRegisterVersion1HasNoInviteCode(t *testing.T) {
	body := buildPacket(t, PacketServerRegister, func(b *wire.Builder) {
		b.Uint8(1)
		b.Uint8(uint8(ServerGameTypePublic))
		b.Uint16(3979)
	})

	msg, err := Decoder{}.Decode(PacketServerRegister, body)
	require.NoError(t, err)

	reg := msg.(ServerRegister)
	assert.EqualValues(t, 1, reg.ProtocolVersion)
	assert.Equal(t, ServerGameTypePublic, reg.GameType)
	assert.EqualValues(t, 3979, reg.ServerPort)
	assert.Empty(t, reg.InviteCode)
}

func TestDecodeServerRegisterVersion6HasInviteCode(t *testing.T) {
	body := buildPacket(t, PacketServerRegister, func(b *wire.Builder) {
		b.Uint8(6)
		b.Uint8(uint8(ServerGameTypeInviteOnly))
		b.Uint16(3979)
		b.String("abcd-1234")
		b.String("s3cr3t")
	})

	msg, err := Decoder{}.Decode(PacketServerRegister, body)
	require.NoError(t, err)

	reg := msg.(ServerRegister)
	assert.Equal(t, "abcd-1234", reg.InviteCode)
	assert.Equal(t, "s3cr3t", reg.InviteCodeSecret)
}

func TestDecodeServerUpdateRejectsLookupIDSerialization(t *testing.T) {
	body := buildPacket(t, PacketServerUpdate, func(b *wire.Builder) {
		b.Uint8(6) // protocol_version
		b.Uint8(6) // game_info_version
		b.Uint8(uint8(protocol.NSTLookupID))
	})

	_, err := Decoder{}.Decode(PacketServerUpdate, body)
	require.Error(t, err)
}

func TestDecodeClientListingVersion4HasCursor(t *testing.T) {
	body := buildPacket(t, PacketClientListing, func(b *wire.Builder) {
		b.Uint8(4)
		b.Uint8(1)
		b.String("13.0")
		b.Uint32(42)
	})

	msg, err := Decoder{}.Decode(PacketClientListing, body)
	require.NoError(t, err)

	listing := msg.(ClientListing)
	assert.EqualValues(t, 42, listing.NewGRFLookupTableCursor)
}

func TestDecodeClientConnectRejectsVersion1(t *testing.T) {
	body := buildPacket(t, PacketClientConnect, func(b *wire.Builder) {
		b.Uint8(1)
		b.String("abcd-1234")
	})

	_, err := Decoder{}.Decode(PacketClientConnect, body)
	require.Error(t, err)
}

func TestEncodeGCErrorDowngradesReuseOfInviteCode(t *testing.T) {
	body, err := EncodeGCError(5, GCError{ErrorNo: ErrorReuseOfInviteCode, ErrorDetail: "nope"})
	require.NoError(t, err)

	r := wire.NewReader(body)
	_, err = r.Uint16()
	require.NoError(t, err)
	tag, err := r.Uint8()
	require.NoError(t, err)
	assert.Equal(t, PacketGCError, tag)
	errNo, err := r.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(ErrorRegistrationFailed), errNo)
}

func TestEncodeGCListingEmitsTerminator(t *testing.T) {
	packets, err := EncodeGCListing(GCListing{GameInfoVersion: 1})
	require.NoError(t, err)
	require.Len(t, packets, 1)

	r := wire.NewReader(packets[0])
	_, err = r.Uint16()
	require.NoError(t, err)
	_, err = r.Uint8()
	require.NoError(t, err)
	count, err := r.Uint16()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestEncodeGCListingSkipsNonPublicServers(t *testing.T) {
	packets, err := EncodeGCListing(GCListing{
		GameInfoVersion: 1,
		Servers: []ServerListing{
			{GameType: ServerGameTypeLocal, ConnectionString: "local:1234", HasInfo: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, packets, 1) // only the terminator
}

func TestEncodeGCListingSkipsServersWithoutInfo(t *testing.T) {
	// Registered but never heartbeated: no SERVER_UPDATE yet, so Info
	// holds only zero values and the server must not be listed.
	packets, err := EncodeGCListing(GCListing{
		GameInfoVersion: 1,
		Servers: []ServerListing{
			{GameType: ServerGameTypePublic, ConnectionString: "+abcd", Info: protocol.GameInfo{}},
		},
	})
	require.NoError(t, err)
	require.Len(t, packets, 1) // only the terminator
}

func TestEncodeGCListingIncludesServerWithEmptyConnectionString(t *testing.T) {
	packets, err := EncodeGCListing(GCListing{
		GameInfoVersion: 1,
		Servers: []ServerListing{
			{GameType: ServerGameTypePublic, HasInfo: true, Info: protocol.GameInfo{Name: "srv"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, packets, 2) // one listing entry plus the terminator

	r := wire.NewReader(packets[0])
	_, err = r.Uint16()
	require.NoError(t, err)
	_, err = r.Uint8()
	require.NoError(t, err)
	count, err := r.Uint16()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	connectionString, err := r.String()
	require.NoError(t, err)
	assert.Empty(t, connectionString)
}

func TestEncodeGCNewGRFLookupOnlySendsEntriesAboveCursor(t *testing.T) {
	table := NewNewGRFLookupTable([]IndexedNewGRF{
		{Index: 1, GRFID: 0x1111, Name: "one"},
		{Index: 2, GRFID: 0x2222, Name: "two"},
	})

	packets, err := EncodeGCNewGRFLookup(table, 1)
	require.NoError(t, err)
	require.Len(t, packets, 1)

	r := wire.NewReader(packets[0])
	_, err = r.Uint16()
	require.NoError(t, err)
	_, err = r.Uint8()
	require.NoError(t, err)
	cursor, err := r.Uint32()
	require.NoError(t, err)
	assert.EqualValues(t, 2, cursor)
	count, err := r.Uint16()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
