package game

import (
	"github.com/OpenTTD/openttd-net/protocol"
	"github.com/OpenTTD/openttd-net/wire"
)

// Decoder implements protocol.Decoder for the Game family.
type Decoder struct{}

func (Decoder) Name() string { return "game" }
func (Decoder) End() uint8   { return PacketEnd }

func (Decoder) Decode(tag uint8, body []byte) (protocol.Message, error) {
	switch tag {
	case PacketServerGameInfo:
		return decodeServerGameInfo(body)
	case PacketServerShutdown:
		return decodeServerShutdown(body)
	default:
		return nil, wire.NewPacketInvalidType(int(tag))
	}
}

func decodeServerGameInfo(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	gi, err := protocol.DecodeGameInfo(r)
	if err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return ServerGameInfo{GameInfo: gi}, nil
}

func decodeServerShutdown(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	if err := r.Done(); err != nil {
		return nil, err
	}
	return ServerShutdown{}, nil
}

// EncodeClientGameInfo builds the finalized PACKET_CLIENT_GAME_INFO
// packet, an empty-bodied request for PACKET_SERVER_GAME_INFO.
func EncodeClientGameInfo() ([]byte, error) {
	return wire.Init(PacketClientGameInfo).Finish(wire.SendTCPMTU)
}
