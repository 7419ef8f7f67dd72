package coordinator

import (
	"github.com/OpenTTD/openttd-net/protocol"
	"github.com/OpenTTD/openttd-net/wire"
)

// Decoder implements protocol.Decoder for the Coordinator family.
type Decoder struct{}

func (Decoder) Name() string { return "coordinator" }
func (Decoder) End() uint8   { return PacketEnd }

func (Decoder) Decode(tag uint8, body []byte) (protocol.Message, error) {
	switch tag {
	case PacketServerRegister:
		return decodeServerRegister(body)
	case PacketServerUpdate:
		return decodeServerUpdate(body)
	case PacketClientListing:
		return decodeClientListing(body)
	case PacketClientConnect:
		return decodeClientConnect(body)
	case PacketSercliConnectFailed:
		return decodeSercliConnectFailed(body)
	case PacketClientConnected:
		return decodeClientConnected(body)
	case PacketSercliStunResult:
		return decodeSercliStunResult(body)
	default:
		return nil, wire.NewPacketInvalidType(int(tag))
	}
}

func readProtocolVersion(r *wire.Reader, min uint8) (uint8, error) {
	v, err := r.Uint8()
	if err != nil {
		return 0, err
	}
	if v < min || v > 6 {
		return 0, wire.NewPacketInvalidData("unknown protocol version: ", int(v))
	}
	return v, nil
}

func decodeServerRegister(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	var msg ServerRegister

	version, err := readProtocolVersion(r, 1)
	if err != nil {
		return nil, err
	}
	msg.ProtocolVersion = version

	gameType, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	if ServerGameType(gameType) >= ServerGameTypeEnd {
		return nil, wire.NewPacketInvalidData("invalid ServerGameType: ", int(gameType))
	}
	msg.GameType = ServerGameType(gameType)

	msg.ServerPort, err = r.Uint16()
	if err != nil {
		return nil, err
	}

	if version > 1 {
		msg.InviteCode, err = r.String()
		if err != nil {
			return nil, err
		}
		msg.InviteCodeSecret, err = r.String()
		if err != nil {
			return nil, err
		}
	}

	if err := r.Done(); err != nil {
		return nil, err
	}
	return msg, nil
}

func decodeServerUpdate(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	var msg ServerUpdate

	version, err := readProtocolVersion(r, 1)
	if err != nil {
		return nil, err
	}
	msg.ProtocolVersion = version

	info, err := protocol.DecodeGameInfo(r)
	if err != nil {
		return nil, err
	}
	msg.Info = info

	if err := r.Done(); err != nil {
		return nil, err
	}
	return msg, nil
}

func decodeClientListing(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	var msg ClientListing

	version, err := readProtocolVersion(r, 1)
	if err != nil {
		return nil, err
	}
	msg.ProtocolVersion = version

	gameInfoVersion, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	if gameInfoVersion < 1 || gameInfoVersion > 6 {
		return nil, wire.NewPacketInvalidData("unknown game info version: ", int(gameInfoVersion))
	}
	msg.GameInfoVersion = gameInfoVersion

	msg.OpenTTDVersion, err = r.String()
	if err != nil {
		return nil, err
	}

	if version >= 4 {
		msg.NewGRFLookupTableCursor, err = r.Uint32()
		if err != nil {
			return nil, err
		}
	}

	if err := r.Done(); err != nil {
		return nil, err
	}
	return msg, nil
}

func decodeClientConnect(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	var msg ClientConnect

	version, err := readProtocolVersion(r, 2)
	if err != nil {
		return nil, err
	}
	msg.ProtocolVersion = version

	msg.InviteCode, err = r.String()
	if err != nil {
		return nil, err
	}

	if err := r.Done(); err != nil {
		return nil, err
	}
	return msg, nil
}

func decodeSercliConnectFailed(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	var msg SercliConnectFailed

	version, err := readProtocolVersion(r, 2)
	if err != nil {
		return nil, err
	}
	msg.ProtocolVersion = version

	msg.Token, err = r.String()
	if err != nil {
		return nil, err
	}
	msg.TrackingNumber, err = r.Uint8()
	if err != nil {
		return nil, err
	}

	if err := r.Done(); err != nil {
		return nil, err
	}
	return msg, nil
}

func decodeClientConnected(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	var msg ClientConnected

	version, err := readProtocolVersion(r, 2)
	if err != nil {
		return nil, err
	}
	msg.ProtocolVersion = version

	msg.Token, err = r.String()
	if err != nil {
		return nil, err
	}

	if err := r.Done(); err != nil {
		return nil, err
	}
	return msg, nil
}

func decodeSercliStunResult(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	var msg SercliStunResult

	version, err := readProtocolVersion(r, 3)
	if err != nil {
		return nil, err
	}
	msg.ProtocolVersion = version

	msg.Token, err = r.String()
	if err != nil {
		return nil, err
	}
	msg.InterfaceNumber, err = r.Uint8()
	if err != nil {
		return nil, err
	}
	msg.Result, err = r.Uint8()
	if err != nil {
		return nil, err
	}

	if err := r.Done(); err != nil {
		return nil, err
	}
	return msg, nil
}
