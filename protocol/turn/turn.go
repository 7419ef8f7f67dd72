// Package turn implements the TURN protocol family: a peer requests a
// relayed connection, and learns the relay's address once the Game
// Coordinator's TURN server is ready for it.
package turn

import (
	"github.com/OpenTTD/openttd-net/protocol"
	"github.com/OpenTTD/openttd-net/wire"
)

// Packet type tags.
const (
	PacketTurnError     uint8 = 0
	PacketSercliConnect uint8 = 1
	PacketTurnConnected uint8 = 2
	PacketEnd           uint8 = 3
)

// SercliConnect is PACKET_TURN_SERCLI_CONNECT, decode-only.
type SercliConnect struct {
	ProtocolVersion uint8
	Ticket          string
}

func (SercliConnect) PacketName() string { return "PACKET_TURN_SERCLI_CONNECT" }

// TurnConnected is PACKET_TURN_TURN_CONNECTED, encode-only.
type TurnConnected struct {
	Hostname string
}

func (TurnConnected) PacketName() string { return "PACKET_TURN_TURN_CONNECTED" }

// Decoder implements protocol.Decoder for the TURN family.
type Decoder struct{}

func (Decoder) Name() string { return "turn" }
func (Decoder) End() uint8   { return PacketEnd }

func (Decoder) Decode(tag uint8, body []byte) (protocol.Message, error) {
	if tag != PacketSercliConnect {
		return nil, wire.NewPacketInvalidType(int(tag))
	}

	r := wire.NewReader(body)
	var msg SercliConnect

	version, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	if version < 5 || version > 6 {
		return nil, wire.NewPacketInvalidData("unknown protocol version: ", int(version))
	}
	msg.ProtocolVersion = version

	msg.Ticket, err = r.String()
	if err != nil {
		return nil, err
	}

	if err := r.Done(); err != nil {
		return nil, err
	}
	return msg, nil
}

// EncodeTurnConnected builds PACKET_TURN_TURN_CONNECTED.
func EncodeTurnConnected(msg TurnConnected) ([]byte, error) {
	b := wire.Init(PacketTurnConnected)
	b.String(msg.Hostname)
	return b.Finish(wire.SendTCPMTU)
}
