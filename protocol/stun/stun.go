// Package stun implements the STUN protocol family: the single packet
// a STUN-capable peer sends back to the Game Coordinator once it has
// learned its own public address.
package stun

import (
	"github.com/OpenTTD/openttd-net/protocol"
	"github.com/OpenTTD/openttd-net/wire"
)

// Packet type tags.
const (
	PacketSercliStun uint8 = 0
	PacketEnd        uint8 = 1
)

// SercliStun is PACKET_STUN_SERCLI_STUN, decode-only.
type SercliStun struct {
	ProtocolVersion uint8
	Token           string
	InterfaceNumber uint8
}

func (SercliStun) PacketName() string { return "PACKET_STUN_SERCLI_STUN" }

// Decoder implements protocol.Decoder for the STUN family.
type Decoder struct{}

func (Decoder) Name() string { return "stun" }
func (Decoder) End() uint8   { return PacketEnd }

func (Decoder) Decode(tag uint8, body []byte) (protocol.Message, error) {
	if tag != PacketSercliStun {
		return nil, wire.NewPacketInvalidType(int(tag))
	}

	r := wire.NewReader(body)
	var msg SercliStun

	version, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	if version < 3 || version > 6 {
		return nil, wire.NewPacketInvalidData("unknown protocol version: ", int(version))
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

	if err := r.Done(); err != nil {
		return nil, err
	}
	return msg, nil
}
