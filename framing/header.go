package framing

import (
	"github.com/OpenTTD/openttd-net/wire"
)

// ValidateHeader checks one fully-framed packet's header: re-derives
// the declared length and compares it against the packet's actual
// size, then extracts the type tag and checks it against the family's
// END sentinel. It returns the packet type and the body bytes (the
// packet with its 2-byte length prefix and 1-byte type tag stripped).
//
// end is the family's PACKET_END value: tags at or beyond it are
// invalid. The caller is expected to additionally check that a decoder
// is registered for the returned type, which this function has no way
// to know about.
func ValidateHeader(packet []byte, end uint8) (packetType uint8, body []byte, err error) {
	r := wire.NewReader(packet)

	declared, err := r.Uint16()
	if err != nil {
		return 0, nil, err
	}
	if int(declared) != len(packet) {
		return 0, nil, wire.NewPacketInvalidSize(int(declared), len(packet))
	}

	packetType, err = r.Uint8()
	if err != nil {
		return 0, nil, err
	}
	if packetType >= end {
		return 0, nil, wire.NewPacketInvalidType(int(packetType))
	}

	return packetType, r.Bytes(), nil
}
