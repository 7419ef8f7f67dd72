// Package framing turns a raw TCP byte stream into a sequence of
// complete, length-prefixed packets. It owns only the receive
// accumulator; header validation and decoding are layered on top by
// the session and protocol packages.
package framing

import (
	"encoding/binary"
	"fmt"
)

// Framer holds the per-connection receive accumulator. After every
// Push call it holds only a (possibly empty) prefix of the next
// packet.
type Framer struct {
	accumulator []byte
}

// New returns an empty Framer.
func New() *Framer {
	return &Framer{}
}

// Push appends newly-read bytes to the accumulator and slices out every
// complete packet it now contains. Returned packet slices are copies,
// safe to hand off to another goroutine. Push is stable under
// arbitrary split points: feeding the same byte stream through any
// sequence of Push calls yields the same packets in the same order.
//
// A non-nil error means the stream itself is malformed (an impossible
// length field); the caller must close the transport and must not call
// Push again on this Framer.
func (f *Framer) Push(data []byte) ([][]byte, error) {
	f.accumulator = append(f.accumulator, data...)

	var packets [][]byte
	for len(f.accumulator) >= 3 {
		length := binary.LittleEndian.Uint16(f.accumulator[0:2])
		if length < 2 {
			return packets, fmt.Errorf("framing: impossible packet length field of %d", length)
		}
		if int(length) > len(f.accumulator) {
			break
		}

		packet := make([]byte, length)
		copy(packet, f.accumulator[:length])
		packets = append(packets, packet)

		f.accumulator = f.accumulator[length:]
	}

	// Detach the prefix into its own backing array so the next Push
	// doesn't keep re-growing (and pinning) whatever buffer the caller
	// passed in.
	if len(f.accumulator) > 0 {
		rest := make([]byte, len(f.accumulator))
		copy(rest, f.accumulator)
		f.accumulator = rest
	} else {
		f.accumulator = nil
	}

	return packets, nil
}

// Pending returns the number of bytes currently buffered as an
// incomplete packet prefix.
func (f *Framer) Pending() int {
	return len(f.accumulator)
}
