package wire

import "encoding/binary"

const (
	// SendTCPMTU is the packet-size ceiling OpenTTD clients have
	// supported for TCP since 1.12.
	SendTCPMTU = 32767
	// SendTCPCompatMTU is the ceiling for clients older than 1.12, and
	// for every packet in the content family regardless of client
	// version.
	SendTCPCompatMTU = 1460
	// SendUDPMTU is the ceiling for UDP packets. UDP discovery packets
	// are declared but unimplemented.
	SendUDPMTU = 1460
)

// Builder accumulates an outbound packet body. Init reserves the
// 2-byte length placeholder and writes the type tag; Finish patches the
// length and returns the immutable wire bytes.
type Builder struct {
	data []byte
}

// Init starts a new packet of the given type tag.
func Init(packetType uint8) *Builder {
	b := &Builder{data: make([]byte, 2, 16)}
	b.Uint8(packetType)
	return b
}

// Len reports the number of bytes written so far, including the
// 2-byte length placeholder and the type tag.
func (b *Builder) Len() int {
	return len(b.data)
}

// Uint8 appends one byte.
func (b *Builder) Uint8(v uint8) *Builder {
	b.data = append(b.data, v)
	return b
}

// Uint16 appends two bytes, little-endian.
func (b *Builder) Uint16(v uint16) *Builder {
	b.data = binary.LittleEndian.AppendUint16(b.data, v)
	return b
}

// Uint32 appends four bytes, little-endian.
func (b *Builder) Uint32(v uint32) *Builder {
	b.data = binary.LittleEndian.AppendUint32(b.data, v)
	return b
}

// Uint64 appends eight bytes, little-endian.
func (b *Builder) Uint64(v uint64) *Builder {
	b.data = binary.LittleEndian.AppendUint64(b.data, v)
	return b
}

// Bytes appends a fixed-length blob as-is.
func (b *Builder) Bytes(v []byte) *Builder {
	b.data = append(b.data, v...)
	return b
}

// String appends a UTF-8 string followed by a single NUL terminator.
func (b *Builder) String(v string) *Builder {
	b.data = append(b.data, v...)
	b.data = append(b.data, 0)
	return b
}

// Finish patches the length prefix and returns the finalized packet
// bytes. It fails with PacketTooBig if the packet exceeds maxSize.
// Finish must be called exactly once per packet; the Builder should
// not be reused afterwards.
func (b *Builder) Finish(maxSize int) ([]byte, error) {
	if len(b.data) > maxSize {
		return nil, NewPacketTooBig(len(b.data))
	}
	binary.LittleEndian.PutUint16(b.data[0:2], uint16(len(b.data)))
	return b.data, nil
}
