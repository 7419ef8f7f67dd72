// Package wire implements the primitive byte-level codec used by every
// OpenTTD network protocol family: fixed-width little-endian integers,
// length-prefixed byte blobs, NUL-terminated strings, and the packet
// builder that assembles an outbound frame.
package wire

import "fmt"

// PacketInvalid is the base error kind for anything wrong with a packet.
// Callers should use errors.As to recover one of the concrete subtypes
// below; framing and session code only needs to know "this packet is
// bad, close the connection."
type PacketInvalid struct {
	reason string
}

func (e *PacketInvalid) Error() string { return e.reason }

// PacketInvalidSize means the outer length prefix didn't match the
// amount of body actually delivered.
type PacketInvalidSize struct {
	PacketInvalid
	Declared int
	Actual   int
}

// NewPacketInvalidSize constructs a PacketInvalidSize for a header
// whose declared length doesn't match the packet's actual size.
func NewPacketInvalidSize(declared, actual int) *PacketInvalidSize {
	return &PacketInvalidSize{
		PacketInvalid: PacketInvalid{reason: fmt.Sprintf("packet declared size %d, actual size %d", declared, actual)},
		Declared:      declared,
		Actual:        actual,
	}
}

// PacketInvalidType means the type tag was at or beyond the family's
// END sentinel, or no decoder is registered for it.
type PacketInvalidType struct {
	PacketInvalid
	Type int
}

// NewPacketInvalidType constructs a PacketInvalidType for a tag at or
// beyond a family's END sentinel, or with no registered decoder.
func NewPacketInvalidType(tag int) *PacketInvalidType {
	return &PacketInvalidType{
		PacketInvalid: PacketInvalid{reason: fmt.Sprintf("unknown or unregistered packet type %d", tag)},
		Type:          tag,
	}
}

// PacketTooBig means an outbound packet exceeds its family's MTU ceiling.
type PacketTooBig struct {
	PacketInvalid
	Size int
}

// NewPacketTooBig constructs a PacketTooBig for the given encoded size.
// Exported because callers assembling packets outside this package
// (the protocol/* families) need to raise it directly.
func NewPacketTooBig(size int) *PacketTooBig {
	return &PacketTooBig{
		PacketInvalid: PacketInvalid{reason: fmt.Sprintf("packet of %d bytes exceeds max size", size)},
		Size:          size,
	}
}

// PacketTooShort means a reader ran off the end of the available bytes.
type PacketTooShort struct {
	PacketInvalid
	Wanted    int
	Available int
}

func newPacketTooShort(wanted, available int) *PacketTooShort {
	return &PacketTooShort{
		PacketInvalid: PacketInvalid{reason: fmt.Sprintf("wanted %d bytes, only %d available", wanted, available)},
		Wanted:        wanted,
		Available:     available,
	}
}

// PacketInvalidData means a semantic validation rule failed: an unknown
// version byte, an out-of-range enum, or trailing bytes left over after
// a decoder consumed every field it expected.
type PacketInvalidData struct {
	PacketInvalid
	Detail string
	Value  int
}

// NewPacketInvalidData constructs a PacketInvalidData, carrying the
// actual offending value rather than some derived proxy for it.
func NewPacketInvalidData(detail string, value int) *PacketInvalidData {
	return &PacketInvalidData{
		PacketInvalid: PacketInvalid{reason: fmt.Sprintf("%s%d", detail, value)},
		Detail:        detail,
		Value:         value,
	}
}

// SocketClosed is raised by a consumer's receive handler to signal it
// has already observed the peer close its side; it is not a
// PacketInvalid and is handled orthogonally by the session controller.
type SocketClosed struct{}

func (e *SocketClosed) Error() string { return "socket closed by peer" }

// ErrSocketClosed is the canonical SocketClosed value; callers may
// compare with errors.Is.
var ErrSocketClosed = &SocketClosed{}
