package wire

import "encoding/binary"

// Reader is a cursor over an immutable byte slice. Each Read* method
// advances the cursor and returns PacketTooShort if fewer bytes remain
// than the value requires. A single stateful cursor reads more naturally
// from decoders that chain a dozen field reads in a row and bail on the
// first error than a "remaining slice" return value threaded through
// every call.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for sequential reading. The slice is never
// copied or mutated; Reader only tracks a position into it.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes left in the cursor.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Bytes returns the unread tail of the underlying slice without
// advancing the cursor.
func (r *Reader) Bytes() []byte {
	return r.data[r.pos:]
}

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return newPacketTooShort(n, r.Remaining())
	}
	return nil
}

// Uint8 reads one byte.
func (r *Reader) Uint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

// Uint16 reads two bytes, little-endian.
func (r *Reader) Uint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// Uint32 reads four bytes, little-endian.
func (r *Reader) Uint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// Uint64 reads eight bytes, little-endian.
func (r *Reader) Uint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadBytes reads exactly n bytes and returns a copy (never aliasing
// the underlying slice, so callers can hold onto it past the packet's
// lifetime).
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := make([]byte, n)
	copy(v, r.data[r.pos:r.pos+n])
	r.pos += n
	return v, nil
}

// String reads a NUL-terminated UTF-8 string. The terminator is
// consumed but not included in the returned value. An empty string
// (a lone NUL) is valid.
func (r *Reader) String() (string, error) {
	for i := r.pos; i < len(r.data); i++ {
		if r.data[i] == 0 {
			s := string(r.data[r.pos:i])
			r.pos = i + 1
			return s, nil
		}
	}
	return "", newPacketTooShort(1, 0)
}

// Done fails with PacketInvalidData if any bytes remain unread. Every
// family decoder must call this as its last step.
func (r *Reader) Done() error {
	if rem := r.Remaining(); rem != 0 {
		return NewPacketInvalidData("more bytes than expected; remaining: ", rem)
	}
	return nil
}
