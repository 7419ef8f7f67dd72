package protocol

// NewGRFSerializationType selects how a GameInfo record's NewGRF
// entries are laid out on the wire.
type NewGRFSerializationType uint8

const (
	NSTGrfIDMD5         NewGRFSerializationType = 0
	NSTGrfIDMD5Name     NewGRFSerializationType = 1
	NSTLookupID         NewGRFSerializationType = 2
	NSTSerializationEnd NewGRFSerializationType = 3

	// NSTConversionGrfIDMD5 is never sent on the wire: it is the
	// implicit value game-info versions below 6 decode to, since
	// those versions predate the serialization_type field entirely.
	NSTConversionGrfIDMD5 NewGRFSerializationType = 4
)

// SwapUniqueIDEndianness converts a content-family unique_id between
// its wire form and its natural big-endian form. The wire carries
// unique_id as a little-endian uint32, but the 4 raw bytes are a
// big-endian-ordered identifier; reading the wire bytes as
// little-endian and re-emitting them as big-endian is exactly a
// 4-byte reversal, so the same function applies on both decode and
// encode. Content types other than NewGRF/Scenario/Heightmap pass
// unique_id through untouched and must not call this.
func SwapUniqueIDEndianness(id [4]byte) [4]byte {
	return [4]byte{id[3], id[2], id[1], id[0]}
}

// ContentTypeNeedsUniqueIDSwap reports whether contentType's unique_id
// field requires SwapUniqueIDEndianness.
func ContentTypeNeedsUniqueIDSwap(contentType uint8) bool {
	switch contentType {
	case 2, 5, 6: // CONTENT_TYPE_NEWGRF, CONTENT_TYPE_SCENARIO, CONTENT_TYPE_HEIGHTMAP
		return true
	default:
		return false
	}
}
