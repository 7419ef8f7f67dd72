package coordinator

import "github.com/OpenTTD/openttd-net/protocol"

// IndexedNewGRF is one row of the shared NewGRF lookup table:
// index (u32) -> {grfid, md5sum, name}.
type IndexedNewGRF struct {
	Index  uint32
	GRFID  uint32
	MD5Sum [16]byte
	Name   string
}

// NewGRFLookupTable is the shared mapping servers' NewGRF identities
// are deduplicated against before being embedded in a listing.
// Consumers own the table's lifetime; this type just gives the
// encoders a stable way to walk and look up entries.
type NewGRFLookupTable struct {
	entries []IndexedNewGRF
	byIndex map[uint32]IndexedNewGRF
}

// NewNewGRFLookupTable builds a lookup table from its entries. Entries
// must be supplied in ascending Index order, matching the order the
// owning registry assigned them.
func NewNewGRFLookupTable(entries []IndexedNewGRF) *NewGRFLookupTable {
	byIndex := make(map[uint32]IndexedNewGRF, len(entries))
	for _, e := range entries {
		byIndex[e.Index] = e
	}
	return &NewGRFLookupTable{entries: entries, byIndex: byIndex}
}

// Cursor returns the highest index in the table, or 0 if empty. The
// cursor only ever increases (short of a full registry reset), making
// it a safe high-water mark for incremental GC_NEWGRF_LOOKUP pages.
func (t *NewGRFLookupTable) Cursor() uint32 {
	var max uint32
	for _, e := range t.entries {
		if e.Index > max {
			max = e.Index
		}
	}
	return max
}

func (t *NewGRFLookupTable) lookup(index uint32) (IndexedNewGRF, bool) {
	e, ok := t.byIndex[index]
	return e, ok
}

// ServerListing is the opaque record the embedding application's
// server registry supplies per registered server: its
// advertised game type, connection string, GameInfo, and (for newer
// protocol versions) the set of NewGRF indices it uses. HasInfo is
// false until the server's first SERVER_UPDATE heartbeat populates
// Info; such servers are left out of listings.
type ServerListing struct {
	GameType         ServerGameType
	ConnectionString string
	HasInfo          bool
	Info             protocol.GameInfo
	NewGRFsIndexed   []uint32
}
