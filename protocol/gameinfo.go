package protocol

import (
	"github.com/OpenTTD/openttd-net/wire"
)

// NewGRFEntry is one record in a GameInfo's NewGRF list (game-info
// version >= 4). Name is only populated when the enclosing GameInfo's
// NewGRFSerializationType is NSTGrfIDMD5Name.
type NewGRFEntry struct {
	GRFID  uint32
	MD5Sum [16]byte
	Name   string
}

// GameInfo is the versioned schema shared by the Game family's
// SERVER_GAME_INFO and the Coordinator family's SERVER_UPDATE/GC_LISTING.
// Fields gated behind a game-info-version floor are left at their zero
// value when that floor isn't met; GameInfoVersion tells the caller
// which fields are meaningful.
type GameInfo struct {
	GameInfoVersion         uint8
	NewGRFSerializationType NewGRFSerializationType

	GamescriptVersion uint32 // v >= 5
	GamescriptName    string

	NewGRFs []NewGRFEntry // v >= 4

	GameDate  uint32 // v >= 3 (already epoch-promoted if decoded from a v1/v2 body)
	StartDate uint32

	CompaniesMax  uint8 // v >= 2
	CompaniesOn   uint8
	SpectatorsMax uint8

	Name           string // v >= 1
	OpenTTDVersion string
	UsePassword    uint8
	ClientsMax     uint8
	ClientsOn      uint8
	SpectatorsOn   uint8
	MapWidth       uint16
	MapHeight      uint16
	MapType        uint8
	IsDedicated    uint8
}

// DecodeGameInfo reads a GameInfo block starting at the
// game_info_version byte. NSTLookupID is never valid here: that
// serialization variant only appears in GC_LISTING's encode path,
// never over the wire on decode.
func DecodeGameInfo(r *wire.Reader) (GameInfo, error) {
	var gi GameInfo

	version, err := r.Uint8()
	if err != nil {
		return gi, err
	}
	if version < 1 || version > 6 {
		return gi, wire.NewPacketInvalidData("unknown game info version: ", int(version))
	}
	gi.GameInfoVersion = version

	if version >= 6 {
		nst, err := r.Uint8()
		if err != nil {
			return gi, err
		}
		if NewGRFSerializationType(nst) >= NSTSerializationEnd {
			return gi, wire.NewPacketInvalidData("invalid NewGRFSerializationType: ", int(nst))
		}
		gi.NewGRFSerializationType = NewGRFSerializationType(nst)
		if gi.NewGRFSerializationType == NSTLookupID {
			return gi, wire.NewPacketInvalidData("NewGRF serialization type cannot be NST_LOOKUP_ID: ", int(nst))
		}
	} else {
		gi.NewGRFSerializationType = NSTConversionGrfIDMD5
	}

	if version >= 5 {
		gi.GamescriptVersion, err = r.Uint32()
		if err != nil {
			return gi, err
		}
		gi.GamescriptName, err = r.String()
		if err != nil {
			return gi, err
		}
	}

	if version >= 4 {
		count, err := r.Uint8()
		if err != nil {
			return gi, err
		}
		gi.NewGRFs = make([]NewGRFEntry, 0, count)
		for i := 0; i < int(count); i++ {
			var entry NewGRFEntry
			entry.GRFID, err = r.Uint32()
			if err != nil {
				return gi, err
			}
			md5, err := r.ReadBytes(16)
			if err != nil {
				return gi, err
			}
			copy(entry.MD5Sum[:], md5)
			if gi.NewGRFSerializationType == NSTGrfIDMD5Name {
				entry.Name, err = r.String()
				if err != nil {
					return gi, err
				}
			}
			gi.NewGRFs = append(gi.NewGRFs, entry)
		}
	}

	if version >= 3 {
		gi.GameDate, err = r.Uint32()
		if err != nil {
			return gi, err
		}
		gi.StartDate, err = r.Uint32()
		if err != nil {
			return gi, err
		}
	}

	if version >= 2 {
		gi.CompaniesMax, err = r.Uint8()
		if err != nil {
			return gi, err
		}
		gi.CompaniesOn, err = r.Uint8()
		if err != nil {
			return gi, err
		}
		gi.SpectatorsMax, err = r.Uint8()
		if err != nil {
			return gi, err
		}
	}

	if version >= 1 {
		gi.Name, err = r.String()
		if err != nil {
			return gi, err
		}
		gi.OpenTTDVersion, err = r.String()
		if err != nil {
			return gi, err
		}
		if version < 6 {
			if _, err := r.Uint8(); err != nil { // formerly server-lang
				return gi, err
			}
		}
		gi.UsePassword, err = r.Uint8()
		if err != nil {
			return gi, err
		}
		gi.ClientsMax, err = r.Uint8()
		if err != nil {
			return gi, err
		}
		gi.ClientsOn, err = r.Uint8()
		if err != nil {
			return gi, err
		}
		gi.SpectatorsOn, err = r.Uint8()
		if err != nil {
			return gi, err
		}

		if version < 3 {
			legacyGameDate, err := r.Uint16()
			if err != nil {
				return gi, err
			}
			gi.GameDate = PromoteLegacyDate(legacyGameDate)
			legacyStartDate, err := r.Uint16()
			if err != nil {
				return gi, err
			}
			gi.StartDate = PromoteLegacyDate(legacyStartDate)
		}

		if version < 6 {
			if _, err := r.String(); err != nil { // formerly map-name
				return gi, err
			}
		}
		gi.MapWidth, err = r.Uint16()
		if err != nil {
			return gi, err
		}
		gi.MapHeight, err = r.Uint16()
		if err != nil {
			return gi, err
		}
		gi.MapType, err = r.Uint8()
		if err != nil {
			return gi, err
		}
		gi.IsDedicated, err = r.Uint8()
		if err != nil {
			return gi, err
		}
	}

	return gi, nil
}
