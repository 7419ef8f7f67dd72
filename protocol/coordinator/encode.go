package coordinator

import (
	"github.com/OpenTTD/openttd-net/protocol"
	"github.com/OpenTTD/openttd-net/wire"
)

// newGRFLookupChunkBudget bounds how many lookup entries fit in one
// GC_NEWGRF_LOOKUP packet. Each entry is at most 4+4+16+80 = 104 bytes;
// 200 bytes of headroom below the MTU is a safe margin.
const newGRFLookupChunkBudget = wire.SendTCPMTU - 200

// EncodeGCError builds PACKET_COORDINATOR_GC_ERROR. Protocol versions
// before 6 don't know NETWORK_COORDINATOR_ERROR_REUSE_OF_INVITE_CODE,
// so it's downgraded to REGISTRATION_FAILED for them.
func EncodeGCError(protocolVersion uint8, msg GCError) ([]byte, error) {
	errNo := msg.ErrorNo
	if protocolVersion < 6 && errNo == ErrorReuseOfInviteCode {
		errNo = ErrorRegistrationFailed
	}
	b := wire.Init(PacketGCError)
	b.Uint8(uint8(errNo))
	b.String(msg.ErrorDetail)
	return b.Finish(wire.SendTCPMTU)
}

// EncodeGCRegisterAck builds PACKET_COORDINATOR_GC_REGISTER_ACK.
func EncodeGCRegisterAck(protocolVersion uint8, msg GCRegisterAck) ([]byte, error) {
	b := wire.Init(PacketGCRegisterAck)
	if protocolVersion > 1 {
		b.String(msg.InviteCode)
		b.String(msg.InviteCodeSecret)
	}
	b.Uint8(uint8(msg.ConnectionType))
	return b.Finish(wire.SendTCPMTU)
}

// EncodeGCConnecting builds PACKET_COORDINATOR_GC_CONNECTING.
func EncodeGCConnecting(msg GCConnecting) ([]byte, error) {
	b := wire.Init(PacketGCConnecting)
	b.String(msg.Token)
	b.String(msg.InviteCode)
	return b.Finish(wire.SendTCPMTU)
}

// EncodeGCConnectFailed builds PACKET_COORDINATOR_GC_CONNECT_FAILED.
func EncodeGCConnectFailed(msg GCConnectFailed) ([]byte, error) {
	b := wire.Init(PacketGCConnectFailed)
	b.String(msg.Token)
	return b.Finish(wire.SendTCPMTU)
}

// EncodeGCDirectConnect builds PACKET_COORDINATOR_GC_DIRECT_CONNECT.
func EncodeGCDirectConnect(msg GCDirectConnect) ([]byte, error) {
	b := wire.Init(PacketGCDirectConnect)
	b.String(msg.Token)
	b.Uint8(msg.TrackingNumber)
	b.String(msg.Hostname)
	b.Uint16(msg.Port)
	return b.Finish(wire.SendTCPMTU)
}

// EncodeGCStunRequest builds PACKET_COORDINATOR_GC_STUN_REQUEST.
func EncodeGCStunRequest(msg GCStunRequest) ([]byte, error) {
	b := wire.Init(PacketGCStunRequest)
	b.String(msg.Token)
	return b.Finish(wire.SendTCPMTU)
}

// EncodeGCStunConnect builds PACKET_COORDINATOR_GC_STUN_CONNECT.
func EncodeGCStunConnect(msg GCStunConnect) ([]byte, error) {
	b := wire.Init(PacketGCStunConnect)
	b.String(msg.Token)
	b.Uint8(msg.TrackingNumber)
	b.Uint8(msg.InterfaceNumber)
	b.String(msg.Hostname)
	b.Uint16(msg.Port)
	return b.Finish(wire.SendTCPMTU)
}

// EncodeGCTurnConnect builds PACKET_COORDINATOR_GC_TURN_CONNECT.
func EncodeGCTurnConnect(msg GCTurnConnect) ([]byte, error) {
	b := wire.Init(PacketGCTurnConnect)
	b.String(msg.Token)
	b.Uint8(msg.TrackingNumber)
	b.String(msg.Ticket)
	b.String(msg.ConnectionString)
	return b.Finish(wire.SendTCPMTU)
}

// EncodeGCNewGRFLookup splits table into as many GC_NEWGRF_LOOKUP
// packets as needed to stay under the chunk budget, each carrying only
// the entries beyond cursor, and reports the table's own cursor (its
// highest index) in every chunk.
func EncodeGCNewGRFLookup(table *NewGRFLookupTable, cursor uint32) ([][]byte, error) {
	newCursor := table.Cursor()
	var packets [][]byte
	var chunk []IndexedNewGRF
	chunkSize := 0

	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		b := wire.Init(PacketGCNewGRFLookup)
		b.Uint32(newCursor)
		b.Uint16(uint16(len(chunk)))
		for _, e := range chunk {
			b.Uint32(e.Index)
			b.Uint32(e.GRFID)
			b.Bytes(e.MD5Sum[:])
			name := e.Name
			if name == "" {
				name = "Unknown"
			}
			b.String(name)
		}
		body, err := b.Finish(wire.SendTCPMTU)
		if err != nil {
			return err
		}
		packets = append(packets, body)
		chunk = nil
		chunkSize = 0
		return nil
	}

	for _, e := range table.entries {
		if e.Index <= cursor {
			continue
		}
		// 4 (index) + 4 (grfid) + 16 (md5) + name + 1 (NUL)
		name := e.Name
		if name == "" {
			name = "Unknown"
		}
		entrySize := 4 + 4 + 16 + len(name) + 1
		if chunkSize+entrySize > newGRFLookupChunkBudget && len(chunk) > 0 {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		chunk = append(chunk, e)
		chunkSize += entrySize
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return packets, nil
}

// EncodeGCListing builds the full GC_LISTING page sequence for a
// listing request: one packet per public server whose GameInfo has
// been populated by a heartbeat, followed by a mandatory empty
// terminator packet signalling end-of-list.
func EncodeGCListing(msg GCListing) ([][]byte, error) {
	var packets [][]byte
	for _, server := range msg.Servers {
		if server.GameType != ServerGameTypePublic {
			continue
		}
		if !server.HasInfo {
			continue
		}
		body, err := encodeOneListingEntry(msg.GameInfoVersion, server, msg.NewGRFLookup)
		if err != nil {
			return nil, err
		}
		packets = append(packets, body)
	}

	terminator := wire.Init(PacketGCListing)
	terminator.Uint16(0)
	body, err := terminator.Finish(wire.SendTCPMTU)
	if err != nil {
		return nil, err
	}
	packets = append(packets, body)
	return packets, nil
}

func encodeOneListingEntry(gameInfoVersion uint8, server ServerListing, table *NewGRFLookupTable) ([]byte, error) {
	b := wire.Init(PacketGCListing)
	b.Uint16(1)
	b.String(server.ConnectionString)
	b.Uint8(gameInfoVersion)

	if gameInfoVersion >= 6 {
		b.Uint8(uint8(protocol.NSTLookupID)) // listing entries always reference the shared table
	}

	info := server.Info
	if gameInfoVersion >= 5 {
		if info.GamescriptVersion == 0 && info.GamescriptName == "" {
			b.Uint32(protocol.GamescriptVersionNone)
			b.String("")
		} else {
			b.Uint32(info.GamescriptVersion)
			b.String(info.GamescriptName)
		}
	}

	if gameInfoVersion >= 4 {
		b.Uint8(uint8(len(server.NewGRFsIndexed)))
		for _, idx := range server.NewGRFsIndexed {
			if gameInfoVersion >= 6 {
				b.Uint32(idx)
				continue
			}
			entry, ok := table.lookup(idx)
			if !ok {
				return nil, wire.NewPacketInvalidData("unknown NewGRF lookup index: ", int(idx))
			}
			b.Uint32(entry.GRFID)
			b.Bytes(entry.MD5Sum[:])
		}
	}

	if gameInfoVersion >= 3 {
		b.Uint32(info.GameDate)
		b.Uint32(info.StartDate)
	}

	if gameInfoVersion >= 2 {
		b.Uint8(info.CompaniesMax)
		b.Uint8(info.CompaniesOn)
		b.Uint8(info.SpectatorsMax)
	}

	if gameInfoVersion >= 1 {
		b.String(info.Name)
		b.String(info.OpenTTDVersion)
		if gameInfoVersion <= 5 {
			b.Uint8(0) // formerly server-lang
		}
		b.Uint8(info.UsePassword)
		b.Uint8(info.ClientsMax)
		b.Uint8(info.ClientsOn)
		b.Uint8(info.SpectatorsOn)

		if gameInfoVersion < 3 {
			b.Uint16(protocol.DemoteLegacyDate(info.GameDate))
			b.Uint16(protocol.DemoteLegacyDate(info.StartDate))
		}

		if gameInfoVersion <= 5 {
			b.String("") // formerly map-name
		}
		b.Uint16(info.MapWidth)
		b.Uint16(info.MapHeight)
		b.Uint8(info.MapType)
		b.Uint8(info.IsDedicated)
	}

	return b.Finish(wire.SendTCPMTU)
}
