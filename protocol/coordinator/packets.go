// Package coordinator implements the Coordinator protocol family:
// registration, public-server listing, and the connect/STUN/TURN
// brokering handshake the Game Coordinator mediates between a client
// and a server it cannot reach directly.
package coordinator

import "github.com/OpenTTD/openttd-net/protocol"

// Packet type tags, targeting protocol_version 6. Earlier tag layouts
// from older coordinator releases are not part of this catalogue.
const (
	PacketGCError             uint8 = 0
	PacketServerRegister      uint8 = 1
	PacketGCRegisterAck       uint8 = 2
	PacketServerUpdate        uint8 = 3
	PacketClientListing       uint8 = 4
	PacketGCListing           uint8 = 5
	PacketClientConnect       uint8 = 6
	PacketGCConnecting        uint8 = 7
	PacketSercliConnectFailed uint8 = 8
	PacketGCConnectFailed     uint8 = 9
	PacketClientConnected     uint8 = 10
	PacketGCDirectConnect     uint8 = 11
	PacketGCStunRequest       uint8 = 12
	PacketSercliStunResult    uint8 = 13
	PacketGCStunConnect       uint8 = 14
	PacketGCNewGRFLookup      uint8 = 15
	PacketGCTurnConnect       uint8 = 16
	PacketEnd                 uint8 = 17
)

// ServerGameType controls who can discover a registered server via listing.
type ServerGameType uint8

const (
	ServerGameTypeLocal      ServerGameType = 0
	ServerGameTypePublic     ServerGameType = 1
	ServerGameTypeInviteOnly ServerGameType = 2
	ServerGameTypeEnd        ServerGameType = 3
)

// ConnectionType reports how a Client Connect handshake ultimately
// succeeded (or that it never needed NAT traversal at all).
type ConnectionType uint8

const (
	ConnectionTypeUnknown  ConnectionType = 0
	ConnectionTypeIsolated ConnectionType = 1
	ConnectionTypeDirect   ConnectionType = 2
	ConnectionTypeStun     ConnectionType = 3
	ConnectionTypeTurn     ConnectionType = 4
)

// NetworkCoordinatorErrorType is carried by GC_ERROR.
type NetworkCoordinatorErrorType uint8

const (
	ErrorUnknown            NetworkCoordinatorErrorType = 0
	ErrorRegistrationFailed NetworkCoordinatorErrorType = 1
	ErrorInvalidInviteCode  NetworkCoordinatorErrorType = 2
	ErrorReuseOfInviteCode  NetworkCoordinatorErrorType = 3
)

// GCError is PACKET_COORDINATOR_GC_ERROR, encode-only.
type GCError struct {
	ErrorNo     NetworkCoordinatorErrorType
	ErrorDetail string
}

func (GCError) PacketName() string { return "PACKET_COORDINATOR_GC_ERROR" }

// ServerRegister is PACKET_COORDINATOR_SERVER_REGISTER, decode-only.
type ServerRegister struct {
	ProtocolVersion  uint8
	GameType         ServerGameType
	ServerPort       uint16
	InviteCode       string // empty when ProtocolVersion == 1
	InviteCodeSecret string
}

func (ServerRegister) PacketName() string { return "PACKET_COORDINATOR_SERVER_REGISTER" }

// GCRegisterAck is PACKET_COORDINATOR_GC_REGISTER_ACK, encode-only.
type GCRegisterAck struct {
	ProtocolVersion  uint8
	ConnectionType   ConnectionType
	InviteCode       string // only written when ProtocolVersion > 1
	InviteCodeSecret string
}

func (GCRegisterAck) PacketName() string { return "PACKET_COORDINATOR_GC_REGISTER_ACK" }

// ServerUpdate is PACKET_COORDINATOR_SERVER_UPDATE, decode-only: a
// registered server's periodic heartbeat, carrying the same versioned
// GameInfo schema used by the Game family's SERVER_GAME_INFO.
type ServerUpdate struct {
	ProtocolVersion uint8
	Info            protocol.GameInfo
}

func (ServerUpdate) PacketName() string { return "PACKET_COORDINATOR_SERVER_UPDATE" }

// ClientListing is PACKET_COORDINATOR_CLIENT_LISTING, decode-only: a
// client requesting the current public-server listing.
type ClientListing struct {
	ProtocolVersion         uint8
	GameInfoVersion         uint8
	OpenTTDVersion          string
	NewGRFLookupTableCursor uint32 // only present when ProtocolVersion >= 4
}

func (ClientListing) PacketName() string { return "PACKET_COORDINATOR_CLIENT_LISTING" }

// GCListing is PACKET_COORDINATOR_GC_LISTING, encode-only: one page of
// the public-server listing (see encode.go for the encoder).
type GCListing struct {
	Servers         []ServerListing
	NewGRFLookup    *NewGRFLookupTable
	GameInfoVersion uint8
}

func (GCListing) PacketName() string { return "PACKET_COORDINATOR_GC_LISTING" }

// ClientConnect is PACKET_COORDINATOR_CLIENT_CONNECT, decode-only.
type ClientConnect struct {
	ProtocolVersion uint8
	InviteCode      string
}

func (ClientConnect) PacketName() string { return "PACKET_COORDINATOR_CLIENT_CONNECT" }

// GCConnecting is PACKET_COORDINATOR_GC_CONNECTING, encode-only.
type GCConnecting struct {
	Token      string
	InviteCode string
}

func (GCConnecting) PacketName() string { return "PACKET_COORDINATOR_GC_CONNECTING" }

// SercliConnectFailed is PACKET_COORDINATOR_SERCLI_CONNECT_FAILED, decode-only.
type SercliConnectFailed struct {
	ProtocolVersion uint8
	Token           string
	TrackingNumber  uint8
}

func (SercliConnectFailed) PacketName() string {
	return "PACKET_COORDINATOR_SERCLI_CONNECT_FAILED"
}

// GCConnectFailed is PACKET_COORDINATOR_GC_CONNECT_FAILED, encode-only.
type GCConnectFailed struct {
	Token string
}

func (GCConnectFailed) PacketName() string { return "PACKET_COORDINATOR_GC_CONNECT_FAILED" }

// ClientConnected is PACKET_COORDINATOR_CLIENT_CONNECTED, decode-only.
type ClientConnected struct {
	ProtocolVersion uint8
	Token           string
}

func (ClientConnected) PacketName() string { return "PACKET_COORDINATOR_CLIENT_CONNECTED" }

// GCDirectConnect is PACKET_COORDINATOR_GC_DIRECT_CONNECT, encode-only.
type GCDirectConnect struct {
	Token          string
	TrackingNumber uint8
	Hostname       string
	Port           uint16
}

func (GCDirectConnect) PacketName() string { return "PACKET_COORDINATOR_GC_DIRECT_CONNECT" }

// GCStunRequest is PACKET_COORDINATOR_GC_STUN_REQUEST, encode-only.
type GCStunRequest struct {
	Token string
}

func (GCStunRequest) PacketName() string { return "PACKET_COORDINATOR_GC_STUN_REQUEST" }

// SercliStunResult is PACKET_COORDINATOR_SERCLI_STUN_RESULT, decode-only.
type SercliStunResult struct {
	ProtocolVersion uint8
	Token           string
	InterfaceNumber uint8
	Result          uint8
}

func (SercliStunResult) PacketName() string { return "PACKET_COORDINATOR_SERCLI_STUN_RESULT" }

// GCStunConnect is PACKET_COORDINATOR_GC_STUN_CONNECT, encode-only.
type GCStunConnect struct {
	Token           string
	TrackingNumber  uint8
	InterfaceNumber uint8
	Hostname        string
	Port            uint16
}

func (GCStunConnect) PacketName() string { return "PACKET_COORDINATOR_GC_STUN_CONNECT" }

// GCNewGRFLookup is PACKET_COORDINATOR_GC_NEWGRF_LOOKUP, encode-only:
// one chunk of the shared NewGRF lookup table (see encode.go).
type GCNewGRFLookup struct {
	Cursor  uint32
	Entries []IndexedNewGRF
}

func (GCNewGRFLookup) PacketName() string { return "PACKET_COORDINATOR_GC_NEWGRF_LOOKUP" }

// GCTurnConnect is PACKET_COORDINATOR_GC_TURN_CONNECT, encode-only.
type GCTurnConnect struct {
	Token            string
	TrackingNumber   uint8
	Ticket           string
	ConnectionString string
}

func (GCTurnConnect) PacketName() string { return "PACKET_COORDINATOR_GC_TURN_CONNECT" }
