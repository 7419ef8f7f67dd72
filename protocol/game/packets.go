// Package game implements the Game protocol family: the packets a
// dedicated server and a client exchange directly, outside of the
// coordinator.
package game

import "github.com/OpenTTD/openttd-net/protocol"

// Packet type tags. Tags 0-5, 8-39 and 41-43 belong to packets this
// package does not implement.
const (
	PacketServerGameInfo uint8 = 6
	PacketClientGameInfo uint8 = 7
	PacketServerShutdown uint8 = 40
	PacketEnd            uint8 = 44
)

// ServerGameInfo is PACKET_SERVER_GAME_INFO, decode-only: a server
// announcing its current state to a directly-connected client.
type ServerGameInfo struct {
	protocol.GameInfo
}

func (ServerGameInfo) PacketName() string { return "PACKET_SERVER_GAME_INFO" }

// ClientGameInfo is PACKET_CLIENT_GAME_INFO, encode-only and empty-bodied.
type ClientGameInfo struct{}

func (ClientGameInfo) PacketName() string { return "PACKET_CLIENT_GAME_INFO" }

// ServerShutdown is PACKET_SERVER_SHUTDOWN, decode-only and empty-bodied.
type ServerShutdown struct{}

func (ServerShutdown) PacketName() string { return "PACKET_SERVER_SHUTDOWN" }
