package content

import (
	"context"

	"github.com/OpenTTD/openttd-net/protocol"
	"github.com/OpenTTD/openttd-net/wire"
)

// contentFamilyMTU is the ceiling every content-family packet uses,
// regardless of client version.
const contentFamilyMTU = wire.SendTCPCompatMTU

func uniqueIDToWire(contentType ContentType, id [4]byte) uint32 {
	wireBytes := id
	if protocol.ContentTypeNeedsUniqueIDSwap(uint8(contentType)) {
		wireBytes = protocol.SwapUniqueIDEndianness(id)
	}
	return uint32(wireBytes[0]) | uint32(wireBytes[1])<<8 | uint32(wireBytes[2])<<16 | uint32(wireBytes[3])<<24
}

// EncodeServerInfo builds PACKET_CONTENT_SERVER_INFO.
func EncodeServerInfo(info ServerInfo) ([]byte, error) {
	b := wire.Init(PacketServerInfo)
	b.Uint8(uint8(info.ContentType))
	b.Uint32(info.ContentID)

	b.Uint32(info.Filesize)
	b.String(info.Name)
	b.String(info.Version)
	b.String(info.URL)
	b.String(info.Description)

	b.Uint32(uniqueIDToWire(info.ContentType, info.UniqueID))
	b.Bytes(info.MD5Sum[:])

	b.Uint8(uint8(len(info.Dependencies)))
	for _, dep := range info.Dependencies {
		b.Uint32(dep)
	}

	b.Uint8(uint8(len(info.Tags)))
	for _, tag := range info.Tags {
		b.String(tag)
	}

	return b.Finish(contentFamilyMTU)
}

// SendFunc delivers one finalized packet to the peer, in order. It is
// typically session.Session.Send bound to its context.
type SendFunc func(ctx context.Context, body []byte) error

// EncodeServerContent streams a file down as PACKET_CONTENT_SERVER_CONTENT:
// one metadata packet, then data packets of up to
// SEND_TCP_COMPAT_MTU-3 body bytes read from content.Stream, then a
// single freshly-initialized, genuinely empty packet marking
// end-of-file.
func EncodeServerContent(ctx context.Context, content ServerContent, send SendFunc) error {
	meta := wire.Init(PacketServerContent)
	meta.Uint8(uint8(content.ContentType))
	meta.Uint32(content.ContentID)
	meta.Uint32(content.Filesize)
	meta.String(content.Filename)
	metaBody, err := meta.Finish(contentFamilyMTU)
	if err != nil {
		return err
	}
	if err := send(ctx, metaBody); err != nil {
		return err
	}

	const chunkBudget = contentFamilyMTU - 3
	for !content.Stream.EOF() {
		chunk, err := content.Stream.Read(chunkBudget)
		if err != nil {
			return err
		}
		b := wire.Init(PacketServerContent)
		b.Bytes(chunk)
		body, err := b.Finish(contentFamilyMTU)
		if err != nil {
			return err
		}
		if err := send(ctx, body); err != nil {
			return err
		}
	}

	terminator := wire.Init(PacketServerContent)
	termBody, err := terminator.Finish(contentFamilyMTU)
	if err != nil {
		return err
	}
	return send(ctx, termBody)
}
