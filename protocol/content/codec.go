package content

import (
	"github.com/OpenTTD/openttd-net/protocol"
	"github.com/OpenTTD/openttd-net/wire"
)

// Decoder implements protocol.Decoder for the Content family.
type Decoder struct{}

func (Decoder) Name() string { return "content" }
func (Decoder) End() uint8   { return PacketEnd }

func (Decoder) Decode(tag uint8, body []byte) (protocol.Message, error) {
	switch tag {
	case PacketClientInfoList:
		return decodeClientInfoList(body)
	case PacketClientInfoID:
		return decodeClientInfoID(body)
	case PacketClientInfoExtID:
		return decodeClientInfoExtID(body)
	case PacketClientInfoExtIDMD5:
		return decodeClientInfoExtIDMD5(body)
	case PacketClientContent:
		return decodeClientContent(body)
	default:
		return nil, wire.NewPacketInvalidType(int(tag))
	}
}

func decodeClientInfoList(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	var msg ClientInfoList

	ct, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	if ContentType(ct) >= ContentTypeEnd {
		return nil, wire.NewPacketInvalidData("invalid ContentType: ", int(ct))
	}
	msg.ContentType = ContentType(ct)

	msg.OpenTTDVersion, err = r.Uint32()
	if err != nil {
		return nil, err
	}

	if err := r.Done(); err != nil {
		return nil, err
	}
	return msg, nil
}

// clientInfoOpts selects which fields receiveClientInfo reads per
// record: the four content-info list packets share a record layout
// that varies only in which fields are present.
type clientInfoOpts struct {
	hasContentID              bool
	hasContentTypeAndUniqueID bool
	hasMD5Sum                 bool
}

func receiveClientInfo(r *wire.Reader, count int, opts clientInfoOpts) ([]ContentInfo, error) {
	infos := make([]ContentInfo, 0, count)
	for i := 0; i < count; i++ {
		var info ContentInfo

		if opts.hasContentID {
			id, err := r.Uint32()
			if err != nil {
				return nil, err
			}
			info.ContentID = id
		}

		if opts.hasContentTypeAndUniqueID {
			ct, err := r.Uint8()
			if err != nil {
				return nil, err
			}
			if ContentType(ct) >= ContentTypeEnd {
				return nil, wire.NewPacketInvalidData("invalid ContentType: ", int(ct))
			}
			info.ContentType = ContentType(ct)

			rawID, err := r.Uint32()
			if err != nil {
				return nil, err
			}
			var wireBytes [4]byte
			wireBytes[0] = byte(rawID)
			wireBytes[1] = byte(rawID >> 8)
			wireBytes[2] = byte(rawID >> 16)
			wireBytes[3] = byte(rawID >> 24)
			if protocol.ContentTypeNeedsUniqueIDSwap(uint8(info.ContentType)) {
				info.UniqueID = protocol.SwapUniqueIDEndianness(wireBytes)
			} else {
				info.UniqueID = wireBytes
			}
		}

		if opts.hasMD5Sum {
			md5, err := r.ReadBytes(16)
			if err != nil {
				return nil, err
			}
			copy(info.MD5Sum[:], md5)
		}

		infos = append(infos, info)
	}
	return infos, nil
}

func decodeClientInfoID(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	count, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	infos, err := receiveClientInfo(r, int(count), clientInfoOpts{hasContentID: true})
	if err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return ClientInfoID{ContentInfos: infos}, nil
}

func decodeClientInfoExtID(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	count, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	infos, err := receiveClientInfo(r, int(count), clientInfoOpts{hasContentTypeAndUniqueID: true})
	if err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return ClientInfoExtID{ContentInfos: infos}, nil
}

func decodeClientInfoExtIDMD5(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	count, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	infos, err := receiveClientInfo(r, int(count), clientInfoOpts{hasContentTypeAndUniqueID: true, hasMD5Sum: true})
	if err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return ClientInfoExtIDMD5{ContentInfos: infos}, nil
}

func decodeClientContent(body []byte) (protocol.Message, error) {
	r := wire.NewReader(body)
	count, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	infos, err := receiveClientInfo(r, int(count), clientInfoOpts{hasContentID: true})
	if err != nil {
		return nil, err
	}
	if err := r.Done(); err != nil {
		return nil, err
	}
	return ClientContent{ContentInfos: infos}, nil
}
