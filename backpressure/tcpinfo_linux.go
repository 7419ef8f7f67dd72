//go:build linux

package backpressure

import (
	"net"

	"github.com/higebu/netfd"
	"golang.org/x/sys/unix"
)

type linuxProber struct{}

// DefaultProber returns the platform Prober: on Linux, one backed by
// getsockopt(TCP_INFO).
func DefaultProber() Prober { return linuxProber{} }

func (linuxProber) NotSentBytes(conn net.Conn) (uint32, bool, error) {
	fd := int(netfd.GetFdFromConn(conn))
	if fd < 0 {
		return 0, false, nil
	}

	info, err := unix.GetsockoptTCPInfo(fd, unix.SOL_TCP, unix.TCP_INFO)
	if err != nil {
		return 0, false, err
	}
	return info.Notsent_bytes, true, nil
}
