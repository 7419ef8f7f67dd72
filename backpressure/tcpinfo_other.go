//go:build !linux

package backpressure

import "net"

type noopProber struct{}

// DefaultProber returns the platform Prober: off Linux, TCP_INFO
// support is unavailable, so backpressure never engages.
func DefaultProber() Prober { return noopProber{} }

func (noopProber) NotSentBytes(net.Conn) (uint32, bool, error) {
	return 0, false, nil
}
