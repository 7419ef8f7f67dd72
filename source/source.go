// Package source identifies the remote endpoint of an OpenTTD network
// session, independent of the transport carrying it.
package source

import (
	"fmt"
	"net"
	"net/netip"
)

// Source is the observable remote endpoint of a session: the raw
// transport address it was accepted on, plus the IP and port actually
// in effect (which, behind a PROXY-protocol-speaking load balancer,
// differ from the transport's own peer address).
type Source struct {
	// Protocol is an opaque handle to whatever owns this connection
	// (the session, in practice); callers use it for logging/identity,
	// never for its concrete type.
	Protocol any
	Addr     net.Addr
	IP       netip.Addr
	Port     uint16
}

// New builds a Source from a remote IP/port pair, normalizing an
// IPv4-mapped IPv6 address (e.g. "::ffff:127.0.0.1") down to its plain
// IPv4 form so that callers can branch on address family with a single
// Is4 check.
func New(protocol any, addr net.Addr, ip string, port uint16) (Source, error) {
	parsed, err := netip.ParseAddr(ip)
	if err != nil {
		return Source{}, fmt.Errorf("source: invalid ip %q: %w", ip, err)
	}
	if parsed.Is4In6() {
		parsed = parsed.Unmap()
	}
	return Source{Protocol: protocol, Addr: addr, IP: parsed, Port: port}, nil
}

// WithIP returns a copy of s with its IP and port replaced; used by the
// PROXY protocol preamble handler, which must swap in the original
// client address without disturbing the transport-level Addr.
func (s Source) WithIP(ip string, port uint16) (Source, error) {
	parsed, err := netip.ParseAddr(ip)
	if err != nil {
		return Source{}, fmt.Errorf("source: invalid ip %q: %w", ip, err)
	}
	if parsed.Is4In6() {
		parsed = parsed.Unmap()
	}
	s.IP = parsed
	s.Port = port
	return s, nil
}

func (s Source) String() string {
	return fmt.Sprintf("Source(ip=%s, port=%d, addr=%s)", s.IP, s.Port, s.Addr)
}
