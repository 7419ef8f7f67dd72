// Package proxyproto recognizes the optional PROXY protocol v1
// preamble HAProxy (and compatible load balancers) prefix a TCP stream
// with, conveying the original client address through the proxy.
package proxyproto

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTTD/openttd-net/source"
)

const signature = "PROXY"

// Detect inspects the first bytes of a freshly-accepted connection for
// a "PROXY TCP4 <src-ip> <dst-ip> <src-port> <dst-port>\r\n" line. If
// found, it returns the remainder of data with the preamble and its
// trailing CRLF stripped, and a Source with ip/port replaced by the
// proxied client's. If data doesn't start with "PROXY", it is returned
// unchanged and ok is false. A malformed header (missing CRLF) also
// returns the data unchanged, plus an error describing why, so the
// caller can log a warning without closing the connection: a malformed
// preamble passes the raw bytes through rather than failing the session.
func Detect(current source.Source, data []byte) (out []byte, updated source.Source, ok bool, err error) {
	if !bytes.HasPrefix(data, []byte(signature)) {
		return data, current, false, nil
	}

	idx := bytes.Index(data, []byte{'\r', '\n'})
	if idx < 0 {
		return data, current, false, fmt.Errorf("proxy protocol header from %s:%d has no terminating CRLF", current.IP, current.Port)
	}

	header := string(data[:idx])
	fields := strings.Split(header, " ")
	// PROXY TCP4 <src-ip> <dst-ip> <src-port> <dst-port>
	if len(fields) != 6 {
		return data, current, false, fmt.Errorf("proxy protocol header from %s:%d has %d fields, want 6", current.IP, current.Port, len(fields))
	}

	port, convErr := strconv.ParseUint(fields[4], 10, 16)
	if convErr != nil {
		return data, current, false, fmt.Errorf("proxy protocol header from %s:%d has invalid source port %q: %w", current.IP, current.Port, fields[4], convErr)
	}

	updated, srcErr := current.WithIP(fields[2], uint16(port))
	if srcErr != nil {
		return data, current, false, fmt.Errorf("proxy protocol header from %s:%d: %w", current.IP, current.Port, srcErr)
	}

	return data[idx+2:], updated, true, nil
}
