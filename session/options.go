package session

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/OpenTTD/openttd-net/backpressure"
	"github.com/OpenTTD/openttd-net/metrics"
)

// Option configures a Session at construction time. This is the
// library's configuration surface: constructor parameters, not a
// config file or struct (see SPEC_FULL.md).
type Option func(*Session)

// WithProxyProtocol enables PROXY protocol v1 preamble detection on
// the first bytes received.
func WithProxyProtocol(enabled bool) Option {
	return func(s *Session) { s.proxyEnabled = enabled }
}

// WithLogger attaches a logrus entry; fields for session id and
// remote address are added on top of it.
func WithLogger(entry *logrus.Entry) Option {
	return func(s *Session) { s.baseLog = entry }
}

// WithMetrics attaches a metrics.Registry that session lifecycle and
// decode events are recorded against.
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Session) { s.metrics = reg }
}

// WithTracer installs a hook invoked after every dispatched message
// and every completed send with the operation name and its duration:
// an externally-injectable observability point, not a concrete
// tracing backend.
func WithTracer(fn func(name string, d time.Duration)) Option {
	return func(s *Session) { s.tracer = fn }
}

// WithInboundQueueSize overrides the bounded inbound packet queue
// depth. Default is 64.
func WithInboundQueueSize(n int) Option {
	return func(s *Session) { s.queueSize = n }
}

// WithProber overrides the backpressure.Prober used by the session's
// watchdog. Default is backpressure.DefaultProber().
func WithProber(p backpressure.Prober) Option {
	return func(s *Session) { s.prober = p }
}
