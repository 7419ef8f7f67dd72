// Package metrics exposes session and protocol counters as a
// prometheus.Collector, following the Describe/Collect-over-a-guarded-map
// shape used throughout the pack's connection-metrics exporters.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry counts session lifecycle and codec events. It is safe for
// concurrent use by multiple sessions.
type Registry struct {
	mu sync.Mutex

	sessionsOpened uint64
	sessionsClosed uint64

	packetsDecoded map[string]uint64 // keyed by protocol family
	decodeErrors   map[string]uint64 // keyed by error subtype (e.g. "PacketInvalidSize")
	backpressure   uint64            // gate-closed events

	sessionsOpenedDesc *prometheus.Desc
	sessionsClosedDesc *prometheus.Desc
	packetsDecodedDesc *prometheus.Desc
	decodeErrorsDesc   *prometheus.Desc
	backpressureDesc   *prometheus.Desc
}

// New returns an empty Registry. Register it with a prometheus.Registerer
// to expose it.
func New() *Registry {
	return &Registry{
		packetsDecoded: make(map[string]uint64),
		decodeErrors:   make(map[string]uint64),

		sessionsOpenedDesc: prometheus.NewDesc("openttdnet_sessions_opened_total", "Sessions accepted or dialed.", nil, nil),
		sessionsClosedDesc: prometheus.NewDesc("openttdnet_sessions_closed_total", "Sessions that reached a terminal close.", nil, nil),
		packetsDecodedDesc: prometheus.NewDesc("openttdnet_packets_decoded_total", "Packets successfully decoded, by protocol family.", []string{"family"}, nil),
		decodeErrorsDesc:   prometheus.NewDesc("openttdnet_decode_errors_total", "Packets rejected during decode, by error kind.", []string{"kind"}, nil),
		backpressureDesc:   prometheus.NewDesc("openttdnet_backpressure_engaged_total", "Times the write gate was closed due to a slow peer.", nil, nil),
	}
}

// SessionOpened records a new session.
func (r *Registry) SessionOpened() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionsOpened++
}

// SessionClosed records a session reaching a terminal close.
func (r *Registry) SessionClosed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionsClosed++
}

// PacketDecoded records one successfully decoded packet for family.
func (r *Registry) PacketDecoded(family string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packetsDecoded[family]++
}

// DecodeError records one rejected packet, keyed by the concrete
// wire.PacketInvalid subtype name (e.g. "PacketTooShort").
func (r *Registry) DecodeError(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decodeErrors[kind]++
}

// BackpressureEngaged records the write gate closing.
func (r *Registry) BackpressureEngaged() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backpressure++
}

// Describe implements prometheus.Collector.
func (r *Registry) Describe(descs chan<- *prometheus.Desc) {
	descs <- r.sessionsOpenedDesc
	descs <- r.sessionsClosedDesc
	descs <- r.packetsDecodedDesc
	descs <- r.decodeErrorsDesc
	descs <- r.backpressureDesc
}

// Collect implements prometheus.Collector.
func (r *Registry) Collect(metrics chan<- prometheus.Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()

	metrics <- prometheus.MustNewConstMetric(r.sessionsOpenedDesc, prometheus.CounterValue, float64(r.sessionsOpened))
	metrics <- prometheus.MustNewConstMetric(r.sessionsClosedDesc, prometheus.CounterValue, float64(r.sessionsClosed))
	metrics <- prometheus.MustNewConstMetric(r.backpressureDesc, prometheus.CounterValue, float64(r.backpressure))

	for family, count := range r.packetsDecoded {
		metrics <- prometheus.MustNewConstMetric(r.packetsDecodedDesc, prometheus.CounterValue, float64(count), family)
	}
	for kind, count := range r.decodeErrors {
		metrics <- prometheus.MustNewConstMetric(r.decodeErrorsDesc, prometheus.CounterValue, float64(count), kind)
	}
}
