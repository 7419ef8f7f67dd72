package backpressure

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

// PollInterval is how often the Watchdog samples the transport.
const PollInterval = 5 * time.Second

// HighWatermark is the notsent-byte threshold above which the gate is
// considered backed up and new application writes should pause.
const HighWatermark = 1 << 20 // 1 MiB

// LowWatermark is the notsent-byte threshold at or below which a
// closed gate reopens.
const LowWatermark = HighWatermark / 4

// Prober samples a connection's outstanding-unsent-byte count. The
// Linux implementation reads TCP_INFO; other platforms report
// unsupported and the Watchdog degrades to "always open".
type Prober interface {
	NotSentBytes(conn net.Conn) (bytes uint32, ok bool, err error)
}

// Watchdog polls a connection's send buffer on PollInterval and drives
// a Gate open or closed accordingly. net.Conn exposes no write-buffer
// water-mark callback, so something has to ask the kernel directly.
type Watchdog struct {
	conn   net.Conn
	gate   *Gate
	prober Prober
	log    *logrus.Entry

	// OnEngaged, if set, is called every time the watchdog closes the
	// gate. Intended for metrics.Registry.BackpressureEngaged.
	OnEngaged func()
}

// NewWatchdog builds a Watchdog for conn, driving gate. If prober is
// nil, DefaultProber() is used.
func NewWatchdog(conn net.Conn, gate *Gate, prober Prober, log *logrus.Entry) *Watchdog {
	if prober == nil {
		prober = DefaultProber()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Watchdog{conn: conn, gate: gate, prober: prober, log: log}
}

// Run polls until ctx is cancelled. It is meant to be run in its own
// goroutine for the lifetime of a session.
func (w *Watchdog) Run(ctx context.Context) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watchdog) poll() {
	notSent, ok, err := w.prober.NotSentBytes(w.conn)
	if err != nil {
		// A probe failure means the socket is gone or going; reopen
		// the gate so a blocked send can run into the close and fail
		// with SocketClosed instead of waiting forever.
		w.log.WithError(err).Debug("backpressure: failed to probe socket send queue")
		w.gate.Open()
		return
	}
	if !ok {
		// Unsupported platform: never apply backpressure.
		w.gate.Open()
		return
	}

	switch {
	case notSent > HighWatermark && w.gate.IsOpen():
		w.log.WithField("notsent_bytes", notSent).Warn("backpressure: closing write gate, peer is not draining")
		w.gate.Close()
		if w.OnEngaged != nil {
			w.OnEngaged()
		}
	case notSent <= LowWatermark && !w.gate.IsOpen():
		w.log.WithField("notsent_bytes", notSent).Info("backpressure: reopening write gate")
		w.gate.Open()
	}
}
