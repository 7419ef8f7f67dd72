package backpressure

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeProber struct {
	notSent uint32
	ok      bool
}

func (f fakeProber) NotSentBytes(net.Conn) (uint32, bool, error) {
	return f.notSent, f.ok, nil
}

func TestWatchdogClosesGateAboveHighWatermark(t *testing.T) {
	gate := NewGate()
	w := NewWatchdog(nil, gate, fakeProber{notSent: HighWatermark + 1, ok: true}, nil)

	w.poll()

	assert.False(t, gate.IsOpen())
}

func TestWatchdogReopensGateAtLowWatermark(t *testing.T) {
	gate := NewGate()
	gate.Close()
	w := NewWatchdog(nil, gate, fakeProber{notSent: LowWatermark, ok: true}, nil)

	w.poll()

	assert.True(t, gate.IsOpen())
}

func TestWatchdogLeavesGateClosedBetweenWatermarks(t *testing.T) {
	gate := NewGate()
	gate.Close()
	w := NewWatchdog(nil, gate, fakeProber{notSent: LowWatermark + 1, ok: true}, nil)

	w.poll()

	assert.False(t, gate.IsOpen())
}

func TestWatchdogCallsOnEngagedWhenGateCloses(t *testing.T) {
	gate := NewGate()
	w := NewWatchdog(nil, gate, fakeProber{notSent: HighWatermark + 1, ok: true}, nil)
	engaged := 0
	w.OnEngaged = func() { engaged++ }

	w.poll()
	w.poll() // gate already closed, must not fire again

	assert.Equal(t, 1, engaged)
}

type failingProber struct{}

func (failingProber) NotSentBytes(net.Conn) (uint32, bool, error) {
	return 0, false, errors.New("getsockopt: bad file descriptor")
}

func TestWatchdogOpensGateWhenProbeFails(t *testing.T) {
	gate := NewGate()
	gate.Close()
	w := NewWatchdog(nil, gate, failingProber{}, nil)

	w.poll()

	assert.True(t, gate.IsOpen())
}

func TestWatchdogOpensGateWhenUnsupported(t *testing.T) {
	gate := NewGate()
	gate.Close()
	w := NewWatchdog(nil, gate, fakeProber{ok: false}, nil)

	w.poll()

	assert.True(t, gate.IsOpen())
}
