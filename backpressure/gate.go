// Package backpressure implements the session controller's
// writable-gate and the watchdog that detects a peer which silently
// vanishes while the gate is closed. Go's net.Conn exposes no
// write-buffer water-mark callback, so this package polls kernel
// TCP_INFO instead (see Watchdog).
package backpressure

import (
	"context"
	"sync"
)

// Gate is the session's writable-gate: initially open, closed when the
// connection is considered backed-up, reopened when it drains or is
// observed closing.
type Gate struct {
	mu     sync.Mutex
	isOpen bool
	ch     chan struct{} // closed exactly when isOpen is true
}

// NewGate returns a Gate that starts open.
func NewGate() *Gate {
	ch := make(chan struct{})
	close(ch)
	return &Gate{isOpen: true, ch: ch}
}

// Wait blocks until the gate is open or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	g.mu.Lock()
	ch := g.ch
	g.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close closes the gate, blocking future Wait calls until Open.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.isOpen {
		return
	}
	g.isOpen = false
	g.ch = make(chan struct{})
}

// Open opens the gate, releasing any waiters.
func (g *Gate) Open() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.isOpen {
		return
	}
	g.isOpen = true
	close(g.ch)
}

// IsOpen reports whether the gate is currently open, without blocking.
func (g *Gate) IsOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isOpen
}
