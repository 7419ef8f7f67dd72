package backpressure

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateStartsOpen(t *testing.T) {
	g := NewGate()
	assert.True(t, g.IsOpen())
	require.NoError(t, g.Wait(context.Background()))
}

func TestGateCloseBlocksWait(t *testing.T) {
	g := NewGate()
	g.Close()
	assert.False(t, g.IsOpen())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := g.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGateOpenReleasesWaiters(t *testing.T) {
	g := NewGate()
	g.Close()

	done := make(chan error, 1)
	go func() { done <- g.Wait(context.Background()) }()

	select {
	case <-done:
		t.Fatal("Wait returned before gate was opened")
	case <-time.After(10 * time.Millisecond):
	}

	g.Open()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Wait did not unblock after Open")
	}
}

func TestGateCloseAndOpenAreIdempotent(t *testing.T) {
	g := NewGate()
	g.Open()
	assert.True(t, g.IsOpen())

	g.Close()
	g.Close()
	assert.False(t, g.IsOpen())
}
