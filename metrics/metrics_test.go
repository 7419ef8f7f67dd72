package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegistryCollectsCounters(t *testing.T) {
	r := New()
	r.SessionOpened()
	r.SessionOpened()
	r.SessionClosed()
	r.PacketDecoded("game")
	r.PacketDecoded("game")
	r.DecodeError("PacketTooShort")
	r.BackpressureEngaged()

	require.Equal(t, 5, testutil.CollectAndCount(r))
}
