package crawler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolitenessGateFirstCallDoesNotBlock(t *testing.T) {
	gate := newPolitenessGate(time.Second)

	start := time.Now()
	require.NoError(t, gate.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPolitenessGateEnforcesInterval(t *testing.T) {
	gate := newPolitenessGate(40 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, gate.Wait(ctx))

	start := time.Now()
	require.NoError(t, gate.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}

func TestPolitenessGateZeroInterval(t *testing.T) {
	gate := newPolitenessGate(0)
	ctx := context.Background()

	start := time.Now()
	for range 5 {
		require.NoError(t, gate.Wait(ctx))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPolitenessGateCancellation(t *testing.T) {
	gate := newPolitenessGate(time.Minute)
	require.NoError(t, gate.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, gate.Wait(ctx), context.Canceled)
}
