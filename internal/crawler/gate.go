package crawler

import (
	"context"
	"time"
)

// politenessGate enforces a fixed minimum interval between outbound fetches.
// It applies across all fetches of a run, listing pages and articles alike,
// which keeps the crawler inside the unwritten rate limits of third-party
// sites. Not safe for concurrent use; the orchestrator is sequential.
type politenessGate struct {
	interval time.Duration
	last     time.Time
}

// newPolitenessGate creates a gate with the given minimum interval.
func newPolitenessGate(interval time.Duration) *politenessGate {
	return &politenessGate{interval: interval}
}

// Wait blocks until the interval since the previous fetch has elapsed, or the
// context is cancelled. The first call never blocks.
func (g *politenessGate) Wait(ctx context.Context) error {
	if g.interval > 0 && !g.last.IsZero() {
		if wait := g.interval - time.Since(g.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	g.last = time.Now()
	return ctx.Err()
}
