package inspect

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DelayGate remembers the body of the most recently accepted request and
// decides whether the current request must be throttled before forwarding.
//
// The slot never holds an empty body: an empty body maps to the empty
// sentinel, so two empty-bodied requests are never duplicates of each
// other. A duplicate pair resets the slot, so a third identical request in
// a row is not throttled again.
type DelayGate struct {
	delay time.Duration

	mu       sync.Mutex
	lastBody string // "" is the empty sentinel
}

// NewDelayGate creates a DelayGate with the given throttle duration.
func NewDelayGate(delay time.Duration) *DelayGate {
	return &DelayGate{delay: delay}
}

// Check compares body against the previously accepted body and updates the
// slot, both under one lock so concurrent requests cannot interleave their
// read-decide-update sequences. It returns true when the caller must wait
// before forwarding.
//
// Slot transitions: duplicate → sentinel, empty body → sentinel,
// otherwise → body.
func (g *DelayGate) Check(body string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	duplicate := g.lastBody != "" && body == g.lastBody

	switch {
	case duplicate, body == "":
		g.lastBody = ""
	default:
		g.lastBody = body
	}

	return duplicate
}

// Wait blocks for the configured throttle duration. The wait is aborted if
// ctx is canceled first; the cancellation is returned as an error so the
// caller can record the aborted delay.
func (g *DelayGate) Wait(ctx context.Context) error {
	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("duplicate delay interrupted: %w", ctx.Err())
	}
}

// Delay returns the configured throttle duration.
func (g *DelayGate) Delay() time.Duration {
	return g.delay
}
