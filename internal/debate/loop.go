package debate

import (
	"context"
	"time"
)

// stepFunc advances a loop by one poll tick and reports how long to wait
// before the next tick, or that the loop is done.
type stepFunc func(ctx context.Context) (wait time.Duration, done bool)

// runLoop drives a step function until it reports done or the context is
// canceled. A step never fails the loop: iteration errors are handled
// inside the step and the loop simply polls again.
func runLoop(ctx context.Context, step stepFunc) error {
	for {
		wait, done := step(ctx)
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
