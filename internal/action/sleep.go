package action

import (
	"context"
	"time"
)

// Sleeper suspends a run between remote actions.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper waits on a real timer and returns early with ctx.Err() when
// the context ends.
type TimerSleeper struct{}

// Sleep blocks for d or until ctx is done.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
