package loop

import (
	"context"
	"time"
)

// spinWindow is how long before the deadline the limiter stops sleeping and spins.
const spinWindow = 200 * time.Microsecond

// Limiter paces frames to a target rate with a hybrid sleep/spin wait.
type Limiter struct {
	limit func() int
	next  time.Time
}

// NewLimiter creates a limiter that reads its frames-per-second cap from
// limit on every wait. A cap <= 0 disables pacing.
func NewLimiter(limit func() int) *Limiter {
	return &Limiter{limit: limit}
}

// Wait blocks until the next frame is due or ctx is done.
func (f *Limiter) Wait(ctx context.Context) error {
	limit := f.limit()
	if limit <= 0 {
		f.next = time.Time{}
		return nil
	}

	target := time.Second / time.Duration(limit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			timer := time.NewTimer(remaining - spinWindow)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		// spin for the final few microseconds
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
	return nil
}
