package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockElapsedAndDelta(t *testing.T) {
	now := time.Unix(10, 0)
	c := NewClockWithSource(func() time.Time { return now })

	assert.Equal(t, 0.0, c.Elapsed(), "first reading starts the clock")

	now = now.Add(500 * time.Millisecond)
	assert.InDelta(t, 0.5, c.Elapsed(), 1e-9)

	now = now.Add(250 * time.Millisecond)
	assert.InDelta(t, 0.75, c.Elapsed(), 1e-9)
	assert.InDelta(t, 0.25, c.Delta(), 1e-9)

	now = now.Add(-time.Second)
	assert.InDelta(t, 0.75, c.Elapsed(), 1e-9)
	assert.Equal(t, 0.0, c.Delta())

	c.Start()
	assert.Equal(t, 0.0, c.Delta())
}

func TestLimiterUnlimited(t *testing.T) {
	l := NewLimiter(func() int { return 0 })
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestLimiterPaces(t *testing.T) {
	l := NewLimiter(func() int { return 200 })
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestLimiterHonoursContext(t *testing.T) {
	l := NewLimiter(func() int { return 1 })
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, l.Wait(ctx), context.DeadlineExceeded)
}

func TestManualFramesDrainAfterClose(t *testing.T) {
	f := NewManualFrames(2)
	f.Signal()
	f.Close()
	f.Close()
	f.Signal() // closed: returns without queueing

	require.NoError(t, f.Wait(context.Background()))
	assert.ErrorIs(t, f.Wait(context.Background()), ErrStopped)
}

func TestLimitedFramesForwardsStop(t *testing.T) {
	inner := NewManualFrames(1)
	inner.Close()
	f := NewLimitedFrames(inner, func() int { return 60 })
	assert.ErrorIs(t, f.Wait(context.Background()), ErrStopped)
}
