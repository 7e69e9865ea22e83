package loop

import (
	"context"
	"sync"
)

// ManualFrames is a FrameSource fired by hand, one refresh per Signal.
type ManualFrames struct {
	ch   chan struct{}
	done chan struct{}
	once sync.Once
}

// NewManualFrames creates a source that queues up to buffer pending signals.
func NewManualFrames(buffer int) *ManualFrames {
	return &ManualFrames{
		ch:   make(chan struct{}, buffer),
		done: make(chan struct{}),
	}
}

// Signal fires one display refresh. It blocks while the queue is full and
// returns immediately once the source is closed.
func (f *ManualFrames) Signal() {
	select {
	case <-f.done:
		return
	default:
	}
	select {
	case f.ch <- struct{}{}:
	case <-f.done:
	}
}

// Close ends the source. Signals already queued are still delivered.
func (f *ManualFrames) Close() {
	f.once.Do(func() { close(f.done) })
}

// Wait implements FrameSource.
func (f *ManualFrames) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.ch:
		return nil
	case <-f.done:
		select {
		case <-f.ch:
			return nil
		default:
			return ErrStopped
		}
	}
}

// LimitedFrames paces another source with a Limiter.
type LimitedFrames struct {
	inner   FrameSource
	limiter *Limiter
}

// NewLimitedFrames wraps inner so refreshes arrive no faster than limit() per second.
func NewLimitedFrames(inner FrameSource, limit func() int) *LimitedFrames {
	return &LimitedFrames{inner: inner, limiter: NewLimiter(limit)}
}

// Wait implements FrameSource.
func (f *LimitedFrames) Wait(ctx context.Context) error {
	if err := f.inner.Wait(ctx); err != nil {
		return err
	}
	return f.limiter.Wait(ctx)
}
