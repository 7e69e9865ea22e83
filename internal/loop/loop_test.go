package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"gl-basics/internal/camera"
	"gl-basics/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events   []string
	elapsed  []float64
	failOn   int
	failWith error
	renders  int
}

func (r *recorder) Update(elapsed float64) {
	r.events = append(r.events, "update")
	r.elapsed = append(r.elapsed, elapsed)
}

func (r *recorder) Render(s *scene.Scene, cam camera.Camera) error {
	r.renders++
	r.events = append(r.events, "render")
	if r.failOn != 0 && r.renders == r.failOn {
		return r.failWith
	}
	return nil
}

func newState(controls Controls) State {
	return State{
		Scene:    scene.New(),
		Camera:   camera.NewPerspective(75, 800.0/600.0, 0.1, 100),
		Controls: controls,
	}
}

func TestRunAlternatesUpdateAndRender(t *testing.T) {
	rec := &recorder{}
	frames := NewManualFrames(3)
	l := New(newState(rec), rec, frames, WithLogger(nil))

	for i := 0; i < 3; i++ {
		frames.Signal()
	}
	frames.Close()

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []string{"update", "render", "update", "render", "update", "render"}, rec.events)
	assert.Equal(t, uint64(3), l.Frames())
}

func TestRunWithoutControlsOnlyRenders(t *testing.T) {
	rec := &recorder{}
	frames := NewManualFrames(2)
	l := New(newState(nil), rec, frames, WithLogger(nil))

	frames.Signal()
	frames.Signal()
	frames.Close()

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, []string{"render", "render"}, rec.events)
}

func TestRenderErrorIsFatal(t *testing.T) {
	lost := errors.New("context lost")
	rec := &recorder{failOn: 2, failWith: lost}
	frames := NewManualFrames(5)
	l := New(newState(rec), rec, frames, WithLogger(nil))

	for i := 0; i < 5; i++ {
		frames.Signal()
	}
	frames.Close()

	err := l.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, lost)
	assert.Contains(t, err.Error(), "render frame 2")
	assert.Equal(t, uint64(1), l.Frames())
	assert.Equal(t, 2, rec.renders, "no retry after a failed render")
}

func TestStopFromFrameHook(t *testing.T) {
	rec := &recorder{}
	frames := NewManualFrames(10)
	var l *Loop
	l = New(newState(rec), rec, frames, WithLogger(nil), WithFrameHook(func(n uint64) {
		if n == 2 {
			l.Stop()
		}
	}))

	for i := 0; i < 10; i++ {
		frames.Signal()
	}

	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, uint64(2), l.Frames())
}

func TestContextCancelEndsLoop(t *testing.T) {
	rec := &recorder{}
	frames := NewManualFrames(1)
	l := New(newState(rec), rec, frames, WithLogger(nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, uint64(0), l.Frames())
}

type failingFrames struct{ err error }

func (f failingFrames) Wait(context.Context) error { return f.err }

func TestFrameSourceErrorIsReturned(t *testing.T) {
	broken := errors.New("swap failed")
	l := New(newState(nil), &recorder{}, failingFrames{err: broken}, WithLogger(nil))
	assert.ErrorIs(t, l.Run(context.Background()), broken)
}

func TestControlsSeeNonDecreasingElapsed(t *testing.T) {
	base := time.Unix(0, 0)
	readings := []time.Duration{0, 16 * time.Millisecond, 10 * time.Millisecond, 48 * time.Millisecond}
	i := 0
	clock := NewClockWithSource(func() time.Time {
		d := readings[min(i, len(readings)-1)]
		i++
		return base.Add(d)
	})

	rec := &recorder{}
	frames := NewManualFrames(3)
	l := New(newState(rec), rec, frames, WithLogger(nil), WithClock(clock))
	for j := 0; j < 3; j++ {
		frames.Signal()
	}
	frames.Close()

	require.NoError(t, l.Run(context.Background()))
	require.Len(t, rec.elapsed, 3)
	assert.InDelta(t, 0.016, rec.elapsed[0], 1e-9)
	assert.InDelta(t, 0.016, rec.elapsed[1], 1e-9, "clock never runs backwards")
	assert.InDelta(t, 0.048, rec.elapsed[2], 1e-9)
}

func TestSetCameraAppliesNextTick(t *testing.T) {
	var seen []camera.Camera
	r := rendererFunc(func(s *scene.Scene, cam camera.Camera) error {
		seen = append(seen, cam)
		return nil
	})
	frames := NewManualFrames(2)
	state := newState(nil)
	ortho := camera.NewOrthographicAspect(1, 1, 0.1, 100)

	var l *Loop
	l = New(state, r, frames, WithLogger(nil), WithFrameHook(func(uint64) { l.SetCamera(ortho) }))
	frames.Signal()
	frames.Signal()
	frames.Close()

	require.NoError(t, l.Run(context.Background()))
	require.Len(t, seen, 2)
	assert.Same(t, state.Camera, seen[0])
	assert.Same(t, ortho, seen[1])
}

type rendererFunc func(*scene.Scene, camera.Camera) error

func (f rendererFunc) Render(s *scene.Scene, cam camera.Camera) error { return f(s, cam) }
