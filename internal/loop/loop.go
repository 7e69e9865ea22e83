// Package loop drives one render per display refresh.
//
// Each invocation waits for a refresh signal, samples the clock, advances the
// camera controls and renders the scene. Invocations never overlap: the next
// wait only starts once the previous render has returned. The loop runs until
// its context is cancelled, Stop is called or the frame source reports
// ErrStopped. A render error ends the loop and is returned to the caller.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"gl-basics/internal/camera"
	"gl-basics/internal/profiling"
	"gl-basics/internal/scene"
)

// slowFrame is the update+render budget above which a frame is reported.
const slowFrame = 16 * time.Millisecond

// ErrStopped is returned by a FrameSource once the host is tearing down.
var ErrStopped = errors.New("loop: frame source stopped")

// Controls advance camera state, typically damping toward a target.
type Controls interface {
	Update(elapsed float64)
}

// Renderer draws scene as seen from cam.
type Renderer interface {
	Render(s *scene.Scene, cam camera.Camera) error
}

// FrameSource delivers display-refresh notifications. Wait blocks until the
// next refresh and returns ErrStopped when no more will come.
type FrameSource interface {
	Wait(ctx context.Context) error
}

// State is everything a tick touches. The loop holds it by value; the scene,
// camera and controls themselves are shared with the caller.
type State struct {
	Scene    *scene.Scene
	Camera   camera.Camera
	Controls Controls
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the loop's clock.
func WithClock(c *Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithFrameHook registers fn to run after every successful render with the
// number of frames drawn so far.
func WithFrameHook(fn func(frame uint64)) Option {
	return func(l *Loop) { l.hooks = append(l.hooks, fn) }
}

// WithLogger sets the logger used for FPS and slow frame reports. A nil
// logger silences them.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// Loop is the render loop scheduler.
type Loop struct {
	state    State
	renderer Renderer
	frames   FrameSource
	clock    *Clock
	hooks    []func(uint64)
	logger   *log.Logger
	fps      *profiling.FPSCounter

	drawn   uint64
	stopped atomic.Bool
}

// New creates a loop. Nothing runs until Run is called.
func New(state State, r Renderer, frames FrameSource, opts ...Option) *Loop {
	l := &Loop{
		state:    state,
		renderer: r,
		frames:   frames,
		clock:    NewClock(),
		logger:   log.Default(),
		fps:      profiling.NewFPSCounter(time.Second),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run starts the clock and ticks once per refresh until shutdown. It returns
// nil on a clean shutdown and the wrapped render error otherwise.
func (l *Loop) Run(ctx context.Context) error {
	l.clock.Start()
	for !l.stopped.Load() {
		if err := l.frames.Wait(ctx); err != nil {
			if errors.Is(err, ErrStopped) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wait for frame: %w", err)
		}
		if l.stopped.Load() {
			return nil
		}
		if err := l.tick(); err != nil {
			return err
		}
	}
	return nil
}

// Stop asks Run to return before the next tick. Safe from any goroutine.
func (l *Loop) Stop() { l.stopped.Store(true) }

// Frames returns how many frames have been rendered.
func (l *Loop) Frames() uint64 { return l.drawn }

// SetCamera switches the camera used from the next tick on.
func (l *Loop) SetCamera(cam camera.Camera) { l.state.Camera = cam }

func (l *Loop) tick() error {
	profiling.ResetFrame()
	start := time.Now()

	elapsed := l.clock.Elapsed()

	if l.state.Controls != nil {
		func() { defer profiling.Track("loop.Update")(); l.state.Controls.Update(elapsed) }()
	}

	var err error
	func() {
		defer profiling.Track("loop.Render")()
		err = l.renderer.Render(l.state.Scene, l.state.Camera)
	}()
	if err != nil {
		return fmt.Errorf("render frame %d: %w", l.drawn+1, err)
	}
	l.drawn++

	for _, hook := range l.hooks {
		hook(l.drawn)
	}

	if l.logger != nil {
		if d := time.Since(start); d > slowFrame {
			l.logger.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
		}
		if n, due := l.fps.Frame(time.Now()); due {
			l.logger.Printf("FPS: %d", n)
		}
	}
	return nil
}
