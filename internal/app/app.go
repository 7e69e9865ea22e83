// Package app hosts an example in a GLFW window: it owns the window, the
// renderer and input, and drives a loop.Loop until the window closes or the
// process is interrupted.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gl-basics/internal/camera"
	"gl-basics/internal/config"
	"gl-basics/internal/controls"
	"gl-basics/internal/graphics"
	"gl-basics/internal/input"
	"gl-basics/internal/loop"
	"gl-basics/internal/material"
	"gl-basics/internal/profiling"
	"gl-basics/internal/viewport"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

// Example is everything an example needs to draw into a window.
type Example struct {
	Config   config.File
	Window   *Window
	Input    *input.InputManager
	Renderer *graphics.Renderer
	Logger   *log.Logger

	reactor      *viewport.Reactor
	closed       chan struct{}
	profiling    bool
	profileTimer *profiling.FPSCounter
}

// Start initializes GLFW, opens the configured window and sets up the renderer.
// The caller must lock the main OS thread and call Close when done.
func Start(cfg config.File) (*Example, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Apply()

	background, err := material.ParseColor(cfg.Render.Background)
	if err != nil {
		return nil, fmt.Errorf("render background: %w", err)
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	win, err := OpenWindow(cfg.Window)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}

	r, err := graphics.NewRenderer(graphics.NewGLBackend(win.FramebufferSize))
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	r.SetClearColor(background)

	im := input.NewInputManager()
	im.Attach(win.Window)

	return &Example{
		Config:       cfg,
		Window:       win,
		Input:        im,
		Renderer:     r,
		Logger:       log.New(os.Stderr, "["+cfg.Window.Title+"] ", log.LstdFlags),
		profileTimer: profiling.NewFPSCounter(time.Second),
		closed:       make(chan struct{}),
	}, nil
}

// Fit sizes the renderer and cam to the window now and on every resize.
func (e *Example) Fit(cam camera.Camera) *viewport.Reactor {
	e.reactor = viewport.NewReactor(e.Window, cam, e.Renderer)
	e.Window.OnResize(e.reactor.Handle)
	e.reactor.Handle()
	return e.reactor
}

// NewLoop builds the render loop for state. Frame hooks given in opts run
// before the shared input handling, which clears per-frame input last.
func (e *Example) NewLoop(state loop.State, opts ...loop.Option) *loop.Loop {
	frames := loop.NewLimitedFrames(e.Window, config.GetFPSLimit)
	opts = append([]loop.Option{loop.WithLogger(e.Logger)}, opts...)
	opts = append(opts, loop.WithFrameHook(e.endFrame))
	return loop.New(state, e.Renderer, frames, opts...)
}

// DriveOrbit feeds pointer drags and scrolling to o after every frame.
func (e *Example) DriveOrbit(o *controls.Orbit) loop.Option {
	return loop.WithFrameHook(func(uint64) {
		dx, dy := e.Input.Drag()
		if dx != 0 || dy != 0 {
			_, h := e.Window.Size()
			o.Drag(dx, dy, float64(h))
		}
		if s := e.Input.Scroll(); s != 0 {
			o.Dolly(s)
		}
	})
}

func (e *Example) endFrame(frame uint64) {
	if e.Input.JustPressed(input.ActionQuit) {
		e.Window.SetShouldClose(true)
	}
	if e.Input.JustPressed(input.ActionToggleWireframe) {
		config.ToggleWireframeOverride()
	}
	if e.Input.JustPressed(input.ActionToggleProfiling) {
		e.profiling = !e.profiling
	}
	if _, due := e.profileTimer.Frame(time.Now()); due && e.profiling {
		e.Logger.Printf("Frame %d: renderer %v. Top tasks: %s", frame, profiling.SumWithPrefix("renderer."), profiling.TopN(5))
	}
	e.Input.PostUpdate()
}

// Run drives l until the window closes, the context ends or the process
// receives an interrupt.
func (e *Example) Run(ctx context.Context, l *loop.Loop) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	closer.Bind(shutdown(cancel, done, e.closed))

	err := l.Run(ctx)
	close(done)
	if err != nil {
		return err
	}
	e.Logger.Printf("stopped after %d frames", l.Frames())
	return nil
}

// shutdown returns the interrupt handler: it cancels the loop and holds the
// process until the loop has returned and the example has been closed.
func shutdown(cancel context.CancelFunc, loopDone, closed <-chan struct{}) func() {
	return func() {
		cancel()
		<-loopDone
		<-closed
	}
}

// Close releases GPU resources and the window.
func (e *Example) Close() {
	e.Renderer.Dispose()
	e.Window.Destroy()
	glfw.Terminate()
	close(e.closed)
}
