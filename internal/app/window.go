package app

import (
	"context"
	"fmt"

	"gl-basics/internal/config"
	"gl-basics/internal/loop"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window with a current OpenGL 4.1 core context. It is the
// viewport environment and the refresh source of an example.
type Window struct {
	*glfw.Window
	presented bool
}

// OpenWindow creates the window described by cfg and makes its context current.
// glfw must already be initialized.
func OpenWindow(cfg config.Window) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	resizable := glfw.False
	if cfg.Resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	// Vsync paces presentation; the FPS limiter handles the rest.
	if config.GetVSync() {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	return &Window{Window: win}, nil
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (width, height int) {
	return w.GetSize()
}

// DevicePixelRatio returns framebuffer pixels per screen coordinate.
func (w *Window) DevicePixelRatio() float64 {
	fw, _ := w.GetFramebufferSize()
	ww, _ := w.GetSize()
	return pixelRatio(fw, ww)
}

// FramebufferSize returns the default framebuffer size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.GetFramebufferSize()
}

// OnResize calls fn whenever the window or its framebuffer changes size.
func (w *Window) OnResize(fn func()) {
	w.SetSizeCallback(func(_ *glfw.Window, _, _ int) { fn() })
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) { fn() })
}

// Wait presents the previous frame and processes pending events. It returns
// loop.ErrStopped once the window has been asked to close.
func (w *Window) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.presented {
		w.SwapBuffers()
	}
	w.presented = true

	glfw.PollEvents()
	if w.ShouldClose() {
		return loop.ErrStopped
	}
	return ctx.Err()
}

func pixelRatio(framebufferWidth, windowWidth int) float64 {
	if framebufferWidth <= 0 || windowWidth <= 0 {
		return 1
	}
	return float64(framebufferWidth) / float64(windowWidth)
}
