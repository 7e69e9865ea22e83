package graphics

import (
	_ "embed"
	"errors"
	"fmt"

	"gl-basics/internal/geometry"
	"gl-basics/internal/material"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/kamstrup/intmap"
)

//go:embed shaders/basic.vert
var basicVertSource string

//go:embed shaders/basic.frag
var basicFragSource string

// glContextLost is GL_CONTEXT_LOST from KHR_robustness; gl 4.1 bindings lack it.
const glContextLost = 0x0507

// ErrContextLost is reported once the driver has dropped the context.
var ErrContextLost = errors.New("context lost")

type glGeometry struct {
	vao, vbo, cbo, ebo uint32
	count              int32
	indexed            bool
}

// GLBackend draws with OpenGL 4.1 core. The context must be current on the
// calling goroutine.
type GLBackend struct {
	shader *Shader

	// framebufferSize reports the window's default framebuffer in pixels.
	framebufferSize func() (int, int)
	width, height   int

	// offscreen target used when the drawing buffer differs from the window's.
	fbo, colorRB, depthRB uint32
	fboWidth, fboHeight   int

	geometries *intmap.Map[Handle, *glGeometry]
	next       Handle
}

// NewGLBackend returns a backend targeting the current context.
func NewGLBackend(framebufferSize func() (int, int)) *GLBackend {
	return &GLBackend{
		framebufferSize: framebufferSize,
		geometries:      intmap.New[Handle, *glGeometry](64),
	}
}

// Setup implements Backend.
func (b *GLBackend) Setup() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}
	shader, err := NewShader(basicVertSource, basicFragSource)
	if err != nil {
		return err
	}
	b.shader = shader

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return b.Error()
}

// Resize implements Backend.
func (b *GLBackend) Resize(width, height int) {
	b.width, b.height = width, height
}

func (b *GLBackend) offscreen() bool {
	fw, fh := b.framebufferSize()
	return b.width > 0 && b.height > 0 && (fw != b.width || fh != b.height)
}

func (b *GLBackend) ensureFramebuffer() {
	if b.fbo != 0 && b.fboWidth == b.width && b.fboHeight == b.height {
		return
	}
	b.deleteFramebuffer()

	gl.GenFramebuffers(1, &b.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)

	gl.GenRenderbuffers(1, &b.colorRB)
	gl.BindRenderbuffer(gl.RENDERBUFFER, b.colorRB)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(b.width), int32(b.height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, b.colorRB)

	gl.GenRenderbuffers(1, &b.depthRB)
	gl.BindRenderbuffer(gl.RENDERBUFFER, b.depthRB)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(b.width), int32(b.height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.depthRB)

	b.fboWidth, b.fboHeight = b.width, b.height
}

func (b *GLBackend) deleteFramebuffer() {
	if b.fbo == 0 {
		return
	}
	gl.DeleteFramebuffers(1, &b.fbo)
	gl.DeleteRenderbuffers(1, &b.colorRB)
	gl.DeleteRenderbuffers(1, &b.depthRB)
	b.fbo, b.colorRB, b.depthRB = 0, 0, 0
}

// BeginFrame implements Backend.
func (b *GLBackend) BeginFrame(clear material.Color) {
	if b.offscreen() {
		b.ensureFramebuffer()
		gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	}
	gl.Viewport(0, 0, int32(b.width), int32(b.height))

	c := clear.Vec3()
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	b.shader.Use()
}

// Upload implements Backend.
func (b *GLBackend) Upload(g *geometry.Buffer) (Handle, error) {
	pos := g.Attribute(geometry.AttrPosition)
	if pos == nil {
		return 0, fmt.Errorf("%w: missing position", ErrLayout)
	}

	geo := &glGeometry{count: int32(g.DrawCount())}
	gl.GenVertexArrays(1, &geo.vao)
	gl.BindVertexArray(geo.vao)

	gl.GenBuffers(1, &geo.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, geo.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(pos.Array)*4, gl.Ptr(pos.Array), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)

	if c := g.Attribute(geometry.AttrColor); c != nil {
		gl.GenBuffers(1, &geo.cbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, geo.cbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(c.Array)*4, gl.Ptr(c.Array), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 3*4, 0)
	} else {
		gl.VertexAttrib3f(1, 1, 1, 1)
	}

	if index := g.Index(); index != nil {
		geo.indexed = true
		gl.GenBuffers(1, &geo.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, geo.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(index)*4, gl.Ptr(index), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	b.next++
	b.geometries.Put(b.next, geo)
	return b.next, nil
}

// Delete implements Backend.
func (b *GLBackend) Delete(h Handle) {
	geo, ok := b.geometries.Get(h)
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &geo.vao)
	gl.DeleteBuffers(1, &geo.vbo)
	if geo.cbo != 0 {
		gl.DeleteBuffers(1, &geo.cbo)
	}
	if geo.ebo != 0 {
		gl.DeleteBuffers(1, &geo.ebo)
	}
	b.geometries.Del(h)
}

// Draw implements Backend.
func (b *GLBackend) Draw(h Handle, d DrawCall) {
	geo, ok := b.geometries.Get(h)
	if !ok {
		return
	}

	b.shader.SetMatrix4("model", &d.Model[0])
	b.shader.SetMatrix4("view", &d.View[0])
	b.shader.SetMatrix4("proj", &d.Projection[0])
	b.shader.SetVector3("color", d.Color[0], d.Color[1], d.Color[2])
	b.shader.SetFloat("opacity", d.Opacity)
	b.shader.SetBool("vertexColors", d.VertexColors)

	mode := uint32(gl.TRIANGLES)
	if d.Primitive == Lines {
		mode = gl.LINES
	}
	if d.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	gl.BindVertexArray(geo.vao)
	if geo.indexed {
		gl.DrawElementsWithOffset(mode, geo.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(mode, 0, geo.count)
	}
	gl.BindVertexArray(0)
}

// EndFrame implements Backend.
func (b *GLBackend) EndFrame() {
	if b.fbo == 0 || !b.offscreen() {
		return
	}
	fw, fh := b.framebufferSize()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, int32(b.width), int32(b.height), 0, 0, int32(fw), int32(fh), gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Error implements Backend. It drains the GL error queue.
func (b *GLBackend) Error() error {
	var errs []error
	for i := 0; i < 16; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if code == glContextLost {
			return ErrContextLost
		}
		errs = append(errs, fmt.Errorf("gl error 0x%04x", code))
	}
	return errors.Join(errs...)
}

// Dispose implements Backend.
func (b *GLBackend) Dispose() {
	var handles []Handle
	b.geometries.ForEach(func(h Handle, _ *glGeometry) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		b.Delete(h)
	}
	b.deleteFramebuffer()
	if b.shader != nil {
		b.shader.Delete()
	}
}
