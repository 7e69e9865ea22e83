package graphics

import (
	"errors"
	"fmt"

	"gl-basics/internal/camera"
	"gl-basics/internal/config"
	"gl-basics/internal/geometry"
	"gl-basics/internal/material"
	"gl-basics/internal/profiling"
	"gl-basics/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
)

// evictAfter is how many frames an unused geometry stays on the GPU.
const evictAfter = 120

var (
	// ErrContext wraps failures reported by the GPU context after a frame.
	ErrContext = errors.New("graphics: context error")
	// ErrLayout is returned for geometry the renderer cannot draw.
	ErrLayout = errors.New("graphics: unsupported geometry layout")
	// ErrNothingToRender is returned when Render gets a nil scene or camera.
	ErrNothingToRender = errors.New("graphics: scene and camera are required")
)

// Primitive selects how vertices are assembled.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

// Handle identifies geometry uploaded to a Backend.
type Handle uint32

// DrawCall is everything a Backend needs to draw one uploaded geometry.
type DrawCall struct {
	Primitive    Primitive
	Model        mgl32.Mat4
	View         mgl32.Mat4
	Projection   mgl32.Mat4
	Color        mgl32.Vec3
	Opacity      float32
	VertexColors bool
	Wireframe    bool
}

// Backend is the GPU API the renderer drives.
type Backend interface {
	Setup() error
	// Resize sets the drawing buffer size in pixels.
	Resize(width, height int)
	BeginFrame(clear material.Color)
	Upload(g *geometry.Buffer) (Handle, error)
	Delete(h Handle)
	Draw(h Handle, d DrawCall)
	EndFrame()
	// Error reports errors raised since the last call.
	Error() error
	Dispose()
}

type cachedGeometry struct {
	handle   Handle
	version  uint64
	lastUsed uint64
}

// Renderer draws a scene graph through a Backend. It owns the output
// surface size and the GPU copies of every geometry it has drawn.
type Renderer struct {
	backend    Backend
	width      int
	height     int
	pixelRatio float64
	clearColor material.Color

	geometries *intmap.Map[uint32, *cachedGeometry]
	frame      uint64
}

// NewRenderer sets up backend and returns a renderer drawing through it.
func NewRenderer(backend Backend) (*Renderer, error) {
	if err := backend.Setup(); err != nil {
		return nil, fmt.Errorf("graphics setup: %w", err)
	}
	return &Renderer{
		backend:    backend,
		pixelRatio: 1,
		geometries: intmap.New[uint32, *cachedGeometry](64),
	}, nil
}

// SetSize sets the output size in window units.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.resize()
}

// SetPixelRatio sets how many buffer pixels back one window unit.
func (r *Renderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	r.pixelRatio = ratio
	r.resize()
}

// Size returns the output size in window units.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// PixelRatio returns the applied pixel ratio.
func (r *Renderer) PixelRatio() float64 { return r.pixelRatio }

// DrawingBufferSize returns the backing buffer size in pixels.
func (r *Renderer) DrawingBufferSize() (width, height int) {
	return int(float64(r.width) * r.pixelRatio), int(float64(r.height) * r.pixelRatio)
}

// SetClearColor sets the color used when the scene has no background.
func (r *Renderer) SetClearColor(c material.Color) { r.clearColor = c }

func (r *Renderer) resize() {
	w, h := r.DrawingBufferSize()
	r.backend.Resize(w, h)
}

// Render draws s from cam. Any error raised by the GPU during the frame is
// returned wrapped in ErrContext.
func (r *Renderer) Render(s *scene.Scene, cam camera.Camera) error {
	if s == nil || cam == nil {
		return ErrNothingToRender
	}
	r.frame++

	s.UpdateMatrixWorld()
	if cam.Object().Parent() == nil {
		cam.Object().UpdateMatrixWorld()
	}

	background := r.clearColor
	if s.Background != nil {
		background = *s.Background
	}

	base := DrawCall{
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(),
	}
	wireframe := config.GetWireframeOverride()

	r.backend.BeginFrame(background)

	var drawErr error
	s.TraverseVisible(func(n scene.Node) {
		if drawErr != nil {
			return
		}
		switch node := n.(type) {
		case *scene.Mesh:
			drawErr = r.draw(node.Object(), node.Geometry, node.Material, Triangles, wireframe, base)
		case *scene.Lines:
			drawErr = r.draw(node.Object(), node.Geometry, node.Material, Lines, false, base)
		}
	})

	r.backend.EndFrame()
	if drawErr != nil {
		return drawErr
	}

	r.evict()

	if err := r.backend.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrContext, err)
	}
	return nil
}

func (r *Renderer) draw(o *scene.Object, g *geometry.Buffer, m *material.Basic, p Primitive, forceWireframe bool, call DrawCall) error {
	if g == nil || m == nil || g.DrawCount() == 0 {
		return nil
	}
	pos := g.Attribute(geometry.AttrPosition)
	if pos == nil {
		return fmt.Errorf("%w: %s has no position attribute", ErrLayout, o.Name)
	}
	if pos.ItemSize != 3 {
		return fmt.Errorf("%w: %s position item size %d", ErrLayout, o.Name, pos.ItemSize)
	}
	if c := g.Attribute(geometry.AttrColor); c != nil && c.ItemSize != 3 {
		return fmt.Errorf("%w: %s color item size %d", ErrLayout, o.Name, c.ItemSize)
	}

	h, err := r.upload(g)
	if err != nil {
		return fmt.Errorf("%s: %w", o.Name, err)
	}

	call.Primitive = p
	call.Model = o.MatrixWorld()
	call.Color = m.Color.Vec3()
	call.Opacity = m.Opacity
	call.VertexColors = m.VertexColors && g.Attribute(geometry.AttrColor) != nil
	call.Wireframe = m.Wireframe || forceWireframe

	func() {
		defer profiling.Track("renderer.draw")()
		r.backend.Draw(h, call)
	}()
	return nil
}

// upload returns the GPU copy of g, uploading it on first use or after a change.
func (r *Renderer) upload(g *geometry.Buffer) (Handle, error) {
	// Buffer changes bump the version, so a cached copy has passed Check.
	cached, ok := r.geometries.Get(g.ID)
	if ok && cached.version == g.Version() {
		cached.lastUsed = r.frame
		return cached.handle, nil
	}
	if ok {
		r.backend.Delete(cached.handle)
		r.geometries.Del(g.ID)
	}
	if err := g.Check(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLayout, err)
	}

	defer profiling.Track("renderer.upload")()
	h, err := r.backend.Upload(g)
	if err != nil {
		return 0, fmt.Errorf("upload geometry %d: %w", g.ID, err)
	}
	r.geometries.Put(g.ID, &cachedGeometry{handle: h, version: g.Version(), lastUsed: r.frame})
	return h, nil
}

// evict releases geometries no frame has drawn for a while.
func (r *Renderer) evict() {
	if r.frame <= evictAfter {
		return
	}
	var stale []uint32
	r.geometries.ForEach(func(id uint32, c *cachedGeometry) bool {
		if r.frame-c.lastUsed > evictAfter {
			stale = append(stale, id)
		}
		return true
	})
	for _, id := range stale {
		if c, ok := r.geometries.Get(id); ok {
			r.backend.Delete(c.handle)
			r.geometries.Del(id)
		}
	}
}

// CachedGeometries returns how many geometries live on the GPU.
func (r *Renderer) CachedGeometries() int { return r.geometries.Len() }

// Dispose releases every GPU resource held by the renderer and its backend.
func (r *Renderer) Dispose() {
	r.geometries.ForEach(func(id uint32, c *cachedGeometry) bool {
		r.backend.Delete(c.handle)
		return true
	})
	r.geometries.Clear()
	r.backend.Dispose()
}
