package camera

import (
	"gl-basics/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera defines the viewpoint and projection used to render a scene.
type Camera interface {
	scene.Node
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	Aspect() float32
	SetAspect(aspect float32)
	UpdateProjectionMatrix()
}

// Perspective simulates a real camera: distant objects appear smaller.
type Perspective struct {
	scene.Object

	FOV         float32 // vertical, degrees
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	projection mgl32.Mat4
}

// NewPerspective creates a perspective camera. fov is the vertical field of view in degrees.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	c := &Perspective{
		FOV:         fov,
		AspectRatio: aspect,
		NearPlane:   near,
		FarPlane:    far,
	}
	c.Init(c)
	c.MarkCamera()
	c.UpdateProjectionMatrix()
	return c
}

// Aspect returns the width/height ratio.
func (c *Perspective) Aspect() float32 { return c.AspectRatio }

// SetAspect sets the width/height ratio. Call UpdateProjectionMatrix afterwards.
func (c *Perspective) SetAspect(aspect float32) { c.AspectRatio = aspect }

// UpdateProjectionMatrix rebuilds the projection after a field change.
func (c *Perspective) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// ProjectionMatrix returns the projection built by the last UpdateProjectionMatrix.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 { return c.projection }

// ViewMatrix returns the inverse of the camera's world transform.
func (c *Perspective) ViewMatrix() mgl32.Mat4 { return viewMatrix(&c.Object) }

// Orthographic renders without perspective: size does not change with distance.
type Orthographic struct {
	scene.Object

	Left, Right, Top, Bottom float32
	NearPlane, FarPlane      float32
	Zoom                     float32

	// halfHeight is the vertical half-extent used when the frustum follows the aspect ratio.
	halfHeight float32
	projection mgl32.Mat4
}

// NewOrthographic creates an orthographic camera from explicit frustum planes.
func NewOrthographic(left, right, top, bottom, near, far float32) *Orthographic {
	c := &Orthographic{
		Left: left, Right: right, Top: top, Bottom: bottom,
		NearPlane: near, FarPlane: far,
		Zoom: 1,
	}
	c.Init(c)
	c.MarkCamera()
	c.UpdateProjectionMatrix()
	return c
}

// NewOrthographicAspect creates a camera spanning [-halfHeight*aspect, halfHeight*aspect]
// horizontally and [-halfHeight, halfHeight] vertically. SetAspect keeps that shape.
func NewOrthographicAspect(halfHeight, aspect, near, far float32) *Orthographic {
	c := NewOrthographic(-halfHeight*aspect, halfHeight*aspect, halfHeight, -halfHeight, near, far)
	c.halfHeight = halfHeight
	return c
}

// Aspect returns the width/height ratio of the frustum.
func (c *Orthographic) Aspect() float32 {
	h := c.Top - c.Bottom
	if h == 0 {
		return 0
	}
	return (c.Right - c.Left) / h
}

// SetAspect widens or narrows the frustum to match aspect. Cameras built with
// explicit planes scale horizontally around their centre.
func (c *Orthographic) SetAspect(aspect float32) {
	half := c.halfHeight
	if half == 0 {
		half = (c.Top - c.Bottom) / 2
	}
	cx := (c.Left + c.Right) / 2
	c.Left = cx - half*aspect
	c.Right = cx + half*aspect
}

// ZoomBy multiplies Zoom by scale and rebuilds the projection.
func (c *Orthographic) ZoomBy(scale float32) {
	if c.Zoom == 0 {
		c.Zoom = 1
	}
	c.Zoom *= scale
	c.UpdateProjectionMatrix()
}

// UpdateProjectionMatrix rebuilds the projection after a field change.
func (c *Orthographic) UpdateProjectionMatrix() {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	dx := (c.Right - c.Left) / (2 * zoom)
	dy := (c.Top - c.Bottom) / (2 * zoom)
	cx := (c.Right + c.Left) / 2
	cy := (c.Top + c.Bottom) / 2
	c.projection = mgl32.Ortho(cx-dx, cx+dx, cy-dy, cy+dy, c.NearPlane, c.FarPlane)
}

// ProjectionMatrix returns the projection built by the last UpdateProjectionMatrix.
func (c *Orthographic) ProjectionMatrix() mgl32.Mat4 { return c.projection }

// ViewMatrix returns the inverse of the camera's world transform.
func (c *Orthographic) ViewMatrix() mgl32.Mat4 { return viewMatrix(&c.Object) }

func viewMatrix(o *scene.Object) mgl32.Mat4 {
	return o.WorldMatrix().Inv()
}
