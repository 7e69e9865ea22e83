package scene

import (
	"gl-basics/internal/geometry"
	"gl-basics/internal/material"
)

// Scene is the root of a graph handed to the renderer.
type Scene struct {
	Object
	// Background is the clear color; nil keeps the renderer's default.
	Background *material.Color
}

// New creates an empty scene.
func New() *Scene {
	s := &Scene{}
	s.Init(s)
	return s
}

// Group is a transform-only node used to move several children together.
type Group struct {
	Object
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	g := &Group{}
	g.Init(g)
	return g
}

// Mesh draws a geometry as filled triangles (or edges for wireframe materials).
type Mesh struct {
	Object
	Geometry *geometry.Buffer
	Material *material.Basic
}

// NewMesh creates a mesh. The geometry must have a position attribute with
// three components per vertex.
func NewMesh(g *geometry.Buffer, m *material.Basic) *Mesh {
	mesh := &Mesh{Geometry: g, Material: m}
	mesh.Init(mesh)
	return mesh
}

// Lines draws consecutive position pairs as separate segments.
type Lines struct {
	Object
	Geometry *geometry.Buffer
	Material *material.Basic
}

// NewLines creates a line segment node.
func NewLines(g *geometry.Buffer, m *material.Basic) *Lines {
	l := &Lines{Geometry: g, Material: m}
	l.Init(l)
	return l
}

// NewAxesHelper draws the X (red), Y (green) and Z (blue) axes from the
// origin, each size units long.
func NewAxesHelper(size float32) (*Lines, error) {
	positions, err := geometry.NewAttribute([]float32{
		0, 0, 0, size, 0, 0,
		0, 0, 0, 0, size, 0,
		0, 0, 0, 0, 0, size,
	}, 3)
	if err != nil {
		return nil, err
	}
	colors, err := geometry.NewAttribute([]float32{
		1, 0, 0, 1, 0.6, 0,
		0, 1, 0, 0.6, 1, 0,
		0, 0, 1, 0, 0.6, 1,
	}, 3)
	if err != nil {
		return nil, err
	}

	g := geometry.New()
	g.SetAttribute(geometry.AttrPosition, positions)
	g.SetAttribute(geometry.AttrColor, colors)

	m := material.NewBasic(material.Hex(0xffffff))
	m.VertexColors = true

	l := NewLines(g, m)
	l.Name = "AxesHelper"
	return l, nil
}
