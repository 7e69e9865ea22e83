package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Well-known attribute names read by the renderer.
const (
	AttrPosition = "position"
	AttrNormal   = "normal"
	AttrUV       = "uv"
	AttrColor    = "color"
)

var (
	// ErrItemSize is returned when a vertex buffer does not split evenly into items.
	ErrItemSize = errors.New("geometry: array length is not a multiple of item size")
	// ErrIndexRange is returned when an index points past the last vertex.
	ErrIndexRange = errors.New("geometry: index out of range")
	// ErrAttributeCount is returned when an attribute holds fewer items than there are positions.
	ErrAttributeCount = errors.New("geometry: attribute shorter than position")
	// ErrNoPosition is returned for geometry without a position attribute.
	ErrNoPosition = errors.New("geometry: missing position attribute")
)

var nextID atomic.Uint32

// Attribute is a flat float buffer read ItemSize values at a time.
type Attribute struct {
	Array    []float32
	ItemSize int
}

// NewAttribute wraps array, reading itemSize values per vertex.
func NewAttribute(array []float32, itemSize int) (*Attribute, error) {
	if itemSize <= 0 {
		return nil, fmt.Errorf("%w: item size %d", ErrItemSize, itemSize)
	}
	if len(array)%itemSize != 0 {
		return nil, fmt.Errorf("%w: %d values, item size %d", ErrItemSize, len(array), itemSize)
	}
	return &Attribute{Array: array, ItemSize: itemSize}, nil
}

// Count returns the number of items in the attribute.
func (a *Attribute) Count() int {
	if a == nil || a.ItemSize == 0 {
		return 0
	}
	return len(a.Array) / a.ItemSize
}

// Buffer is a geometry made of named vertex attributes and an optional index.
type Buffer struct {
	ID   uint32
	UUID uuid.UUID

	attributes map[string]*Attribute
	index      []uint32
	version    uint64

	boundingBox *Box3
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max mgl32.Vec3
}

// New creates an empty geometry.
func New() *Buffer {
	return &Buffer{
		ID:         nextID.Add(1),
		UUID:       uuid.New(),
		attributes: make(map[string]*Attribute),
	}
}

// SetAttribute stores a under name, replacing any previous attribute.
func (g *Buffer) SetAttribute(name string, a *Attribute) {
	g.attributes[name] = a
	g.boundingBox = nil
	g.version++
}

// Attribute returns the attribute stored under name, or nil.
func (g *Buffer) Attribute(name string) *Attribute {
	return g.attributes[name]
}

// DeleteAttribute removes the attribute stored under name.
func (g *Buffer) DeleteAttribute(name string) {
	if _, ok := g.attributes[name]; !ok {
		return
	}
	delete(g.attributes, name)
	g.boundingBox = nil
	g.version++
}

// AttributeNames lists attribute names in sorted order.
func (g *Buffer) AttributeNames() []string {
	names := make([]string, 0, len(g.attributes))
	for name := range g.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetIndex sets the triangle index. Every entry must address an existing
// position; call it after the position attribute is set.
func (g *Buffer) SetIndex(index []uint32) error {
	n := uint32(g.VertexCount())
	for i, v := range index {
		if v >= n {
			return fmt.Errorf("%w: index[%d]=%d, %d vertices", ErrIndexRange, i, v, n)
		}
	}
	g.index = index
	g.version++
	return nil
}

// Check verifies the buffers still agree with each other: a position
// attribute exists, every other attribute covers all positions and the index
// addresses existing vertices. Attributes and index can be replaced
// independently, so callers drawing the geometry run it after every change.
func (g *Buffer) Check() error {
	pos := g.attributes[AttrPosition]
	if pos == nil {
		if len(g.attributes) == 0 && g.index == nil {
			return nil
		}
		return ErrNoPosition
	}
	n := pos.Count()
	for _, name := range g.AttributeNames() {
		if c := g.attributes[name].Count(); c < n {
			return fmt.Errorf("%w: %s has %d items, %d vertices", ErrAttributeCount, name, c, n)
		}
	}
	for i, v := range g.index {
		if v >= uint32(n) {
			return fmt.Errorf("%w: index[%d]=%d, %d vertices", ErrIndexRange, i, v, n)
		}
	}
	return nil
}

// Index returns the triangle index, nil for non-indexed geometry.
func (g *Buffer) Index() []uint32 { return g.index }

// VertexCount returns the number of positions.
func (g *Buffer) VertexCount() int {
	return g.attributes[AttrPosition].Count()
}

// DrawCount returns how many vertices a draw call covers.
func (g *Buffer) DrawCount() int {
	if g.index != nil {
		return len(g.index)
	}
	return g.VertexCount()
}

// Version increases on every structural change; renderers compare it to
// decide when to re-upload.
func (g *Buffer) Version() uint64 { return g.version }

// Touch marks the geometry dirty after its arrays were edited in place.
func (g *Buffer) Touch() {
	g.boundingBox = nil
	g.version++
}

// ComputeBoundingBox returns the bounds of the position attribute.
// Empty geometry yields a zero box.
func (g *Buffer) ComputeBoundingBox() Box3 {
	if g.boundingBox != nil {
		return *g.boundingBox
	}
	pos := g.attributes[AttrPosition]
	box := Box3{}
	if pos.Count() > 0 && pos.ItemSize >= 3 {
		inf := float32(math.Inf(1))
		box.Min = mgl32.Vec3{inf, inf, inf}
		box.Max = mgl32.Vec3{-inf, -inf, -inf}
		for i := 0; i < pos.Count(); i++ {
			o := i * pos.ItemSize
			for c := 0; c < 3; c++ {
				v := pos.Array[o+c]
				box.Min[c] = min(box.Min[c], v)
				box.Max[c] = max(box.Max[c], v)
			}
		}
	}
	g.boundingBox = &box
	return box
}

// Center returns the midpoint of the box.
func (b Box3) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}
