package geometry

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttribute(t *testing.T) {
	a, err := NewAttribute([]float32{0, 0, 0, 0, 1, 0, 1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Count())

	_, err = NewAttribute([]float32{0, 0, 0, 0}, 3)
	assert.True(t, errors.Is(err, ErrItemSize), "got %v", err)

	_, err = NewAttribute([]float32{0, 0, 0}, 0)
	assert.ErrorIs(t, err, ErrItemSize)

	var nilAttr *Attribute
	assert.Equal(t, 0, nilAttr.Count())
}

func TestBufferVersionAndIndex(t *testing.T) {
	g := New()
	assert.Equal(t, 0, g.VertexCount())
	v0 := g.Version()

	pos, err := NewAttribute([]float32{0, 0, 0, 0, 1, 0, 1, 0, 0}, 3)
	require.NoError(t, err)
	g.SetAttribute(AttrPosition, pos)
	assert.Greater(t, g.Version(), v0)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 3, g.DrawCount())

	err = g.SetIndex([]uint32{0, 1, 3})
	assert.ErrorIs(t, err, ErrIndexRange)
	assert.Nil(t, g.Index())

	require.NoError(t, g.SetIndex([]uint32{0, 1, 2, 2, 1, 0}))
	assert.Equal(t, 6, g.DrawCount())

	v1 := g.Version()
	g.DeleteAttribute("missing")
	assert.Equal(t, v1, g.Version())
	g.Touch()
	assert.Greater(t, g.Version(), v1)

	assert.Equal(t, []string{AttrPosition}, g.AttributeNames())
}

func TestBufferIDsAreUnique(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.UUID, b.UUID)
}

func TestComputeBoundingBox(t *testing.T) {
	g := New()
	assert.Equal(t, Box3{}, g.ComputeBoundingBox())

	pos, err := NewAttribute([]float32{0, 0, 0, 0, 1, 0, 1, 0, -2}, 3)
	require.NoError(t, err)
	g.SetAttribute(AttrPosition, pos)

	box := g.ComputeBoundingBox()
	assert.Equal(t, mgl32.Vec3{0, 0, -2}, box.Min)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, box.Max)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, -1}, box.Center())
}

func TestNewBox(t *testing.T) {
	g, err := NewBox(1, 1, 1, 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 24, g.VertexCount())
	assert.Len(t, g.Index(), 36)
	assert.Equal(t, 24, g.Attribute(AttrNormal).Count())
	assert.Equal(t, 24, g.Attribute(AttrUV).Count())

	box := g.ComputeBoundingBox()
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, box.Min)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, box.Max)

	// first face is +x: every normal points along +x
	normals := g.Attribute(AttrNormal).Array
	for i := 0; i < 4; i++ {
		assert.Equal(t, []float32{1, 0, 0}, normals[i*3:i*3+3])
	}
	positions := g.Attribute(AttrPosition).Array
	for i := 0; i < 4; i++ {
		assert.Equal(t, float32(0.5), positions[i*3])
	}
}

func TestNewBoxSegments(t *testing.T) {
	g, err := NewBox(1, 1, 1, 5, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 6*6*6, g.VertexCount())
	assert.Len(t, g.Index(), 6*5*5*6)

	for _, idx := range g.Index() {
		assert.Less(t, int(idx), g.VertexCount())
	}

	clamped, err := NewBox(2, 2, 2, 0, -1, 0)
	require.NoError(t, err)
	assert.Equal(t, 24, clamped.VertexCount())
}

func TestCheckAfterAttributeChanges(t *testing.T) {
	g, err := NewBox(1, 1, 1, 1, 1, 1)
	require.NoError(t, err)
	require.NoError(t, g.Check())
	require.NoError(t, New().Check())

	short, err := NewAttribute([]float32{0, 0, 0, 0, 1, 0, 1, 0, 0}, 3)
	require.NoError(t, err)

	g.SetAttribute(AttrPosition, short)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 36, g.DrawCount())
	assert.ErrorIs(t, g.Check(), ErrIndexRange)

	g.DeleteAttribute(AttrPosition)
	assert.ErrorIs(t, g.Check(), ErrNoPosition)

	tri := New()
	tri.SetAttribute(AttrPosition, short)
	colors, err := NewAttribute([]float32{1, 0, 0, 0, 1, 0}, 3)
	require.NoError(t, err)
	tri.SetAttribute(AttrColor, colors)
	assert.ErrorIs(t, tri.Check(), ErrAttributeCount)
}
