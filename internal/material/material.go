package material

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

var nextID atomic.Uint32

// Color is a linear RGB triple in [0,1].
type Color mgl32.Vec3

// Hex converts 0xRRGGBB to a Color.
func Hex(hex uint32) Color {
	return Color{
		float32(hex>>16&0xff) / 255,
		float32(hex>>8&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// ParseColor accepts CSS color names ("red"), "#rrggbb" and "0xrrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return Color{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}, nil
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(digits) != 6 {
		return Color{}, fmt.Errorf("unknown color %q", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("unknown color %q: %w", s, err)
	}
	return Hex(uint32(v)), nil
}

// Vec3 returns the color as a vector for shader uniforms.
func (c Color) Vec3() mgl32.Vec3 { return mgl32.Vec3(c) }

// Basic is an unlit material that draws every fragment in one color.
type Basic struct {
	ID        uint32
	Color     Color
	Opacity   float32
	Wireframe bool
	// VertexColors multiplies Color by the geometry's color attribute.
	VertexColors bool
}

// NewBasic creates an opaque material of the given color.
func NewBasic(c Color) *Basic {
	return &Basic{
		ID:      nextID.Add(1),
		Color:   c,
		Opacity: 1,
	}
}

// Transparent reports whether the material needs blending.
func (m *Basic) Transparent() bool {
	return m.Opacity < 1
}
