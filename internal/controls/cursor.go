package controls

// Cursor is a pointer position normalized to [-0.5, 0.5] on both axes,
// with Y pointing up.
type Cursor struct {
	X, Y float64
}

// NormalizeCursor maps window coordinates (origin top-left) to a Cursor.
func NormalizeCursor(x, y float64, width, height int) Cursor {
	if width <= 0 || height <= 0 {
		return Cursor{}
	}
	return Cursor{
		X: x/float64(width) - 0.5,
		Y: -(y/float64(height) - 0.5),
	}
}
