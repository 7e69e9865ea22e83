package geometry

// NewBox builds an axis-aligned box centred on the origin, split into the
// given number of segments per side. Segment counts below one are raised to one.
// Each face gets its own vertices so normals and uvs stay per-face.
func NewBox(width, height, depth float32, widthSegments, heightSegments, depthSegments int) (*Buffer, error) {
	widthSegments = max(widthSegments, 1)
	heightSegments = max(heightSegments, 1)
	depthSegments = max(depthSegments, 1)

	b := &boxBuilder{}
	b.plane(2, 1, 0, -1, -1, depth, height, width, depthSegments, heightSegments)  // +x
	b.plane(2, 1, 0, 1, -1, depth, height, -width, depthSegments, heightSegments)  // -x
	b.plane(0, 2, 1, 1, 1, width, depth, height, widthSegments, depthSegments)     // +y
	b.plane(0, 2, 1, 1, -1, width, depth, -height, widthSegments, depthSegments)   // -y
	b.plane(0, 1, 2, 1, -1, width, height, depth, widthSegments, heightSegments)   // +z
	b.plane(0, 1, 2, -1, -1, width, height, -depth, widthSegments, heightSegments) // -z

	g := New()
	for _, a := range []struct {
		name     string
		data     []float32
		itemSize int
	}{
		{AttrPosition, b.positions, 3},
		{AttrNormal, b.normals, 3},
		{AttrUV, b.uvs, 2},
	} {
		attr, err := NewAttribute(a.data, a.itemSize)
		if err != nil {
			return nil, err
		}
		g.SetAttribute(a.name, attr)
	}
	if err := g.SetIndex(b.indices); err != nil {
		return nil, err
	}
	return g, nil
}

type boxBuilder struct {
	positions []float32
	normals   []float32
	uvs       []float32
	indices   []uint32
	vertices  uint32
}

// plane emits one face. u, v and w are axis indices; w is the face normal axis
// and depth its signed offset.
func (b *boxBuilder) plane(u, v, w int, udir, vdir, width, height, depth float32, gridX, gridY int) {
	segmentWidth := width / float32(gridX)
	segmentHeight := height / float32(gridY)

	widthHalf := width / 2
	heightHalf := height / 2
	depthHalf := depth / 2

	gridX1 := gridX + 1
	gridY1 := gridY + 1

	normal := float32(1)
	if depth < 0 {
		normal = -1
	}

	for iy := 0; iy < gridY1; iy++ {
		y := float32(iy)*segmentHeight - heightHalf
		for ix := 0; ix < gridX1; ix++ {
			x := float32(ix)*segmentWidth - widthHalf

			var p, n [3]float32
			p[u] = x * udir
			p[v] = y * vdir
			p[w] = depthHalf
			n[w] = normal

			b.positions = append(b.positions, p[0], p[1], p[2])
			b.normals = append(b.normals, n[0], n[1], n[2])
			b.uvs = append(b.uvs, float32(ix)/float32(gridX), 1-float32(iy)/float32(gridY))
		}
	}

	for iy := 0; iy < gridY; iy++ {
		for ix := 0; ix < gridX; ix++ {
			a := b.vertices + uint32(ix+gridX1*iy)
			bb := b.vertices + uint32(ix+gridX1*(iy+1))
			c := b.vertices + uint32(ix+1+gridX1*(iy+1))
			d := b.vertices + uint32(ix+1+gridX1*iy)

			b.indices = append(b.indices, a, bb, d, bb, c, d)
		}
	}

	b.vertices += uint32(gridX1 * gridY1)
}
