package controls

import (
	"math"
	"testing"

	"gl-basics/internal/camera"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCamera() *camera.Perspective {
	c := camera.NewPerspective(45, 800.0/600.0, 0.1, 100)
	c.Position = mgl32.Vec3{0, 0, 2}
	c.LookAt(mgl32.Vec3{})
	return c
}

func TestOrbitWithoutDampingAppliesAtOnce(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)

	o.RotateLeft(math.Pi / 2)
	o.Update(0.016)

	assert.True(t, cam.Position.ApproxEqualThreshold(mgl32.Vec3{-2, 0, 0}, 1e-5), "got %v", cam.Position)
	assert.False(t, o.Moving())
	assert.InDelta(t, math.Pi/2, o.Travelled(), 1e-9)

	forward := cam.Quaternion().Rotate(mgl32.Vec3{0, 0, -1})
	assert.True(t, forward.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5), "camera faces the target, got %v", forward)
}

func TestOrbitDampingAdvancesMonotonically(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)
	o.EnableDamping = true

	o.RotateLeft(1)
	o.RotateUp(0.5)

	prevTravelled, prevElapsed := o.Travelled(), o.LastElapsed()
	for i, elapsed := range []float64{0.016, 0.033, 0.033, 0.020, 0.050, 0.5, 1.0, 5.0} {
		o.Update(elapsed)
		assert.GreaterOrEqual(t, o.Travelled(), prevTravelled, "step %d", i)
		assert.GreaterOrEqual(t, o.LastElapsed(), prevElapsed, "step %d", i)
		prevTravelled, prevElapsed = o.Travelled(), o.LastElapsed()
	}
	assert.InDelta(t, 1.5, o.Travelled(), 1e-3)
	assert.InDelta(t, float32(2), cam.Position.Len(), 1e-5, "orbit keeps its radius")
}

func TestOrbitDampingIgnoresStaleTime(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)
	o.EnableDamping = true
	o.RotateLeft(1)

	o.Update(0.5)
	before := o.Travelled()
	pos := cam.Position

	o.Update(0.25)
	assert.Equal(t, before, o.Travelled())
	assert.True(t, pos.ApproxEqualThreshold(cam.Position, 1e-5))
}

func TestOrbitDampingIsFrameRateIndependent(t *testing.T) {
	run := func(hz int) float64 {
		o := NewOrbit(newCamera())
		o.EnableDamping = true
		o.RotateLeft(1)
		for i := 1; i <= hz; i++ {
			o.Update(float64(i) / float64(hz))
		}
		return o.Travelled()
	}
	assert.InDelta(t, run(60), run(30), 1e-6)
	assert.InDelta(t, run(60), run(144), 1e-6)
}

func TestOrbitDampingMatchesReferenceFactor(t *testing.T) {
	o := NewOrbit(newCamera())
	o.EnableDamping = true
	o.RotateLeft(1)

	o.Update(referenceStep)
	assert.InDelta(t, 0.05, o.Travelled(), 1e-9)
	assert.True(t, o.Moving())
}

func TestOrbitDollyAndClamp(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)

	o.Dolly(1)
	o.Update(0.016)
	assert.InDelta(t, 2*0.95, cam.Position.Len(), 1e-5)

	o.MaxDistance = 3
	o.Dolly(-100)
	o.Update(0.032)
	assert.InDelta(t, 3, cam.Position.Len(), 1e-5)
}

func TestOrbitDollyZoomsOrthographic(t *testing.T) {
	cam := camera.NewOrthographicAspect(1, 1, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 0, 2}
	o := NewOrbit(newCamera())
	o.SetObject(cam)
	before := cam.ProjectionMatrix()

	o.Dolly(1)
	o.Update(0.016)
	assert.InDelta(t, 2, cam.Position.Len(), 1e-5)
	assert.InDelta(t, 1/0.95, cam.Zoom, 1e-5)
	assert.NotEqual(t, before, cam.ProjectionMatrix())

	o.Dolly(-1)
	o.Update(0.032)
	assert.InDelta(t, 1, cam.Zoom, 1e-5)
}

func TestOrbitPolarClamp(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)

	o.RotateUp(10)
	o.Update(0.016)
	require.False(t, math.IsNaN(float64(cam.Position[1])))
	assert.Greater(t, cam.Position[1], float32(1.99))
}

func TestOrbitDrag(t *testing.T) {
	o := NewOrbit(newCamera())
	o.Drag(300, 0, 600)
	o.Update(0.016)
	assert.InDelta(t, math.Pi, o.Travelled(), 1e-6)

	o.Drag(10, 10, 0)
	assert.False(t, o.Moving())
}

func TestOrbitTargetAtCameraIsNoop(t *testing.T) {
	cam := newCamera()
	cam.Position = mgl32.Vec3{}
	o := NewOrbit(cam)
	o.RotateLeft(1)
	o.Update(1)
	assert.Equal(t, mgl32.Vec3{}, cam.Position)
}

func TestNormalizeCursor(t *testing.T) {
	assert.Equal(t, Cursor{}, NormalizeCursor(400, 300, 800, 600))
	assert.Equal(t, Cursor{X: -0.5, Y: 0.5}, NormalizeCursor(0, 0, 800, 600))
	assert.Equal(t, Cursor{X: 0.5, Y: -0.5}, NormalizeCursor(800, 600, 800, 600))
	assert.Equal(t, Cursor{}, NormalizeCursor(10, 10, 0, 0))
}
