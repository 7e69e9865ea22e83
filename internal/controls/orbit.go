package controls

import (
	"math"

	"gl-basics/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// referenceStep is the frame time DampingFactor is expressed against.
	referenceStep = 1.0 / 60
	// polarEpsilon keeps the camera off the poles where LookAt degenerates.
	polarEpsilon = 1e-6
	// settleThreshold is the pending rotation, in radians, treated as done.
	settleThreshold = 1e-7
)

// zoomer is a camera whose projection, not its distance, sets the apparent size.
type zoomer interface {
	ZoomBy(scale float32)
}

// Orbit moves a camera on a sphere around Target, always looking at it.
// Input accumulates as pending rotation which Update applies, all at once
// or, with damping, a fraction per frame.
type Orbit struct {
	object *scene.Object
	zoom   zoomer

	Target        mgl32.Vec3
	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64
	ZoomSpeed     float64

	MinDistance   float64
	MaxDistance   float64
	MinPolarAngle float64
	MaxPolarAngle float64

	pendingTheta float64
	pendingPhi   float64
	pendingScale float64

	lastElapsed float64
	travelled   float64
}

// NewOrbit creates controls for the camera node. Call Update every frame.
func NewOrbit(camera scene.Node) *Orbit {
	z, _ := camera.(zoomer)
	return &Orbit{
		object:        camera.Object(),
		zoom:          z,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MaxDistance:   math.Inf(1),
		MaxPolarAngle: math.Pi,
		pendingScale:  1,
	}
}

// SetObject retargets the controls to another camera.
func (o *Orbit) SetObject(camera scene.Node) {
	o.object = camera.Object()
	o.zoom, _ = camera.(zoomer)
}

// RotateLeft queues a rotation of angle radians around the target's vertical axis.
func (o *Orbit) RotateLeft(angle float64) {
	o.pendingTheta -= angle * o.RotateSpeed
}

// RotateUp queues a rotation of angle radians toward the pole.
func (o *Orbit) RotateUp(angle float64) {
	o.pendingPhi -= angle * o.RotateSpeed
}

// Drag converts a pointer movement of dx, dy pixels on a viewport of the given
// height into a rotation. A drag across the full height turns a full circle.
func (o *Orbit) Drag(dx, dy, height float64) {
	if height <= 0 {
		return
	}
	o.RotateLeft(2 * math.Pi * dx / height)
	o.RotateUp(2 * math.Pi * dy / height)
}

// Dolly moves the camera toward the target for positive steps and away for
// negative ones. Orthographic cameras zoom in and out instead.
func (o *Orbit) Dolly(steps float64) {
	o.pendingScale *= math.Pow(0.95, steps*o.ZoomSpeed)
}

// Moving reports whether queued rotation remains to be applied.
func (o *Orbit) Moving() bool {
	return math.Abs(o.pendingTheta) > settleThreshold || math.Abs(o.pendingPhi) > settleThreshold
}

// Travelled returns the total rotation applied so far, in radians. It never decreases.
func (o *Orbit) Travelled() float64 { return o.travelled }

// LastElapsed returns the largest elapsed time passed to Update.
func (o *Orbit) LastElapsed() float64 { return o.lastElapsed }

// Update applies pending input for the time elapsed since the previous call and
// re-aims the camera. Elapsed times earlier than a previous call count as no time.
func (o *Orbit) Update(elapsed float64) {
	dt := elapsed - o.lastElapsed
	if dt < 0 {
		dt = 0
	}
	o.lastElapsed += dt

	offset := o.object.Position.Sub(o.Target)
	radius := float64(offset.Len())
	if radius == 0 {
		return
	}
	theta := math.Atan2(float64(offset[0]), float64(offset[2]))
	phi := math.Acos(clamp(float64(offset[1])/radius, -1, 1))

	fraction := 1.0
	if o.EnableDamping {
		fraction = 1 - math.Pow(1-o.DampingFactor, dt/referenceStep)
	}
	dTheta := o.pendingTheta * fraction
	dPhi := o.pendingPhi * fraction

	theta += dTheta
	newPhi := clamp(phi+dPhi,
		math.Max(o.MinPolarAngle, polarEpsilon),
		math.Min(o.MaxPolarAngle, math.Pi-polarEpsilon))
	dPhi = newPhi - phi
	phi = newPhi

	if o.zoom != nil {
		if o.pendingScale != 1 {
			o.zoom.ZoomBy(float32(1 / o.pendingScale))
		}
	} else {
		radius *= o.pendingScale
	}
	radius = clamp(radius, o.MinDistance, o.MaxDistance)
	o.pendingScale = 1

	o.travelled += math.Abs(dTheta) + math.Abs(dPhi)
	if o.EnableDamping {
		o.pendingTheta -= dTheta
		o.pendingPhi -= o.pendingPhi * fraction
		if !o.Moving() {
			o.pendingTheta, o.pendingPhi = 0, 0
		}
	} else {
		o.pendingTheta, o.pendingPhi = 0, 0
	}

	sinPhi := math.Sin(phi)
	o.object.Position = o.Target.Add(mgl32.Vec3{
		float32(radius * sinPhi * math.Sin(theta)),
		float32(radius * math.Cos(phi)),
		float32(radius * sinPhi * math.Cos(theta)),
	})
	o.object.LookAt(o.Target)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
