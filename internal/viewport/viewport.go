package viewport

// MaxPixelRatio caps the device pixel ratio applied to the output surface,
// bounding fill-rate and buffer memory on high density displays.
const MaxPixelRatio = 2.0

// State is the size of the output surface in window units and the pixel
// ratio applied to its backing buffer.
type State struct {
	Width      int
	Height     int
	PixelRatio float64
}

// Aspect returns Width/Height, zero for an empty state.
func (s State) Aspect() float32 {
	if s.Height == 0 {
		return 0
	}
	return float32(s.Width) / float32(s.Height)
}

// Environment is read on every resize notification; notifications carry no payload.
type Environment interface {
	Size() (width, height int)
	DevicePixelRatio() float64
}

// Projector is the camera side of a resize.
type Projector interface {
	SetAspect(aspect float32)
	UpdateProjectionMatrix()
}

// Surface is the output side of a resize.
type Surface interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float64)
}

// ClampPixelRatio limits ratio to MaxPixelRatio. Non-positive ratios become 1.
func ClampPixelRatio(ratio float64) float64 {
	if ratio <= 0 {
		return 1
	}
	return min(ratio, MaxPixelRatio)
}

// Reactor keeps the viewport state, camera projection and surface buffers in step.
type Reactor struct {
	env     Environment
	camera  Projector
	surface Surface
	state   State
}

// NewReactor wires a reactor. Call Handle once to apply the initial size.
func NewReactor(env Environment, camera Projector, surface Surface) *Reactor {
	return &Reactor{env: env, camera: camera, surface: surface}
}

// Handle re-reads the environment and propagates the size to the camera and
// the surface. A zero-sized environment (a minimised window) leaves
// everything untouched. Calling it again with an unchanged environment is a no-op.
func (r *Reactor) Handle() {
	width, height := r.env.Size()
	if width <= 0 || height <= 0 {
		return
	}

	r.state = State{
		Width:      width,
		Height:     height,
		PixelRatio: ClampPixelRatio(r.env.DevicePixelRatio()),
	}
	r.apply()
}

// SetProjector switches the camera kept in step with the surface and applies
// the current state to it.
func (r *Reactor) SetProjector(camera Projector) {
	r.camera = camera
	if r.state.Height > 0 && camera != nil {
		camera.SetAspect(r.state.Aspect())
		camera.UpdateProjectionMatrix()
	}
}

// State returns the last applied viewport state.
func (r *Reactor) State() State { return r.state }

func (r *Reactor) apply() {
	if r.camera != nil {
		r.camera.SetAspect(r.state.Aspect())
		r.camera.UpdateProjectionMatrix()
	}
	if r.surface != nil {
		r.surface.SetSize(r.state.Width, r.state.Height)
		r.surface.SetPixelRatio(r.state.PixelRatio)
	}
}
