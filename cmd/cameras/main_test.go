package main

import (
	"context"
	"testing"

	"gl-basics/internal/camera"
	"gl-basics/internal/controls"
	"gl-basics/internal/loop"
	"gl-basics/internal/scene"
	"gl-basics/internal/viewport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedEnv struct{ w, h int }

func (e fixedEnv) Size() (int, int)          { return e.w, e.h }
func (e fixedEnv) DevicePixelRatio() float64 { return 1 }

type nopSurface struct{}

func (nopSurface) SetSize(int, int)      {}
func (nopSurface) SetPixelRatio(float64) {}

type nopRenderer struct{ cams []camera.Camera }

func (r *nopRenderer) Render(_ *scene.Scene, cam camera.Camera) error {
	r.cams = append(r.cams, cam)
	return nil
}

func TestSwitchCamera(t *testing.T) {
	s, mesh, err := buildScene()
	require.NoError(t, err)
	cams := newRig(800.0/600.0, mesh)
	s.Add(cams.perspective, cams.orthographic)

	orbit := controls.NewOrbit(cams.active())
	reactor := viewport.NewReactor(fixedEnv{1000, 500}, cams.active(), nopSurface{})
	reactor.Handle()

	r := &nopRenderer{}
	frames := loop.NewManualFrames(2)
	l := loop.New(loop.State{Scene: s, Camera: cams.active(), Controls: orbit}, r, frames, loop.WithLogger(nil))

	cams.perspective.Position[0] = 0.5
	switchCamera(cams, orbit, reactor, l)

	assert.True(t, cams.ortho)
	assert.InDelta(t, 2, cams.orthographic.Aspect(), 1e-6)
	assert.InDelta(t, 0.5, cams.orthographic.Position[0], 1e-6)

	frames.Signal()
	frames.Close()
	require.NoError(t, l.Run(context.Background()))
	require.Len(t, r.cams, 1)
	assert.Same(t, cams.orthographic, r.cams[0])
}

func TestRigStartsLookingAtMesh(t *testing.T) {
	_, mesh, err := buildScene()
	require.NoError(t, err)
	cams := newRig(800.0/600.0, mesh)

	assert.InDelta(t, 2, cams.perspective.Position[2], 1e-6)
	assert.InDelta(t, 45, cams.perspective.FOV, 1e-6)
}
