package main

import (
	"context"
	"flag"
	"log"
	"runtime"

	"gl-basics/internal/app"
	"gl-basics/internal/camera"
	"gl-basics/internal/config"
	"gl-basics/internal/controls"
	"gl-basics/internal/geometry"
	"gl-basics/internal/input"
	"gl-basics/internal/loop"
	"gl-basics/internal/material"
	"gl-basics/internal/scene"
	"gl-basics/internal/viewport"
)

func init() {
	runtime.LockOSThread()
}

// rig holds the two cameras of the example and which one is live.
type rig struct {
	perspective  *camera.Perspective
	orthographic *camera.Orthographic
	ortho        bool
}

func (r *rig) active() camera.Camera {
	if r.ortho {
		return r.orthographic
	}
	return r.perspective
}

// toggle switches to the other camera, placed where the current one is.
func (r *rig) toggle() camera.Camera {
	from := r.active().Object()
	r.ortho = !r.ortho
	to := r.active().Object()
	to.Position = from.Position
	to.Rotation = from.Rotation
	return r.active()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	ortho := flag.Bool("ortho", false, "start with the orthographic camera")
	logCursor := flag.Bool("log-cursor", false, "log the normalized cursor position")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *configPath == "" {
		cfg.Window.Title = "cameras"
	}
	if *logCursor {
		cfg.Render.LogCursor = true
	}

	s, mesh, err := buildScene()
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	aspect := float32(cfg.Window.Width) / float32(cfg.Window.Height)
	cams := newRig(aspect, mesh)
	cams.ortho = *ortho
	s.Add(cams.perspective, cams.orthographic)

	orbit := controls.NewOrbit(cams.active())
	orbit.EnableDamping = true
	orbit.Target = mesh.Position

	ex, err := app.Start(cfg)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer ex.Close()
	reactor := ex.Fit(cams.active())

	var l *loop.Loop
	l = ex.NewLoop(
		loop.State{Scene: s, Camera: cams.active(), Controls: orbit},
		ex.DriveOrbit(orbit),
		loop.WithFrameHook(func(uint64) {
			if ex.Input.JustPressed(input.ActionSwitchCamera) {
				switchCamera(cams, orbit, reactor, l)
			}
			if config.GetLogCursor() {
				logCursor(ex)
			}
		}),
	)
	if err := ex.Run(context.Background(), l); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func buildScene() (*scene.Scene, *scene.Mesh, error) {
	g, err := geometry.NewBox(1, 1, 1, 5, 5, 5)
	if err != nil {
		return nil, nil, err
	}
	mesh := scene.NewMesh(g, material.NewBasic(material.Hex(0xff0000)))
	s := scene.New()
	s.Add(mesh)
	return s, mesh, nil
}

func newRig(aspect float32, target *scene.Mesh) *rig {
	r := &rig{
		perspective:  camera.NewPerspective(45, aspect, 0.1, 100),
		orthographic: camera.NewOrthographicAspect(1, aspect, 0.1, 100),
	}
	for _, c := range []camera.Camera{r.perspective, r.orthographic} {
		c.Object().Position[2] = 2
		c.Object().LookAt(target.Position)
	}
	return r
}

func switchCamera(r *rig, orbit *controls.Orbit, reactor *viewport.Reactor, l *loop.Loop) {
	cam := r.toggle()
	orbit.SetObject(cam)
	reactor.SetProjector(cam)
	l.SetCamera(cam)
}

func logCursor(ex *app.Example) {
	x, y, ok := ex.Input.Cursor()
	if !ok {
		return
	}
	w, h := ex.Window.Size()
	c := controls.NormalizeCursor(x, y, w, h)
	ex.Logger.Println(c.X, c.Y)
}
