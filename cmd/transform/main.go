package main

import (
	"context"
	"flag"
	"log"
	"math"
	"runtime"

	"gl-basics/internal/app"
	"gl-basics/internal/camera"
	"gl-basics/internal/config"
	"gl-basics/internal/geometry"
	"gl-basics/internal/loop"
	"gl-basics/internal/material"
	"gl-basics/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	showMesh := flag.Bool("mesh", false, "also draw the scaled and rotated box")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *configPath == "" {
		cfg.Window.Title = "transform objects"
		cfg.Window.Resizable = false
	}

	s, cam, err := buildScene(float32(cfg.Window.Width)/float32(cfg.Window.Height), *showMesh)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}

	ex, err := app.Start(cfg)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer ex.Close()
	ex.Fit(cam)

	l := ex.NewLoop(loop.State{Scene: s, Camera: cam})
	if err := ex.Run(context.Background(), l); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func redBox() (*scene.Mesh, error) {
	g, err := geometry.NewBox(1, 1, 1, 1, 1, 1)
	if err != nil {
		return nil, err
	}
	return scene.NewMesh(g, material.NewBasic(material.Hex(0xff0000))), nil
}

// buildScene lays out a stretched group of three cubes next to the axes.
func buildScene(aspect float32, showMesh bool) (*scene.Scene, *camera.Perspective, error) {
	s := scene.New()

	axes, err := scene.NewAxesHelper(2)
	if err != nil {
		return nil, nil, err
	}
	s.Add(axes)

	mesh, err := redBox()
	if err != nil {
		return nil, nil, err
	}
	mesh.Position = mgl32.Vec3{1.5, 1, -1}
	mesh.Scale = mgl32.Vec3{2, 0.25, 0.5}
	mesh.Rotation.X = math.Pi * 0.25
	mesh.Rotation.Y = math.Pi * 0.25
	mesh.Visible = showMesh
	s.Add(mesh)

	group := scene.NewGroup()
	group.Scale[1] = 2
	group.Rotation.Y = 0.2
	for _, x := range []float32{-1.5, 0, 1.5} {
		cube, err := redBox()
		if err != nil {
			return nil, nil, err
		}
		cube.Position[0] = x
		group.Add(cube)
	}
	s.Add(group)

	cam := camera.NewPerspective(75, aspect, 0.1, 2000)
	cam.Position[2] = 3
	cam.LookAt(mgl32.Vec3{0, -1, 0})
	s.Add(cam)

	return s, cam, nil
}
