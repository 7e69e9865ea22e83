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
	"gl-basics/internal/loop"
	"gl-basics/internal/material"
	"gl-basics/internal/scene"
	"gl-basics/pkg/geomjson"
)

func init() {
	runtime.LockOSThread()
}

// trianglePositions is one triangle in the XY plane.
var trianglePositions = []float32{
	0, 0, 0,
	0, 1, 0,
	1, 0, 0,
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	geometryName := flag.String("geometry", "", "three.js JSON geometry to draw instead of the triangle: a file, or a name under -assets")
	assetsPath := flag.String("assets", "", "assets directory holding geometries/<name>.json")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *configPath == "" {
		cfg.Window.Title = "geometries"
	}

	g, err := loadGeometry(*assetsPath, *geometryName)
	if err != nil {
		log.Fatalf("geometry: %v", err)
	}

	s, cam := buildScene(g, float32(cfg.Window.Width)/float32(cfg.Window.Height))

	orbit := controls.NewOrbit(cam)
	orbit.EnableDamping = true

	ex, err := app.Start(cfg)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer ex.Close()
	ex.Fit(cam)

	l := ex.NewLoop(loop.State{Scene: s, Camera: cam, Controls: orbit}, ex.DriveOrbit(orbit))
	if err := ex.Run(context.Background(), l); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func loadGeometry(assetsPath, name string) (*geometry.Buffer, error) {
	switch {
	case name != "" && assetsPath != "":
		return geomjson.NewLoader(assetsPath).LoadGeometry(name)
	case name != "":
		return geomjson.LoadFile(name)
	}
	positions, err := geometry.NewAttribute(trianglePositions, 3)
	if err != nil {
		return nil, err
	}
	g := geometry.New()
	g.SetAttribute(geometry.AttrPosition, positions)
	return g, nil
}

func buildScene(g *geometry.Buffer, aspect float32) (*scene.Scene, *camera.Perspective) {
	m := material.NewBasic(material.Hex(0xff0000))
	m.Wireframe = true

	s := scene.New()
	s.Add(scene.NewMesh(g, m))

	cam := camera.NewPerspective(75, aspect, 0.1, 100)
	cam.Position[2] = 3
	s.Add(cam)
	return s, cam
}
