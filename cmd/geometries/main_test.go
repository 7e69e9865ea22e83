package main

import (
	"os"
	"path/filepath"
	"testing"

	"gl-basics/internal/geometry"
	"gl-basics/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTriangle(t *testing.T) {
	g, err := loadGeometry("", "")
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 3, g.Attribute(geometry.AttrPosition).ItemSize)

	s, cam := buildScene(g, 2)
	mesh, ok := s.Children()[0].(*scene.Mesh)
	require.True(t, ok)
	assert.True(t, mesh.Material.Wireframe)
	assert.InDelta(t, 2, cam.Aspect(), 1e-6)
}

func TestLoadGeometryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"BoxGeometry","parameters":{"width":1,"height":1,"depth":1}}`), 0o644))

	g, err := loadGeometry("", path)
	require.NoError(t, err)
	assert.Equal(t, 36, g.DrawCount())
}

func TestLoadGeometryFromAssets(t *testing.T) {
	assets := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "geometries"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "geometries", "quad.json"), []byte(`{"type":"BufferGeometry","data":{
		"attributes":{"position":{"itemSize":3,"array":[0,0,0, 1,0,0, 1,1,0, 0,1,0]}},
		"index":{"array":[0,1,2, 0,2,3]}}}`), 0o644))

	g, err := loadGeometry(assets, "quad")
	require.NoError(t, err)
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 6, g.DrawCount())

	_, err = loadGeometry(assets, "missing")
	assert.Error(t, err)
}
