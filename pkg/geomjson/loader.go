// Package geomjson loads geometries saved in the three.js JSON format.
package geomjson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gl-basics/internal/geometry"

	"github.com/google/uuid"
)

// Loader reads geometry files below an assets directory and caches them by name.
type Loader struct {
	assetsPath    string
	geometryCache map[string]*geometry.Buffer
}

// NewLoader creates a loader for assetsPath/geometries.
func NewLoader(assetsPath string) *Loader {
	return &Loader{
		assetsPath:    assetsPath,
		geometryCache: make(map[string]*geometry.Buffer),
	}
}

// LoadGeometry reads assetsPath/geometries/<name>.json. Geometries are cached
// by name, so meshes loading the same name share one buffer.
func (l *Loader) LoadGeometry(name string) (*geometry.Buffer, error) {
	name = strings.TrimSuffix(name, ".json")
	if g, ok := l.geometryCache[name]; ok {
		return g, nil
	}

	path := filepath.Join(l.assetsPath, "geometries", name+".json")
	g, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	l.geometryCache[name] = g
	return g, nil
}

// LoadFile reads and decodes one geometry file without caching.
func LoadFile(path string) (*geometry.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read geometry file: %w", err)
	}
	g, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("geometry %s: %w", path, err)
	}
	return g, nil
}

// Decode builds a geometry from a JSON document.
func Decode(data []byte) (*geometry.Buffer, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not unmarshal geometry json: %w", err)
	}

	var (
		g   *geometry.Buffer
		err error
	)
	switch doc.Type {
	case TypeBufferGeometry, "":
		g, err = buildBuffer(doc.Data)
	case TypeBoxGeometry:
		g, err = buildBox(doc.Parameters)
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", doc.Type)
	}
	if err != nil {
		return nil, err
	}

	if doc.UUID != "" {
		id, err := uuid.Parse(doc.UUID)
		if err != nil {
			return nil, fmt.Errorf("geometry uuid: %w", err)
		}
		g.UUID = id
	}
	return g, nil
}

func buildBuffer(data *Data) (*geometry.Buffer, error) {
	if data == nil {
		return nil, fmt.Errorf("buffer geometry has no data")
	}
	if _, ok := data.Attributes[geometry.AttrPosition]; !ok {
		return nil, fmt.Errorf("buffer geometry has no %s attribute", geometry.AttrPosition)
	}

	g := geometry.New()
	for name, a := range data.Attributes {
		attr, err := geometry.NewAttribute(a.Array, a.ItemSize)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		g.SetAttribute(name, attr)
	}
	if data.Index != nil {
		if err := g.SetIndex(data.Index.Array); err != nil {
			return nil, err
		}
	}
	if err := g.Check(); err != nil {
		return nil, err
	}
	return g, nil
}

func buildBox(p *Parameters) (*geometry.Buffer, error) {
	params := Parameters{Width: 1, Height: 1, Depth: 1}
	if p != nil {
		params = *p
	}
	return geometry.NewBox(params.Width, params.Height, params.Depth,
		params.WidthSegments, params.HeightSegments, params.DepthSegments)
}
