package geomjson

// Document is a geometry serialized in the three.js JSON object format.
type Document struct {
	Metadata   Metadata    `json:"metadata"`
	UUID       string      `json:"uuid"`
	Type       string      `json:"type"`
	Name       string      `json:"name"`
	Data       *Data       `json:"data"`
	Parameters *Parameters `json:"parameters"`
}

type Metadata struct {
	Version   float64 `json:"version"`
	Type      string  `json:"type"`
	Generator string  `json:"generator"`
}

// Data holds the buffers of a BufferGeometry document.
type Data struct {
	Attributes map[string]Attribute `json:"attributes"`
	Index      *Index               `json:"index"`
}

type Attribute struct {
	ItemSize   int       `json:"itemSize"`
	Type       string    `json:"type"`
	Array      []float32 `json:"array"`
	Normalized bool      `json:"normalized"`
}

type Index struct {
	Type  string   `json:"type"`
	Array []uint32 `json:"array"`
}

// Parameters describes a parametric BoxGeometry document.
type Parameters struct {
	Width          float32 `json:"width"`
	Height         float32 `json:"height"`
	Depth          float32 `json:"depth"`
	WidthSegments  int     `json:"widthSegments"`
	HeightSegments int     `json:"heightSegments"`
	DepthSegments  int     `json:"depthSegments"`
}

const (
	TypeBufferGeometry = "BufferGeometry"
	TypeBoxGeometry    = "BoxGeometry"
)
