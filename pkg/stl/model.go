package stl

import (
	"math"

	"github.com/philipparndt/gospatial/pkg/bounds"
	"github.com/philipparndt/gospatial/pkg/geometry"
)

// weldPrecision is the grid on which Mesh merges coincident vertices
const weldPrecision = 1e-9

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Bounds returns the tight box around all vertices, or bounds.Empty() for a
// model without triangles.
func (m *Model) Bounds() bounds.Box {
	b := bounds.Empty()
	for _, t := range m.Triangles {
		b.MinMax(t.V1)
		b.MinMax(t.V2)
		b.MinMax(t.V3)
	}
	return b
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

type weldKey struct{ x, y, z int64 }

func keyOf(v geometry.Vector3) weldKey {
	return weldKey{
		x: int64(math.Round(v.X / weldPrecision)),
		y: int64(math.Round(v.Y / weldPrecision)),
		z: int64(math.Round(v.Z / weldPrecision)),
	}
}

// Mesh converts the triangle soup into an indexed mesh. Vertices closer than
// weldPrecision share an index; triangle i of the mesh is triangle i of the
// model.
func (m *Model) Mesh() bounds.Mesh {
	index := make(map[weldKey]int, len(m.Triangles))
	mesh := bounds.Mesh{
		Vertices:  make([]geometry.Vector3, 0, len(m.Triangles)),
		Triangles: make([][3]int, 0, len(m.Triangles)),
	}
	for _, t := range m.Triangles {
		var tri [3]int
		for i, v := range t.Vertices() {
			k := keyOf(v)
			idx, ok := index[k]
			if !ok {
				idx = len(mesh.Vertices)
				index[k] = idx
				mesh.Vertices = append(mesh.Vertices, v)
			}
			tri[i] = idx
		}
		mesh.Triangles = append(mesh.Triangles, tri)
	}
	return mesh
}
