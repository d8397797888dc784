package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gospatial/pkg/bounds"
	"github.com/philipparndt/gospatial/pkg/geometry"
	"github.com/philipparndt/gospatial/pkg/stl"
)

// boundsPrecision is the tolerance used to decide whether a vertex touches
// the model bounds, relative to the bounds diagonal.
const boundsPrecision = 1e-9

// Report summarises an STL model
type Report struct {
	Name          string           `json:"name,omitempty"`
	Bounds        bounds.Box       `json:"bounds"`
	Dimensions    geometry.Vector3 `json:"dimensions"`
	Diagonal      float64          `json:"diagonal"`
	BoxVolume     float64          `json:"box_volume"`
	SurfaceArea   float64          `json:"surface_area"`
	TriangleCount int              `json:"triangles"`
	VertexCount   int              `json:"vertices"`
	Degenerate    int              `json:"degenerate_triangles"`
	OnBoundsCount int              `json:"vertices_on_bounds"`
	MinEdgeLength float64          `json:"min_edge"`
	MaxEdgeLength float64          `json:"max_edge"`
	AvgEdgeLength float64          `json:"avg_edge"`
}

// AnalyzeModel computes the report of a model. An empty model yields empty
// bounds and zero edge statistics.
func AnalyzeModel(model *stl.Model) *Report {
	b := model.Bounds()
	r := &Report{
		Name:          model.Name,
		Bounds:        b,
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
	}
	if b.IsEmpty() {
		return r
	}
	r.Dimensions = b.Extent()
	r.Diagonal = b.DiagonalLength()
	r.BoxVolume = b.Volume()

	mesh := model.Mesh()
	r.VertexCount = len(mesh.Vertices)
	precision := math.Max(r.Diagonal, 1) * boundsPrecision
	for _, v := range mesh.Vertices {
		if b.IsOnBounds(v, precision) {
			r.OnBoundsCount++
		}
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	total := 0.0
	edges := 0
	for _, t := range model.Triangles {
		if t.Area() == 0 {
			r.Degenerate++
		}
		for _, l := range t.EdgeLengths() {
			minLength = math.Min(minLength, l)
			maxLength = math.Max(maxLength, l)
			total += l
			edges++
		}
	}
	r.MinEdgeLength = minLength
	r.MaxEdgeLength = maxLength
	r.AvgEdgeLength = total / float64(edges)
	return r
}

// FindNearestVertex finds the vertex in the model nearest to a given point.
// ok is false for a model without triangles.
func FindNearestVertex(model *stl.Model, point geometry.Vector3) (nearest geometry.Vector3, distance float64, ok bool) {
	distance = math.MaxFloat64
	for _, t := range model.Triangles {
		if v, d := t.ClosestVertex(point); d < distance {
			nearest, distance, ok = v, d, true
		}
	}
	return nearest, distance, ok
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
