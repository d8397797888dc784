package scene

import (
	"github.com/philipparndt/gospatial/pkg/bounds"
	"github.com/philipparndt/gospatial/pkg/geometry"
)

// Facet is a model triangle together with its projection onto the screen
type Facet struct {
	Index    int
	Triangle geometry.Triangle
	Screen   [3]geometry.Vector2
	// Depth is the mean distance of the vertices in front of the eye
	Depth  float64
	extent geometry.Rect
}

func newFacet(index int, t geometry.Triangle, screen [3]geometry.Vector2, depth float64) *Facet {
	return &Facet{
		Index:    index,
		Triangle: t,
		Screen:   screen,
		Depth:    depth,
		extent:   geometry.RectFromPoints(screen[:]...),
	}
}

// Extent returns the screen rectangle around the projected triangle
func (f *Facet) Extent() geometry.Rect {
	return f.extent
}

// HitTest reports whether the projected triangle touches r. The rectangle is
// lifted into a slab around z = 0 so the 3D triangle test applies.
func (f *Facet) HitTest(r geometry.Rect, _ bool) bool {
	if geometry.DisjointRects(r, f.extent) {
		return false
	}
	return bounds.FromRect(r, -1, 1).Interferes(f.screenTriangle())
}

func (f *Facet) screenTriangle() bounds.Triangle {
	return bounds.Triangle{
		A: f.Screen[0].To3D(0),
		B: f.Screen[1].To3D(0),
		C: f.Screen[2].To3D(0),
	}
}

// ReferencedObject returns the triangle index, so two facets built for the
// same triangle count as the same item.
func (f *Facet) ReferencedObject() any {
	return f.Index
}
