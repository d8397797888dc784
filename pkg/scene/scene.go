// Package scene indexes the projected facets of a model for screen space
// queries and answers 3D box and segment queries against the same model.
package scene

import (
	"cmp"
	"math"
	"slices"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gospatial/pkg/bounds"
	"github.com/philipparndt/gospatial/pkg/geometry"
	"github.com/philipparndt/gospatial/pkg/quadtree"
	"github.com/philipparndt/gospatial/pkg/stl"
	"github.com/philipparndt/gospatial/pkg/viewer"
)

// Scene is a model seen through a viewport
type Scene struct {
	Model    *stl.Model
	Viewport *viewer.Viewport

	bounds bounds.Box
	mesh   bounds.Mesh
	facets []*Facet // by triangle index, nil when culled
	index  *quadtree.QuadTree[*Facet]
	culled int
}

// Hit is a picked facet
type Hit struct {
	Index int     `json:"index"`
	Depth float64 `json:"depth"`
}

// Build projects every triangle of model through vp and indexes the
// projections. Triangles with a vertex on or behind the eye plane are culled.
func Build(model *stl.Model, vp *viewer.Viewport, opts ...quadtree.Option) *Scene {
	opts = append([]quadtree.Option{
		quadtree.WithInitialRect(vp.ScreenRect()),
		quadtree.WithEquality(quadtree.ByReference),
	}, opts...)

	s := &Scene{
		Model:    model,
		Viewport: vp,
		bounds:   model.Bounds(),
		mesh:     model.Mesh(),
		facets:   make([]*Facet, len(model.Triangles)),
		index:    quadtree.New[*Facet](opts...),
	}

	for i, t := range model.Triangles {
		f, ok := s.project(i, t)
		if !ok {
			s.culled++
			continue
		}
		s.facets[i] = f
		s.index.Insert(f)
	}

	logs.WithTag("model", model.Name).
		WithTag("facets", len(model.Triangles)-s.culled).
		WithTag("culled", s.culled).
		WithTag("split_policy", s.index.Policy().String()).
		Debug("scene built")
	return s
}

func (s *Scene) project(i int, t geometry.Triangle) (*Facet, bool) {
	var screen [3]geometry.Vector2
	depth := 0.0
	for j, v := range t.Vertices() {
		p, d, ok := s.Viewport.Project(v)
		if !ok {
			return nil, false
		}
		screen[j] = p
		depth += d
	}
	return newFacet(i, t, screen, depth/3), true
}

// Bounds returns the model bounds
func (s *Scene) Bounds() bounds.Box {
	return s.bounds
}

// Culled returns the number of triangles left out of the screen index
func (s *Scene) Culled() int {
	return s.culled
}

// Facet returns the projected facet of triangle i, or nil when it was
// culled or hidden.
func (s *Scene) Facet(i int) *Facet {
	if i < 0 || i >= len(s.facets) {
		return nil
	}
	return s.facets[i]
}

// Hide removes triangle i from the screen index
func (s *Scene) Hide(i int) bool {
	f := s.Facet(i)
	if f == nil {
		return false
	}
	// a fresh facet for the same triangle matches by reference
	removed := s.index.Remove(newFacet(f.Index, f.Triangle, f.Screen, f.Depth))
	if removed {
		s.facets[i] = nil
	}
	return removed
}

// PickRect returns the facets visible through a screen rectangle, nearest
// first. Candidates come from the screen index and are confirmed in 3D
// against the pick frustum, which also drops facets outside the depth range.
func (s *Scene) PickRect(r geometry.Rect) []Hit {
	frustum := s.Viewport.PickFrustum(r)
	if !s.bounds.Interferes(frustum) {
		return nil
	}

	var hits []Hit
	unit := bounds.Unit()
	for _, f := range s.index.GetObjectsFromRect(r) {
		var tri [3]geometry.Vector3
		inFront := true
		for j, v := range f.Triangle.Vertices() {
			p, ok := frustum.ToUnit(v)
			if !ok {
				inFront = false
				break
			}
			tri[j] = p
		}
		if !inFront {
			continue
		}
		if unit.Interferes(bounds.Triangle{A: tri[0], B: tri[1], C: tri[2]}) {
			hits = append(hits, Hit{Index: f.Index, Depth: f.Depth})
		}
	}

	slices.SortFunc(hits, func(a, b Hit) int {
		return cmp.Or(cmp.Compare(a.Depth, b.Depth), cmp.Compare(a.Index, b.Index))
	})
	return hits
}

// PickPoint returns the facets under a screen position, nearest first
func (s *Scene) PickPoint(p geometry.Vector2) []Hit {
	return s.PickRect(geometry.NewRect(p.X, p.Y, p.X, p.Y))
}

// Ray returns the viewing ray through a screen position and whether it hits
// the model bounds.
func (s *Scene) Ray(p geometry.Vector2) (bounds.Ray, bool) {
	ray := s.Viewport.Unproject(p)
	return ray, s.bounds.Interferes(ray)
}

// BoxQuery returns the indices of the triangles that interfere with b
func (s *Scene) BoxQuery(b bounds.Box) []int {
	if !b.Interferes(s.mesh) {
		return nil
	}
	var res []int
	for i, t := range s.Model.Triangles {
		if b.Interferes(bounds.TriangleOf(t)) {
			res = append(res, i)
		}
	}
	return res
}

// RotateBox returns the box around b rotated by angle radians about axis
// through its center.
func RotateBox(b bounds.Box, axis geometry.Vector3, angle float64) bounds.Box {
	if b.IsEmpty() || axis.Length() == 0 {
		return b
	}
	c := b.Center().Vec3()
	m := mgl64.Translate3D(c.X(), c.Y(), c.Z()).
		Mul4(mgl64.HomogRotate3D(angle, axis.Normalize().Vec3())).
		Mul4(mgl64.Translate3D(-c.X(), -c.Y(), -c.Z()))
	b.Modify(m)
	return b
}

// circleProbe touches every rectangle within radius of a screen point
type circleProbe struct {
	center geometry.Vector2
	radius float64
}

func (c circleProbe) HitTest(r geometry.Rect, _ bool) bool {
	dx := math.Max(0, math.Max(r.MinX-c.center.X, c.center.X-r.MaxX))
	dy := math.Max(0, math.Max(r.MinY-c.center.Y, c.center.Y-r.MaxY))
	return math.Hypot(dx, dy) <= c.radius
}

// Near returns the indices of the facets whose projection comes within
// radius pixels of p, ascending.
func (s *Scene) Near(p geometry.Vector2, radius float64) []int {
	probe := circleProbe{center: p, radius: math.Max(radius, 0)}
	box := geometry.RectFromCenter(p, probe.radius, probe.radius)

	var res []int
	for _, f := range s.index.GetObjectsCloseTo(probe) {
		if f.HitTest(box, false) {
			res = append(res, f.Index)
		}
	}
	slices.Sort(res)
	return res
}

// ClipSegment clips the segment to the model bounds. ok is false when the
// segment misses them.
func (s *Scene) ClipSegment(start, end geometry.Vector3) (geometry.Vector3, geometry.Vector3, bool) {
	if !s.bounds.ClipLine(&start, &end) {
		return start, end, false
	}
	return start, end, true
}

// ClipPolyline returns the pieces of the polyline inside the model bounds
func (s *Scene) ClipPolyline(points ...geometry.Vector3) []geometry.Curve {
	if len(points) < 2 {
		return nil
	}
	return s.bounds.Clip(geometry.NewPolyline(points...))
}
