package bounds

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gospatial/pkg/geometry"
)

// Shape is one of the primitives a Box can be tested against: Segment,
// Polyline, Ray, Triangle, Tetrahedron, Parallelepiped, Mesh, Frustum or
// PlaneShape.
type Shape interface {
	isShape()
}

// Segment is a straight line between two points
type Segment struct {
	Start, End geometry.Vector3
}

// Polyline is a chain of consecutive points. A closed polyline also joins
// the last point to the first.
type Polyline struct {
	Points []geometry.Vector3
	Closed bool
}

// Ray is the infinite line through Origin along Direction. With OnlyForward
// only the half line t >= 0 is considered.
type Ray struct {
	Origin      geometry.Vector3
	Direction   geometry.Vector3
	OnlyForward bool
}

// Triangle is a filled triangle
type Triangle struct {
	A, B, C geometry.Vector3
}

// Tetrahedron is the solid spanned by four points
type Tetrahedron struct {
	A, B, C, D geometry.Vector3
}

// Parallelepiped is the image of the unit cube [0,1]³ under
// p = Origin + u*DX + v*DY + w*DZ.
type Parallelepiped struct {
	Origin     geometry.Vector3
	DX, DY, DZ geometry.Vector3
}

// Mesh is an indexed triangle mesh
type Mesh struct {
	Vertices  []geometry.Vector3
	Triangles [][3]int
}

// Frustum is a viewing or picking volume given by the projective transform
// that maps it onto Unit().
type Frustum struct {
	ToUnitBox mgl64.Mat4
}

// PlaneShape is an unbounded plane
type PlaneShape struct {
	Plane geometry.Plane
}

func (Segment) isShape()        {}
func (Polyline) isShape()       {}
func (Ray) isShape()            {}
func (Triangle) isShape()       {}
func (Tetrahedron) isShape()    {}
func (Parallelepiped) isShape() {}
func (Mesh) isShape()           {}
func (Frustum) isShape()        {}
func (PlaneShape) isShape()     {}

// TriangleOf converts a facet to a Triangle shape
func TriangleOf(t geometry.Triangle) Triangle {
	return Triangle{A: t.V1, B: t.V2, C: t.V3}
}

// Corners returns the 8 corners of the parallelepiped, indexed like Box.Corners
func (p Parallelepiped) Corners() [8]geometry.Vector3 {
	var res [8]geometry.Vector3
	for i := range res {
		c := p.Origin
		if i&1 != 0 {
			c = c.Add(p.DX)
		}
		if i&2 != 0 {
			c = c.Add(p.DY)
		}
		if i&4 != 0 {
			c = c.Add(p.DZ)
		}
		res[i] = c
	}
	return res
}

// Corners returns the 8 world-space corners of the frustum, indexed like
// Box.Corners. ok is false when ToUnitBox cannot be inverted.
func (f Frustum) Corners() (corners [8]geometry.Vector3, ok bool) {
	if f.ToUnitBox.Det() == 0 {
		return corners, false
	}
	inv := f.ToUnitBox.Inv()
	for i, c := range Unit().Corners() {
		h := geometry.TransformHomogeneous(inv, c)
		if h[3] == 0 {
			return corners, false
		}
		corners[i] = geometry.FromVec3(h.Vec3().Mul(1 / h[3]))
	}
	return corners, true
}

// ToUnit maps a world point into unit-box space. ok is false for points on
// or behind the eye plane.
func (f Frustum) ToUnit(p geometry.Vector3) (geometry.Vector3, bool) {
	h := geometry.TransformHomogeneous(f.ToUnitBox, p)
	if h[3] <= 0 {
		return geometry.Vector3{}, false
	}
	return geometry.FromVec3(h.Vec3().Mul(1 / h[3])), true
}

// vertices returns the finite corner points of s, or nil for shapes without
// any (Ray, PlaneShape) and for frustums that cannot be inverted.
func vertices(s Shape) []geometry.Vector3 {
	switch s := s.(type) {
	case Segment:
		return []geometry.Vector3{s.Start, s.End}
	case Polyline:
		return s.Points
	case Triangle:
		return []geometry.Vector3{s.A, s.B, s.C}
	case Tetrahedron:
		return []geometry.Vector3{s.A, s.B, s.C, s.D}
	case Parallelepiped:
		c := s.Corners()
		return c[:]
	case Mesh:
		return s.Vertices
	case Frustum:
		c, ok := s.Corners()
		if !ok {
			return nil
		}
		return c[:]
	}
	return nil
}
