package bounds

import (
	"math"

	"github.com/philipparndt/gospatial/pkg/geometry"
)

// barycentricEpsilon is the tolerance of the in-triangle and in-tetrahedron
// tests in the skewed local bases.
const barycentricEpsilon = 1e-10

// eyeEpsilon is the smallest homogeneous w kept when box edges are mapped
// into unit-box space.
const eyeEpsilon = 1e-12

// Interferes reports whether the box and s have at least one point in
// common. Touching counts as interference.
//
// Every shape with corner points first goes through the outcode stage: if
// all corners lie beyond the same face the answer is false, if any corner is
// inside it is true. Only the remaining cases run the exact test.
func (b Box) Interferes(s Shape) bool {
	if b.IsEmpty() {
		return false
	}
	switch s := s.(type) {
	case Ray:
		return b.interferesRay(s)
	case PlaneShape:
		return b.interferesPlane(s.Plane)
	}

	verts := vertices(s)
	if len(verts) == 0 {
		return false
	}
	codes, and, anyInside := b.clipCodes(verts)
	if and != 0 {
		return false
	}
	if m, ok := s.(Mesh); ok {
		// unreferenced vertices must not count, so no early accept here
		return b.interferesMesh(m, codes)
	}
	if anyInside {
		return true
	}

	switch s := s.(type) {
	case Segment:
		return b.interferesSegment(s.Start, s.End, codes[0], codes[1])
	case Polyline:
		return b.interferesPolyline(s, codes)
	case Triangle:
		return b.interferesTriangle(s.A, s.B, s.C, codes[0], codes[1], codes[2])
	case Tetrahedron:
		return b.interferesTetrahedron(s, codes)
	case Parallelepiped:
		return b.interferesParallelepiped(s, verts, codes)
	case Frustum:
		return b.interferesFrustum(s, verts, codes)
	}
	return false
}

func (b Box) interferesPolyline(pl Polyline, codes []ClipCode) bool {
	n := len(pl.Points)
	for i := 1; i < n; i++ {
		if b.interferesSegment(pl.Points[i-1], pl.Points[i], codes[i-1], codes[i]) {
			return true
		}
	}
	if pl.Closed && n > 2 {
		return b.interferesSegment(pl.Points[n-1], pl.Points[0], codes[n-1], codes[0])
	}
	return false
}

// interferesRay parametrizes the ray along its main direction: the axis on
// which the direction is largest relative to the box extent. The entry and
// exit points on the two slab planes of that axis form a segment that is
// then tested like any other. A flat box picks its flat axis, which reduces
// the test to a single crossing point.
func (b Box) interferesRay(r Ray) bool {
	d := r.Direction
	if d.X == 0 && d.Y == 0 && d.Z == 0 {
		return b.Contains(r.Origin)
	}
	ext := b.Extent()
	axis, best := -1, -1.0
	for i := 0; i < 3; i++ {
		di := math.Abs(d.Component(i))
		if di == 0 {
			continue
		}
		ratio := math.Inf(1)
		if e := ext.Component(i); e > 0 {
			ratio = di / e
		}
		if ratio > best {
			axis, best = i, ratio
		}
	}

	lo, hi := b.Min().Component(axis), b.Max().Component(axis)
	o, dd := r.Origin.Component(axis), d.Component(axis)
	t0, t1 := (lo-o)/dd, (hi-o)/dd
	if t0 > t1 {
		t0, t1 = t1, t0
		lo, hi = hi, lo
	}
	p0 := withComponent(r.Origin.Add(d.Mul(t0)), axis, lo)
	p1 := withComponent(r.Origin.Add(d.Mul(t1)), axis, hi)
	if r.OnlyForward {
		if t1 < 0 {
			return false
		}
		if t0 < 0 {
			p0 = r.Origin
		}
	}
	return b.InterferesSegment(p0, p1)
}

func withComponent(v geometry.Vector3, axis int, value float64) geometry.Vector3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

func (b Box) interferesPlane(pl geometry.Plane) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range b.Corners() {
		z := pl.ToLocal(c).Z
		lo = math.Min(lo, z)
		hi = math.Max(hi, z)
	}
	return lo <= 0 && hi >= 0
}

func (b Box) interferesTriangle(p1, p2, p3 geometry.Vector3, c1, c2, c3 ClipCode) bool {
	if c1&c2&c3 != 0 {
		return false
	}
	if c1 == Inside || c2 == Inside || c3 == Inside {
		return true
	}
	if b.interferesSegment(p1, p2, c1, c2) ||
		b.interferesSegment(p2, p3, c2, c3) ||
		b.interferesSegment(p3, p1, c3, c1) {
		return true
	}
	return b.piercesTriangle(p1, p2, p3)
}

// piercesTriangle handles a triangle that has no corner inside the box and
// no edge crossing it: the box can then only touch the triangle's interior.
// The box corners are expressed as a*u + b*v + h*n in the triangle basis and
// every box edge along which h changes sign is intersected with the
// triangle plane.
func (b Box) piercesTriangle(p1, p2, p3 geometry.Vector3) bool {
	u := p2.Sub(p1)
	v := p3.Sub(p1)
	n := u.Cross(v)

	var local [8]geometry.Vector3
	for i, c := range b.Corners() {
		k, ok := geometry.Solve3(u, v, n, c.Sub(p1))
		if !ok {
			return false
		}
		local[i] = k
	}
	for _, e := range Edges {
		k0, k1 := local[e[0]], local[e[1]]
		h0, h1 := k0.Z, k1.Z
		if h0 == 0 && h1 == 0 {
			if inTriangle(k0.X, k0.Y) || inTriangle(k1.X, k1.Y) {
				return true
			}
			continue
		}
		if (h0 > 0 && h1 > 0) || (h0 < 0 && h1 < 0) {
			continue
		}
		s := h0 / (h0 - h1)
		if inTriangle(k0.X+s*(k1.X-k0.X), k0.Y+s*(k1.Y-k0.Y)) {
			return true
		}
	}
	return false
}

func inTriangle(a, b float64) bool {
	return a >= -barycentricEpsilon && b >= -barycentricEpsilon && a+b <= 1+barycentricEpsilon
}

var tetrahedronFaces = [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}

func (b Box) interferesTetrahedron(t Tetrahedron, codes []ClipCode) bool {
	p := [4]geometry.Vector3{t.A, t.B, t.C, t.D}
	for _, f := range tetrahedronFaces {
		if b.interferesTriangle(p[f[0]], p[f[1]], p[f[2]], codes[f[0]], codes[f[1]], codes[f[2]]) {
			return true
		}
	}
	// no face touches the box: it is either completely inside or outside
	return t.Contains(b.Center())
}

// Contains reports whether p lies inside the tetrahedron or on its border.
// A flat tetrahedron contains nothing.
func (t Tetrahedron) Contains(p geometry.Vector3) bool {
	k, ok := geometry.Solve3(t.B.Sub(t.A), t.C.Sub(t.A), t.D.Sub(t.A), p.Sub(t.A))
	if !ok {
		return false
	}
	return k.X >= -barycentricEpsilon && k.Y >= -barycentricEpsilon && k.Z >= -barycentricEpsilon &&
		k.X+k.Y+k.Z <= 1+barycentricEpsilon
}

// interferesParallelepiped first tests the parallelepiped edges against the
// box, then the box edges against the unit cube in the parallelepiped's own
// coordinates. A flat parallelepiped is tested through its face triangles.
func (b Box) interferesParallelepiped(pp Parallelepiped, corners []geometry.Vector3, codes []ClipCode) bool {
	for _, e := range Edges {
		if b.interferesSegment(corners[e[0]], corners[e[1]], codes[e[0]], codes[e[1]]) {
			return true
		}
	}

	var local [8]geometry.Vector3
	for i, c := range b.Corners() {
		k, ok := geometry.Solve3(pp.DX, pp.DY, pp.DZ, c.Sub(pp.Origin))
		if !ok {
			return b.interferesFaces(corners, codes)
		}
		local[i] = k
	}
	unit := New(0, 1, 0, 1, 0, 1)
	for _, e := range Edges {
		if unit.InterferesSegment(local[e[0]], local[e[1]]) {
			return true
		}
	}
	return false
}

// interferesFaces tests the six quads of a box-like corner set as triangles
func (b Box) interferesFaces(corners []geometry.Vector3, codes []ClipCode) bool {
	for _, f := range Faces {
		if b.interferesTriangle(corners[f[0]], corners[f[1]], corners[f[2]], codes[f[0]], codes[f[1]], codes[f[2]]) ||
			b.interferesTriangle(corners[f[0]], corners[f[2]], corners[f[3]], codes[f[0]], codes[f[2]], codes[f[3]]) {
			return true
		}
	}
	return false
}

func (b Box) interferesMesh(m Mesh, codes []ClipCode) bool {
	n := len(m.Vertices)
	for _, t := range m.Triangles {
		if t[0] < 0 || t[0] >= n || t[1] < 0 || t[1] >= n || t[2] < 0 || t[2] >= n {
			continue
		}
		c0, c1, c2 := codes[t[0]], codes[t[1]], codes[t[2]]
		if c0 == Inside || c1 == Inside || c2 == Inside {
			return true
		}
		if c0&c1&c2 != 0 {
			continue
		}
		if b.interferesTriangle(m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]], c0, c1, c2) {
			return true
		}
	}
	return false
}

// interferesFrustum tests the frustum edges against the box and the box
// edges, mapped by ToUnitBox, against the unit cube. Together they catch
// crossing surfaces where no corner of either solid lies in the other.
func (b Box) interferesFrustum(f Frustum, corners []geometry.Vector3, codes []ClipCode) bool {
	for _, e := range Edges {
		if b.interferesSegment(corners[e[0]], corners[e[1]], codes[e[0]], codes[e[1]]) {
			return true
		}
	}

	unit := Unit()
	bc := b.Corners()
	for _, e := range Edges {
		p0, p1, ok := projectEdge(f, bc[e[0]], bc[e[1]])
		if ok && unit.InterferesSegment(p0, p1) {
			return true
		}
	}
	return false
}

// projectEdge maps a world segment into unit-box space. The part behind the
// eye (w <= 0) is cut away in homogeneous coordinates before dividing.
func projectEdge(f Frustum, a, b geometry.Vector3) (geometry.Vector3, geometry.Vector3, bool) {
	h0 := geometry.TransformHomogeneous(f.ToUnitBox, a)
	h1 := geometry.TransformHomogeneous(f.ToUnitBox, b)
	w0, w1 := h0[3], h1[3]
	if w0 < eyeEpsilon && w1 < eyeEpsilon {
		return geometry.Vector3{}, geometry.Vector3{}, false
	}
	if w0 < eyeEpsilon {
		h0 = h0.Add(h1.Sub(h0).Mul((eyeEpsilon - w0) / (w1 - w0)))
	} else if w1 < eyeEpsilon {
		h1 = h1.Add(h0.Sub(h1).Mul((eyeEpsilon - w1) / (w0 - w1)))
	}
	return geometry.FromVec3(h0.Vec3().Mul(1 / h0[3])), geometry.FromVec3(h1.Vec3().Mul(1 / h1[3])), true
}
