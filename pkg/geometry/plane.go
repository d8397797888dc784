package geometry

import "math"

// Plane is an oriented plane with an orthonormal local coordinate system.
// DirX and DirY span the plane, Normal points to the positive side.
type Plane struct {
	Location Vector3
	DirX     Vector3
	DirY     Vector3
	Normal   Vector3
}

// NewPlane creates a plane through location with the given normal. The in-plane
// axes are chosen from the world axis least aligned with the normal.
func NewPlane(location, normal Vector3) Plane {
	n := normal.Normalize()
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	var ref Vector3
	switch {
	case ax <= ay && ax <= az:
		ref = NewVector3(1, 0, 0)
	case ay <= az:
		ref = NewVector3(0, 1, 0)
	default:
		ref = NewVector3(0, 0, 1)
	}
	dirX := ref.Sub(n.Mul(ref.Dot(n))).Normalize()
	dirY := n.Cross(dirX)
	return Plane{Location: location, DirX: dirX, DirY: dirY, Normal: n}
}

// ToLocal expresses p in the plane coordinate system. Z is the signed
// distance from the plane.
func (pl Plane) ToLocal(p Vector3) Vector3 {
	d := p.Sub(pl.Location)
	return Vector3{X: d.Dot(pl.DirX), Y: d.Dot(pl.DirY), Z: d.Dot(pl.Normal)}
}

// ToGlobal is the inverse of ToLocal
func (pl Plane) ToGlobal(p Vector3) Vector3 {
	return pl.Location.Add(pl.DirX.Mul(p.X)).Add(pl.DirY.Mul(p.Y)).Add(pl.Normal.Mul(p.Z))
}

// Distance returns the signed distance of p from the plane
func (pl Plane) Distance(p Vector3) float64 {
	return p.Sub(pl.Location).Dot(pl.Normal)
}
