package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// singularEpsilon is the relative determinant below which a 3x3 system is
// treated as singular.
const singularEpsilon = 1e-12

// TransformPoint applies an affine or projective transform to p, including
// the homogeneous division.
func TransformPoint(m mgl64.Mat4, p Vector3) Vector3 {
	return FromVec3(mgl64.TransformCoordinate(p.Vec3(), m))
}

// TransformHomogeneous applies m to p without dividing by w
func TransformHomogeneous(m mgl64.Mat4, p Vector3) mgl64.Vec4 {
	return m.Mul4x1(p.Vec3().Vec4(1))
}

// Solve3 expresses v in the basis (c0, c1, c2) and returns the coefficients.
// ok is false when the basis is degenerate relative to its own scale.
func Solve3(c0, c1, c2, v Vector3) (coef Vector3, ok bool) {
	m := mgl64.Mat3FromCols(c0.Vec3(), c1.Vec3(), c2.Vec3())
	det := m.Det()
	scale := c0.Length() * c1.Length() * c2.Length()
	if scale == 0 || math.Abs(det) <= singularEpsilon*scale {
		return Vector3{}, false
	}
	return FromVec3(m.Inv().Mul3x1(v.Vec3())), true
}
