// Package bounds implements the axis-aligned bounding box used to reject and
// accept geometry cheaply, together with exact interference tests against
// segments, polylines, rays, triangles, tetrahedra, parallelepipeds, meshes,
// planes and viewing frustums.
//
// Box is a plain value. Methods with a pointer receiver (MinMax, Expand,
// Modify) change the caller's copy only.
package bounds

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gospatial/pkg/geometry"
)

// Box is an axis-aligned box in 3D space
type Box struct {
	MinX float64 `json:"xmin"`
	MaxX float64 `json:"xmax"`
	MinY float64 `json:"ymin"`
	MaxY float64 `json:"ymax"`
	MinZ float64 `json:"zmin"`
	MaxZ float64 `json:"zmax"`
}

// Edges lists the 12 box edges as index pairs into Corners
var Edges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0}, // bottom (z min)
	{4, 5}, {5, 7}, {7, 6}, {6, 4}, // top (z max)
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // vertical
}

// Faces lists the 6 box faces as corner index quads, in the order of Planes
var Faces = [6][4]int{
	{0, 2, 6, 4}, // x min
	{1, 5, 7, 3}, // x max
	{0, 4, 5, 1}, // y min
	{2, 3, 7, 6}, // y max
	{0, 1, 3, 2}, // z min
	{4, 6, 7, 5}, // z max
}

// New creates a box from its bounds. Swapped bounds are put in order.
func New(minX, maxX, minY, maxY, minZ, maxZ float64) Box {
	return Box{
		MinX: math.Min(minX, maxX), MaxX: math.Max(minX, maxX),
		MinY: math.Min(minY, maxY), MaxY: math.Max(minY, maxY),
		MinZ: math.Min(minZ, maxZ), MaxZ: math.Max(minZ, maxZ),
	}
}

// Empty returns the box containing nothing. It is the identity of Union.
func Empty() Box {
	return Box{
		MinX: math.MaxFloat64, MaxX: -math.MaxFloat64,
		MinY: math.MaxFloat64, MaxY: -math.MaxFloat64,
		MinZ: math.MaxFloat64, MaxZ: -math.MaxFloat64,
	}
}

// Infinite returns the box containing every representable point
func Infinite() Box {
	return Box{
		MinX: -math.MaxFloat64, MaxX: math.MaxFloat64,
		MinY: -math.MaxFloat64, MaxY: math.MaxFloat64,
		MinZ: -math.MaxFloat64, MaxZ: math.MaxFloat64,
	}
}

// Unit returns the cube [-1, 1]³ that frustums are mapped onto
func Unit() Box {
	return Box{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1, MinZ: -1, MaxZ: 1}
}

// FromCenter creates a cube around center
func FromCenter(center geometry.Vector3, halfSize float64) Box {
	return New(
		center.X-halfSize, center.X+halfSize,
		center.Y-halfSize, center.Y+halfSize,
		center.Z-halfSize, center.Z+halfSize,
	)
}

// FromPoints returns the tight box around the points
func FromPoints(points ...geometry.Vector3) Box {
	b := Empty()
	for _, p := range points {
		b.MinMax(p)
	}
	return b
}

// FromBoxes returns the union of all boxes
func FromBoxes(boxes ...Box) Box {
	b := Empty()
	for _, o := range boxes {
		b.MinMaxBox(o)
	}
	return b
}

// FromRect lifts a 2D rectangle into the slab between minZ and maxZ
func FromRect(r geometry.Rect, minZ, maxZ float64) Box {
	return New(r.MinX, r.MaxX, r.MinY, r.MaxY, minZ, maxZ)
}

// IsEmpty reports whether the box holds no point
func (b Box) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY || b.MinZ > b.MaxZ
}

// IsValid is false if any bound is NaN or infinite
func (b Box) IsValid() bool {
	for _, v := range [6]float64{b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Contains reports whether p lies inside or on the border
func (b Box) Contains(p geometry.Vector3) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY &&
		p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// ContainsWithin is Contains on the box expanded by precision
func (b Box) ContainsWithin(p geometry.Vector3, precision float64) bool {
	b.Expand(precision)
	return b.Contains(p)
}

// ContainsBox reports whether other lies completely inside b
func (b Box) ContainsBox(other Box) bool {
	return other.MinX >= b.MinX && other.MaxX <= b.MaxX &&
		other.MinY >= b.MinY && other.MaxY <= b.MaxY &&
		other.MinZ >= b.MinZ && other.MaxZ <= b.MaxZ
}

// IsOnBounds reports whether p lies on the shell of the box: inside the box
// grown by precision but not inside the box shrunk by precision.
func (b Box) IsOnBounds(p geometry.Vector3, precision float64) bool {
	if !b.ContainsWithin(p, precision) {
		return false
	}
	return !b.ContainsWithin(p, -precision)
}

// MinMax extends the box to include p
func (b *Box) MinMax(p geometry.Vector3) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxY = math.Max(b.MaxY, p.Y)
	b.MinZ = math.Min(b.MinZ, p.Z)
	b.MaxZ = math.Max(b.MaxZ, p.Z)
}

// MinMaxBox extends the box to include other
func (b *Box) MinMaxBox(other Box) {
	b.MinX = math.Min(b.MinX, other.MinX)
	b.MaxX = math.Max(b.MaxX, other.MaxX)
	b.MinY = math.Min(b.MinY, other.MinY)
	b.MaxY = math.Max(b.MaxY, other.MaxY)
	b.MinZ = math.Min(b.MinZ, other.MinZ)
	b.MaxZ = math.Max(b.MaxZ, other.MaxZ)
}

// Union returns the smallest box containing a and b
func Union(a, b Box) Box {
	a.MinMaxBox(b)
	return a
}

// Union returns the smallest box containing b and other
func (b Box) Union(other Box) Box {
	return Union(b, other)
}

// Expand grows the box by margin in all six directions. A negative margin
// shrinks it.
func (b *Box) Expand(margin float64) {
	b.MinX -= margin
	b.MaxX += margin
	b.MinY -= margin
	b.MaxY += margin
	b.MinZ -= margin
	b.MaxZ += margin
}

// Modify replaces the box by the axis-aligned bounds of its image under m.
// All eight corners are transformed, so a rotated box is never cut off.
func (b *Box) Modify(m mgl64.Mat4) {
	corners := b.Corners()
	res := Empty()
	for _, c := range corners {
		res.MinMax(geometry.TransformPoint(m, c))
	}
	*b = res
}

// Corners returns the 8 corners. Bit 0 of the index selects MaxX, bit 1
// MaxY and bit 2 MaxZ.
func (b Box) Corners() [8]geometry.Vector3 {
	var res [8]geometry.Vector3
	for i := range res {
		res[i] = geometry.Vector3{X: b.MinX, Y: b.MinY, Z: b.MinZ}
		if i&1 != 0 {
			res[i].X = b.MaxX
		}
		if i&2 != 0 {
			res[i].Y = b.MaxY
		}
		if i&4 != 0 {
			res[i].Z = b.MaxZ
		}
	}
	return res
}

// Planes returns the six supporting planes with outward normals, in the
// order of Faces.
func (b Box) Planes() [6]geometry.Plane {
	return [6]geometry.Plane{
		geometry.NewPlane(geometry.NewVector3(b.MinX, b.MinY, b.MinZ), geometry.NewVector3(-1, 0, 0)),
		geometry.NewPlane(geometry.NewVector3(b.MaxX, b.MinY, b.MinZ), geometry.NewVector3(1, 0, 0)),
		geometry.NewPlane(geometry.NewVector3(b.MinX, b.MinY, b.MinZ), geometry.NewVector3(0, -1, 0)),
		geometry.NewPlane(geometry.NewVector3(b.MinX, b.MaxY, b.MinZ), geometry.NewVector3(0, 1, 0)),
		geometry.NewPlane(geometry.NewVector3(b.MinX, b.MinY, b.MinZ), geometry.NewVector3(0, 0, -1)),
		geometry.NewPlane(geometry.NewVector3(b.MinX, b.MinY, b.MaxZ), geometry.NewVector3(0, 0, 1)),
	}
}

func (b Box) XDiff() float64 { return b.MaxX - b.MinX }
func (b Box) YDiff() float64 { return b.MaxY - b.MinY }
func (b Box) ZDiff() float64 { return b.MaxZ - b.MinZ }

// Size returns the sum of the three extents
func (b Box) Size() float64 {
	return b.XDiff() + b.YDiff() + b.ZDiff()
}

// Volume returns the product of the three extents
func (b Box) Volume() float64 {
	return b.XDiff() * b.YDiff() * b.ZDiff()
}

// MaxSide returns the longest extent
func (b Box) MaxSide() float64 {
	return math.Max(b.XDiff(), math.Max(b.YDiff(), b.ZDiff()))
}

// DiagonalLength returns the length of the space diagonal
func (b Box) DiagonalLength() float64 {
	return b.Extent().Length()
}

// Extent returns the three extents as a vector
func (b Box) Extent() geometry.Vector3 {
	return geometry.NewVector3(b.XDiff(), b.YDiff(), b.ZDiff())
}

// Center returns the midpoint of the box
func (b Box) Center() geometry.Vector3 {
	return geometry.NewVector3((b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2, (b.MinZ+b.MaxZ)/2)
}

// Min returns the corner with the smallest coordinates
func (b Box) Min() geometry.Vector3 {
	return geometry.NewVector3(b.MinX, b.MinY, b.MinZ)
}

// Max returns the corner with the largest coordinates
func (b Box) Max() geometry.Vector3 {
	return geometry.NewVector3(b.MaxX, b.MaxY, b.MaxZ)
}

// Disjoint reports whether a and b neither overlap nor touch. Boxes sharing
// only a face, edge or corner are not disjoint.
func Disjoint(a, b Box) bool {
	return a.MaxX < b.MinX || b.MaxX < a.MinX ||
		a.MaxY < b.MinY || b.MaxY < a.MinY ||
		a.MaxZ < b.MinZ || b.MaxZ < a.MinZ
}

// InterferesBox is the negation of Disjoint
func (b Box) InterferesBox(other Box) bool {
	return !Disjoint(b, other)
}

// Projection maps world points to an unscaled 2D device space
type Projection interface {
	WorldToDevice(p geometry.Vector3) geometry.Vector2
}

// GetExtent returns the 2D bounds of the projected box
func (b Box) GetExtent(proj Projection) geometry.Rect {
	r := geometry.EmptyRect()
	for _, c := range b.Corners() {
		r.MinMax(proj.WorldToDevice(c))
	}
	return r
}

func (b Box) String() string {
	if b.IsEmpty() {
		return "Box(empty)"
	}
	return fmt.Sprintf("Box([%g,%g] [%g,%g] [%g,%g])", b.MinX, b.MaxX, b.MinY, b.MaxY, b.MinZ, b.MaxZ)
}
