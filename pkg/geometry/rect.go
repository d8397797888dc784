package geometry

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle in 2D. The zero value is the degenerate
// rectangle at the origin; use EmptyRect as the identity for accumulation.
type Rect struct {
	MinX float64 `json:"xmin"`
	MaxX float64 `json:"xmax"`
	MinY float64 `json:"ymin"`
	MaxY float64 `json:"ymax"`
}

// NewRect creates a rectangle spanning two corners in any order
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		MinX: math.Min(x1, x2),
		MaxX: math.Max(x1, x2),
		MinY: math.Min(y1, y2),
		MaxY: math.Max(y1, y2),
	}
}

// RectFromCenter creates a rectangle from its center and half extents
func RectFromCenter(center Vector2, halfWidth, halfHeight float64) Rect {
	return Rect{
		MinX: center.X - halfWidth,
		MaxX: center.X + halfWidth,
		MinY: center.Y - halfHeight,
		MaxY: center.Y + halfHeight,
	}
}

// EmptyRect returns the rectangle that contains nothing
func EmptyRect() Rect {
	return Rect{
		MinX: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
}

// RectFromPoints returns the bounding rectangle of the points
func RectFromPoints(points ...Vector2) Rect {
	r := EmptyRect()
	for _, p := range points {
		r.MinMax(p)
	}
	return r
}

// IsEmpty reports whether the rectangle holds no point
func (r Rect) IsEmpty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// IsValid reports whether all bounds are finite numbers
func (r Rect) IsValid() bool {
	return isFinite(r.MinX) && isFinite(r.MaxX) && isFinite(r.MinY) && isFinite(r.MaxY)
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of the rectangle
func (r Rect) Center() Vector2 {
	return Vector2{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Contains reports whether p lies inside or on the border
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// ContainsRect reports whether other lies completely inside r, borders included
func (r Rect) ContainsRect(other Rect) bool {
	return other.MinX >= r.MinX && other.MaxX <= r.MaxX &&
		other.MinY >= r.MinY && other.MaxY <= r.MaxY
}

// MinMax extends the rectangle to include p
func (r *Rect) MinMax(p Vector2) {
	r.MinX = math.Min(r.MinX, p.X)
	r.MaxX = math.Max(r.MaxX, p.X)
	r.MinY = math.Min(r.MinY, p.Y)
	r.MaxY = math.Max(r.MaxY, p.Y)
}

// MinMaxRect extends the rectangle to include other
func (r *Rect) MinMaxRect(other Rect) {
	r.MinX = math.Min(r.MinX, other.MinX)
	r.MaxX = math.Max(r.MaxX, other.MaxX)
	r.MinY = math.Min(r.MinY, other.MinY)
	r.MaxY = math.Max(r.MaxY, other.MaxY)
}

// UnionRect returns the smallest rectangle containing both a and b
func UnionRect(a, b Rect) Rect {
	a.MinMaxRect(b)
	return a
}

// Inflate returns the rectangle grown by d on every side
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{MinX: r.MinX - dx, MaxX: r.MaxX + dx, MinY: r.MinY - dy, MaxY: r.MaxY + dy}
}

// Quadrant returns one of the four sub-rectangles obtained by bisecting r.
// Index 0 is top-right, 1 top-left, 2 bottom-left, 3 bottom-right.
func (r Rect) Quadrant(i int) Rect {
	return r.QuadrantAround(r.Center(), i)
}

// QuadrantAround is Quadrant with the split point c instead of the center
func (r Rect) QuadrantAround(c Vector2, i int) Rect {
	switch i {
	case 0:
		return Rect{MinX: c.X, MaxX: r.MaxX, MinY: c.Y, MaxY: r.MaxY}
	case 1:
		return Rect{MinX: r.MinX, MaxX: c.X, MinY: c.Y, MaxY: r.MaxY}
	case 2:
		return Rect{MinX: r.MinX, MaxX: c.X, MinY: r.MinY, MaxY: c.Y}
	default:
		return Rect{MinX: c.X, MaxX: r.MaxX, MinY: r.MinY, MaxY: c.Y}
	}
}

// DisjointRects reports whether a and b neither overlap nor touch.
// Rectangles sharing only a border are not disjoint.
func DisjointRects(a, b Rect) bool {
	return a.MaxX < b.MinX || b.MaxX < a.MinX || a.MaxY < b.MinY || b.MaxY < a.MinY
}

// Overlaps is the negation of DisjointRects
func (r Rect) Overlaps(other Rect) bool {
	return !DisjointRects(r, other)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", r.MinX, r.MaxX, r.MinY, r.MaxY)
}
