package geometry

import "math"

// Vector2 represents a point in a 2D device or parameter space
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewVector2 creates a new 2D vector
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference between two vectors
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Length returns the magnitude of the vector
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance between two points
func (v Vector2) Distance(other Vector2) float64 {
	return v.Sub(other).Length()
}

// To3D lifts the point into the z plane
func (v Vector2) To3D(z float64) Vector3 {
	return Vector3{X: v.X, Y: v.Y, Z: z}
}
