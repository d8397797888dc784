package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gospatial/pkg/bounds"
	"github.com/philipparndt/gospatial/pkg/geometry"
)

const (
	minDistance = 0.1
	// near and far clip planes relative to the orbit distance
	nearFactor = 0.01
	farFactor  = 4.0
)

// Camera orbits around a target point
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // vertical field of view in radians
	Distance  float64
	RotationX float64 // elevation
	RotationY float64 // azimuth
}

// NewCamera creates a camera looking at the center of b along -Z from twice
// its longest side.
func NewCamera(b bounds.Box) *Camera {
	center := geometry.Vector3{}
	distance := 1.0
	if !b.IsEmpty() {
		center = b.Center()
		distance = math.Max(b.MaxSide()*2, minDistance)
	}
	c := &Camera{
		Target:   center,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4,
		Distance: distance,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition places the camera on its orbit sphere
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)
	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate rotates the camera by the given angles. The elevation stays short
// of the poles where the up vector would flip.
func (c *Camera) Rotate(deltaX, deltaY float64) {
	maxAngle := math.Pi/2 - 0.1
	c.RotationX = mgl64.Clamp(c.RotationX+deltaX, -maxAngle, maxAngle)
	c.RotationY += deltaY
	c.UpdatePosition()
}

// Zoom scales the orbit distance by 1+delta
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(c.Distance*(1.0+delta), minDistance)
	c.UpdatePosition()
}

// View returns the world to eye transform
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position.Vec3(), c.Target.Vec3(), c.Up.Vec3())
}

// Projection returns the eye to clip transform for the given aspect ratio
func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(c.FOV, aspect, c.Distance*nearFactor, c.Distance*farFactor)
}
