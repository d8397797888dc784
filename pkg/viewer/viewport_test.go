package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/gospatial/pkg/bounds"
	"github.com/philipparndt/gospatial/pkg/geometry"
	"github.com/stretchr/testify/require"
)

func newTestViewport() (*Viewport, bounds.Box) {
	b := bounds.New(0, 10, 0, 10, 0, 10)
	return NewViewport(b, 800, 600), b
}

func TestNewCamera(t *testing.T) {
	c := NewCamera(bounds.New(0, 10, 0, 10, 0, 10))
	require.Equal(t, geometry.NewVector3(5, 5, 5), c.Target)
	require.Equal(t, 20.0, c.Distance)
	require.InDelta(t, 0, c.Position.Distance(geometry.NewVector3(5, 5, 25)), 1e-12)

	empty := NewCamera(bounds.Empty())
	require.Equal(t, geometry.Vector3{}, empty.Target)
	require.Equal(t, 1.0, empty.Distance)
}

func TestCameraOrbit(t *testing.T) {
	c := NewCamera(bounds.New(-1, 1, -1, 1, -1, 1))

	c.Rotate(10, 0)
	require.InDelta(t, math.Pi/2-0.1, c.RotationX, 1e-12, "elevation is clamped")
	require.InDelta(t, c.Distance, c.Position.Distance(c.Target), 1e-12)

	c.Rotate(0, math.Pi/2)
	require.InDelta(t, c.Distance, c.Position.Distance(c.Target), 1e-12)

	c.Zoom(-0.999)
	require.Equal(t, minDistance, c.Distance)
	c.Zoom(1)
	require.InDelta(t, 2*minDistance, c.Distance, 1e-12)
}

func TestProject(t *testing.T) {
	vp, b := newTestViewport()

	s, depth, ok := vp.Project(b.Center())
	require.True(t, ok)
	require.InDelta(t, 400, s.X, 1e-9)
	require.InDelta(t, 300, s.Y, 1e-9)
	require.InDelta(t, 20, depth, 1e-9)

	up, _, ok := vp.Project(geometry.NewVector3(5, 8, 5))
	require.True(t, ok)
	require.Less(t, up.Y, 300.0, "screen y points down")

	_, _, ok = vp.Project(geometry.NewVector3(5, 5, 40))
	require.False(t, ok, "behind the camera")

	d := vp.WorldToDevice(b.Center())
	require.InDelta(t, 400, d.X, 1e-9)
	require.InDelta(t, 300, d.Y, 1e-9)
}

func TestGetExtentThroughViewport(t *testing.T) {
	vp, b := newTestViewport()
	r := b.GetExtent(vp)

	require.InDelta(t, 400, r.Center().X, 1e-9)
	require.InDelta(t, 300, r.Center().Y, 1e-9)
	require.True(t, vp.ScreenRect().ContainsRect(r))
	require.Greater(t, r.Width(), 100.0)
}

func TestUnproject(t *testing.T) {
	vp, b := newTestViewport()

	ray := vp.Unproject(geometry.NewVector2(400, 300))
	require.InDelta(t, 0, ray.Direction.Distance(geometry.NewVector3(0, 0, -1)), 1e-9)
	require.InDelta(t, 24.8, ray.Origin.Z, 1e-9)
	require.True(t, b.Interferes(ray))

	corner := vp.Unproject(geometry.NewVector2(0, 0))
	require.False(t, b.Interferes(corner))
}

func TestPickFrustum(t *testing.T) {
	vp, b := newTestViewport()

	center := vp.PickFrustum(geometry.RectFromCenter(geometry.NewVector2(400, 300), 5, 5))
	require.True(t, b.Interferes(center))

	corner := vp.PickFrustum(geometry.NewRect(0, 0, 10, 10))
	require.False(t, b.Interferes(corner))

	// a pick rectangle maps onto the unit square at the near plane
	f := vp.PickFrustum(geometry.NewRect(300, 200, 500, 400))
	p, ok := f.ToUnit(b.Center())
	require.True(t, ok)
	require.InDelta(t, 0, p.X, 1e-9)
	require.InDelta(t, 0, p.Y, 1e-9)

	point := vp.PickFrustum(geometry.NewRect(400, 300, 400, 300))
	require.True(t, b.Interferes(point), "degenerate rectangles are widened to a pixel")
}
