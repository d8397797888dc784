package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gospatial/pkg/bounds"
	"github.com/philipparndt/gospatial/pkg/geometry"
)

// minPickSize is the smallest pick rectangle side in pixels
const minPickSize = 1.0

// Viewport projects world points onto a screen of Width x Height pixels with
// the origin in the top-left corner and y pointing down.
type Viewport struct {
	Camera *Camera
	Width  float64
	Height float64
}

// NewViewport creates a viewport showing b
func NewViewport(b bounds.Box, width, height float64) *Viewport {
	return &Viewport{Camera: NewCamera(b), Width: width, Height: height}
}

// Aspect returns width divided by height
func (v *Viewport) Aspect() float64 {
	if v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// ViewProjection returns the world to clip transform
func (v *Viewport) ViewProjection() mgl64.Mat4 {
	return v.Camera.Projection(v.Aspect()).Mul4(v.Camera.View())
}

// Project maps p to screen coordinates. depth is the distance in front of
// the eye; ok is false for points on or behind the eye plane.
func (v *Viewport) Project(p geometry.Vector3) (screen geometry.Vector2, depth float64, ok bool) {
	h := geometry.TransformHomogeneous(v.ViewProjection(), p)
	if h[3] <= 0 {
		return geometry.Vector2{}, h[3], false
	}
	return v.ndcToScreen(h[0]/h[3], h[1]/h[3]), h[3], true
}

// WorldToDevice implements bounds.Projection. Points behind the eye are
// mirrored by the homogeneous division, so callers should cull them first.
func (v *Viewport) WorldToDevice(p geometry.Vector3) geometry.Vector2 {
	ndc := geometry.TransformPoint(v.ViewProjection(), p)
	return v.ndcToScreen(ndc.X, ndc.Y)
}

func (v *Viewport) ndcToScreen(x, y float64) geometry.Vector2 {
	return geometry.NewVector2((x+1)/2*v.Width, (1-y)/2*v.Height)
}

func (v *Viewport) screenToNDC(s geometry.Vector2) (float64, float64) {
	return 2*s.X/v.Width - 1, 1 - 2*s.Y/v.Height
}

// Unproject returns the forward ray through a screen position, starting on
// the near plane.
func (v *Viewport) Unproject(screen geometry.Vector2) bounds.Ray {
	inv := v.ViewProjection().Inv()
	x, y := v.screenToNDC(screen)
	near := geometry.TransformPoint(inv, geometry.NewVector3(x, y, -1))
	far := geometry.TransformPoint(inv, geometry.NewVector3(x, y, 1))
	return bounds.Ray{Origin: near, Direction: far.Sub(near).Normalize(), OnlyForward: true}
}

// PickFrustum returns the part of the view volume behind a screen
// rectangle. Rectangles smaller than a pixel are widened around their
// center.
func (v *Viewport) PickFrustum(r geometry.Rect) bounds.Frustum {
	c := r.Center()
	hw := math.Max(r.Width(), minPickSize) / 2
	hh := math.Max(r.Height(), minPickSize) / 2
	r = geometry.RectFromCenter(c, hw, hh)

	x0, y0 := v.screenToNDC(geometry.NewVector2(r.MinX, r.MaxY))
	x1, y1 := v.screenToNDC(geometry.NewVector2(r.MaxX, r.MinY))
	pick := mgl64.Scale3D(2/(x1-x0), 2/(y1-y0), 1).
		Mul4(mgl64.Translate3D(-(x0+x1)/2, -(y0+y1)/2, 0))
	return bounds.Frustum{ToUnitBox: pick.Mul4(v.ViewProjection())}
}

// ScreenRect returns the whole screen as a rectangle
func (v *Viewport) ScreenRect() geometry.Rect {
	return geometry.Rect{MinX: 0, MaxX: v.Width, MinY: 0, MaxY: v.Height}
}
