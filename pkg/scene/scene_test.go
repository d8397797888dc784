package scene

import (
	"math"
	"testing"

	"github.com/philipparndt/gospatial/pkg/bounds"
	"github.com/philipparndt/gospatial/pkg/geometry"
	"github.com/philipparndt/gospatial/pkg/quadtree"
	"github.com/philipparndt/gospatial/pkg/stl"
	"github.com/philipparndt/gospatial/pkg/viewer"
	"github.com/stretchr/testify/require"
)

func v(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

func tri(a, b, c geometry.Vector3) geometry.Triangle {
	return geometry.NewTriangle(v(0, 0, 1), a, b, c)
}

// testModel is a 10x10 square made of two triangles at z = 0 and a small
// triangle hovering over its center at z = 5.
func testModel() *stl.Model {
	m := stl.NewModel("test")
	m.AddTriangle(tri(v(0, 0, 0), v(10, 0, 0), v(10, 10, 0)))
	m.AddTriangle(tri(v(0, 0, 0), v(10, 10, 0), v(0, 10, 0)))
	m.AddTriangle(tri(v(4, 4, 5), v(6, 4, 5), v(5, 6, 5)))
	return m
}

func testScene(opts ...quadtree.Option) *Scene {
	m := testModel()
	return Build(m, viewer.NewViewport(m.Bounds(), 800, 600), opts...)
}

func indices(hits []Hit) []int {
	res := make([]int, len(hits))
	for i, h := range hits {
		res[i] = h.Index
	}
	return res
}

func TestBuild(t *testing.T) {
	s := testScene()
	require.Equal(t, 0, s.Culled())
	require.Equal(t, bounds.New(0, 10, 0, 10, 0, 5), s.Bounds())
	require.NotNil(t, s.Facet(2))
	require.Nil(t, s.Facet(3))
	require.Nil(t, s.Facet(-1))

	f := s.Facet(2)
	require.InDelta(t, 17.5, f.Depth, 1e-9)
	require.True(t, f.Extent().Contains(geometry.NewVector2(400, 300)))
	require.Equal(t, 2, f.ReferencedObject())
}

func TestBuildCullsBehindEye(t *testing.T) {
	m := testModel()
	vp := viewer.NewViewport(m.Bounds(), 800, 600)
	m.AddTriangle(tri(v(0, 0, 40), v(1, 0, 40), v(0, 1, 40)))

	s := Build(m, vp)
	require.Equal(t, 1, s.Culled())
	require.Nil(t, s.Facet(3))
	require.Equal(t, 3, s.Stats(-1).Facets)
}

func TestFacetHitTest(t *testing.T) {
	f := newFacet(0, geometry.Triangle{}, [3]geometry.Vector2{
		geometry.NewVector2(0, 0),
		geometry.NewVector2(10, 0),
		geometry.NewVector2(0, 10),
	}, 1)

	require.True(t, f.HitTest(geometry.NewRect(1, 1, 2, 2), false), "inside")
	require.True(t, f.HitTest(geometry.NewRect(-5, -5, 20, 20), false), "covering")
	require.True(t, f.HitTest(geometry.NewRect(4, -1, 6, 1), false), "crossing an edge")
	require.True(t, f.HitTest(geometry.NewRect(2, 2, 2, 2), false), "point inside")
	require.False(t, f.HitTest(geometry.NewRect(6, 6, 9, 9), false), "beyond the hypotenuse")
	require.False(t, f.HitTest(geometry.NewRect(20, 20, 30, 30), false), "disjoint extent")
}

func TestPickRect(t *testing.T) {
	s := testScene()

	hits := s.PickRect(geometry.RectFromCenter(geometry.NewVector2(400, 300), 5, 5))
	require.Equal(t, []int{2, 0, 1}, indices(hits), "nearest first")
	require.Less(t, hits[0].Depth, hits[1].Depth)

	require.Empty(t, s.PickRect(geometry.NewRect(0, 0, 10, 10)))

	point := s.PickPoint(geometry.NewVector2(400, 300))
	require.NotEmpty(t, point)
	require.Equal(t, 2, point[0].Index)
}

func TestPickAfterHide(t *testing.T) {
	s := testScene()

	require.True(t, s.Hide(2))
	require.False(t, s.Hide(2))
	require.False(t, s.Hide(7))
	require.Nil(t, s.Facet(2))

	hits := s.PickRect(geometry.RectFromCenter(geometry.NewVector2(400, 300), 5, 5))
	require.Equal(t, []int{0, 1}, indices(hits))
	require.Equal(t, 2, s.Stats(-1).Facets)
}

func TestRay(t *testing.T) {
	s := testScene()

	ray, ok := s.Ray(geometry.NewVector2(400, 300))
	require.True(t, ok)
	require.True(t, ray.OnlyForward)

	_, ok = s.Ray(geometry.NewVector2(0, 0))
	require.False(t, ok)
}

func TestBoxQuery(t *testing.T) {
	s := testScene()

	require.Equal(t, []int{2}, s.BoxQuery(bounds.New(4, 6, 4, 6, 4, 6)))
	require.Equal(t, []int{0, 1}, s.BoxQuery(bounds.New(-1, 1, -1, 1, -1, 1)), "shared corner")
	require.Equal(t, []int{0}, s.BoxQuery(bounds.New(7, 9, 1, 2, -1, 1)))
	require.Nil(t, s.BoxQuery(bounds.New(20, 30, 20, 30, 20, 30)))
	require.Nil(t, s.BoxQuery(bounds.Empty()))
}

func TestRotateBox(t *testing.T) {
	b := RotateBox(bounds.New(-1, 1, -1, 1, -1, 1), v(0, 0, 1), math.Pi/4)
	require.InDelta(t, -math.Sqrt2, b.MinX, 1e-12)
	require.InDelta(t, math.Sqrt2, b.MaxY, 1e-12)
	require.InDelta(t, 1, b.MaxZ, 1e-12)

	same := RotateBox(bounds.New(0, 2, 0, 2, 0, 2), v(0, 0, 0), 1)
	require.Equal(t, bounds.New(0, 2, 0, 2, 0, 2), same)

	moved := RotateBox(bounds.New(2, 4, 0, 2, 0, 2), v(0, 0, 1), math.Pi/2)
	require.InDelta(t, 3, moved.Center().X, 1e-12, "rotates about its own center")
	require.InDelta(t, 1, moved.Center().Y, 1e-12)
}

func TestNear(t *testing.T) {
	s := testScene()

	p, _, ok := s.Viewport.Project(v(8, 2, 0))
	require.True(t, ok)
	require.Equal(t, []int{0}, s.Near(p, 1))

	require.Empty(t, s.Near(geometry.NewVector2(5, 5), 1))
	require.Equal(t, []int{0, 1, 2}, s.Near(geometry.NewVector2(5, 5), 1000))
}

func TestClipSegment(t *testing.T) {
	s := testScene()

	start, end, ok := s.ClipSegment(v(-5, 5, 2), v(15, 5, 2))
	require.True(t, ok)
	require.Equal(t, v(0, 5, 2), start)
	require.Equal(t, v(10, 5, 2), end)

	_, _, ok = s.ClipSegment(v(20, 20, 20), v(30, 30, 30))
	require.False(t, ok)
}

func TestClipPolyline(t *testing.T) {
	s := testScene()

	pieces := s.ClipPolyline(v(-5, 5, 2), v(5, 5, 2), v(5, 5, 20))
	require.Len(t, pieces, 1)
	require.InDelta(t, 0, pieces[0].PointAt(0).Distance(v(0, 5, 2)), 1e-9)
	require.InDelta(t, 0, pieces[0].PointAt(1).Distance(v(5, 5, 5)), 1e-9)

	require.Nil(t, s.ClipPolyline(v(1, 1, 1)))
	require.Empty(t, s.ClipPolyline(v(20, 20, 20), v(30, 30, 30)))
}

func TestStatsAndRefine(t *testing.T) {
	s := testScene()

	st := s.Stats(-1)
	require.Equal(t, "fixed", st.Policy)
	require.Equal(t, 3, st.Facets)
	require.Equal(t, 1, st.Nodes)
	require.Equal(t, 1, st.Leaves)
	require.Equal(t, 3, st.Stored)
	require.Equal(t, 0, st.Depth)
	require.True(t, st.Root.ContainsRect(s.Viewport.ScreenRect()))

	require.GreaterOrEqual(t, s.Refine(2, 0), 2)

	st = s.Stats(-1)
	require.Equal(t, 2, st.Depth)
	require.Greater(t, st.Leaves, 4)
	require.GreaterOrEqual(t, st.Stored, 3)
	require.Equal(t, 3, st.Facets)

	hits := s.PickRect(geometry.RectFromCenter(geometry.NewVector2(400, 300), 5, 5))
	require.Equal(t, []int{2, 0, 1}, indices(hits), "refining keeps picks intact")
}

func TestDynamicPolicy(t *testing.T) {
	s := testScene(quadtree.WithSplitPolicy(quadtree.DynamicDepth()))
	st := s.Stats(-1)
	require.Equal(t, "dynamic", st.Policy)
	require.Equal(t, 3, st.Facets)
	require.Greater(t, st.Leaves, 1)
}

func TestEmptyModel(t *testing.T) {
	m := stl.NewModel("empty")
	s := Build(m, viewer.NewViewport(m.Bounds(), 800, 600))

	require.Empty(t, s.PickRect(geometry.NewRect(0, 0, 800, 600)))
	require.Nil(t, s.BoxQuery(bounds.Infinite()))
	require.Empty(t, s.Near(geometry.NewVector2(400, 300), 1000))
	require.Equal(t, 0, s.Stats(-1).Facets)
}
