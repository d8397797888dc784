package bounds

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/gospatial/pkg/geometry"
	"github.com/stretchr/testify/require"
)

func TestInterferesEmptyBox(t *testing.T) {
	require.False(t, Empty().Interferes(Segment{Start: v(-1e9, 0, 0), End: v(1e9, 0, 0)}))
	require.False(t, Empty().Interferes(PlaneShape{Plane: geometry.NewPlane(v(0, 0, 0), v(0, 0, 1))}))
}

func TestInterferesPolyline(t *testing.T) {
	b := New(0, 10, 0, 10, 0, 10)

	open := Polyline{Points: []geometry.Vector3{v(-5, -5, 5), v(-5, 15, 5), v(15, 15, 5)}}
	require.False(t, b.Interferes(open))

	closed := open
	closed.Closed = true
	require.True(t, b.Interferes(closed), "closing segment crosses the box")

	require.False(t, b.Interferes(Polyline{}))
}

func TestInterferesRay(t *testing.T) {
	b := New(0, 10, 0, 10, 0, 10)

	tests := []struct {
		name string
		ray  Ray
		want bool
	}{
		{"forward towards box", Ray{Origin: v(-5, 5, 5), Direction: v(1, 0, 0), OnlyForward: true}, true},
		{"forward away from box", Ray{Origin: v(15, 5, 5), Direction: v(1, 0, 0), OnlyForward: true}, false},
		{"line behind origin", Ray{Origin: v(15, 5, 5), Direction: v(1, 0, 0)}, true},
		{"origin inside", Ray{Origin: v(5, 5, 5), Direction: v(0, 1, 0), OnlyForward: true}, true},
		{"parallel miss", Ray{Origin: v(-5, 20, 5), Direction: v(1, 0, 0)}, false},
		{"diagonal", Ray{Origin: v(-1, -1, -1), Direction: v(1, 1, 1), OnlyForward: true}, true},
		{"skew miss", Ray{Origin: v(21, 0, 5), Direction: v(-1, 1, 0)}, false},
		{"zero direction inside", Ray{Origin: v(1, 1, 1)}, true},
		{"zero direction outside", Ray{Origin: v(-1, 1, 1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, b.Interferes(tt.ray))
		})
	}
}

func TestInterferesRayFlatBox(t *testing.T) {
	b := New(0, 10, 0, 10, 5, 5)
	require.True(t, b.Interferes(Ray{Origin: v(3, 4, 0), Direction: v(0.1, 0, 1)}))
	require.False(t, b.Interferes(Ray{Origin: v(3, 4, 0), Direction: v(0.1, 0, 1).Neg(), OnlyForward: true}))
}

func TestInterferesPlane(t *testing.T) {
	b := New(0, 10, 0, 10, 0, 10)

	require.True(t, b.Interferes(PlaneShape{Plane: geometry.NewPlane(v(5, 5, 5), v(0, 0, 1))}))
	require.False(t, b.Interferes(PlaneShape{Plane: geometry.NewPlane(v(0, 0, 20), v(0, 0, 1))}))
	require.True(t, b.Interferes(PlaneShape{Plane: geometry.NewPlane(v(0, 0, 10), v(0, 0, 1))}), "touching a face")
	require.True(t, b.Interferes(PlaneShape{Plane: geometry.NewPlane(v(10, 10, 10), v(1, 1, 1))}), "touching a corner")
	require.False(t, b.Interferes(PlaneShape{Plane: geometry.NewPlane(v(10, 10, 11), v(1, 1, 1))}))
}

func TestInterferesTriangle(t *testing.T) {
	b := New(0, 10, 0, 10, 0, 10)

	t.Run("corner inside", func(t *testing.T) {
		require.True(t, b.Interferes(Triangle{A: v(5, 5, 5), B: v(50, 5, 5), C: v(5, 50, 5)}))
	})

	t.Run("beyond one face", func(t *testing.T) {
		require.False(t, b.Interferes(Triangle{A: v(20, 0, 5), B: v(30, 0, 5), C: v(20, 10, 5)}))
	})

	t.Run("edge crossing", func(t *testing.T) {
		require.True(t, b.Interferes(Triangle{A: v(-5, 5, 5), B: v(15, 5, 5), C: v(5, 50, 5)}))
	})

	t.Run("box pierces the interior", func(t *testing.T) {
		tri := Triangle{A: v(-100, -100, 5), B: v(100, -100, 5), C: v(-100, 300, 5)}
		require.True(t, b.Interferes(tri))
	})

	t.Run("plane crosses box but triangle does not", func(t *testing.T) {
		tri := Triangle{A: v(-1, 25, 5), B: v(25, -1, 5), C: v(30, 30, 5)}
		require.False(t, b.Interferes(tri))
	})

	t.Run("degenerate", func(t *testing.T) {
		tri := Triangle{A: v(-100, -100, 5), B: v(100, 100, 5), C: v(300, 300, 5)}
		require.True(t, b.Interferes(tri), "collinear points still cross the box as a segment")
		far := Triangle{A: v(-100, 50, 5), B: v(100, 50, 5), C: v(300, 50, 5)}
		require.False(t, b.Interferes(far))
	})

	t.Run("from facet", func(t *testing.T) {
		facet := geometry.NewTriangle(v(0, 0, 1), v(1, 1, 1), v(2, 1, 1), v(1, 2, 1))
		require.True(t, b.Interferes(TriangleOf(facet)))
	})
}

func TestInterferesTetrahedron(t *testing.T) {
	b := New(0, 10, 0, 10, 0, 10)

	t.Run("box inside", func(t *testing.T) {
		tet := Tetrahedron{A: v(-100, -100, -100), B: v(300, -100, -100), C: v(-100, 300, -100), D: v(-100, -100, 300)}
		require.True(t, b.Interferes(tet))
	})

	t.Run("corner inside", func(t *testing.T) {
		tet := Tetrahedron{A: v(5, 5, 5), B: v(30, 0, 0), C: v(0, 30, 0), D: v(0, 0, 30)}
		require.True(t, b.Interferes(tet))
	})

	t.Run("separate", func(t *testing.T) {
		tet := Tetrahedron{A: v(20, 20, 20), B: v(30, 20, 20), C: v(20, 30, 20), D: v(20, 20, 30)}
		require.False(t, b.Interferes(tet))
	})

	t.Run("near a corner", func(t *testing.T) {
		// the face x+y+z=31 stays clear of the corner (10,10,10)
		tet := Tetrahedron{A: v(31, 0, 0), B: v(0, 31, 0), C: v(0, 0, 31), D: v(40, 40, 40)}
		require.False(t, b.Interferes(tet))
	})

	t.Run("contains", func(t *testing.T) {
		tet := Tetrahedron{A: v(0, 0, 0), B: v(1, 0, 0), C: v(0, 1, 0), D: v(0, 0, 1)}
		require.True(t, tet.Contains(v(0.2, 0.2, 0.2)))
		require.True(t, tet.Contains(v(0, 0, 0)))
		require.False(t, tet.Contains(v(0.5, 0.5, 0.5)))

		flat := Tetrahedron{A: v(0, 0, 0), B: v(1, 0, 0), C: v(0, 1, 0), D: v(1, 1, 0)}
		require.False(t, flat.Contains(v(0.2, 0.2, 0)))
	})
}

func TestInterferesParallelepiped(t *testing.T) {
	b := New(0, 10, 0, 10, 0, 10)

	t.Run("box inside", func(t *testing.T) {
		pp := Parallelepiped{Origin: v(-10, -10, -10), DX: v(40, 0, 0), DY: v(0, 40, 0), DZ: v(0, 0, 40)}
		require.True(t, b.Interferes(pp))
	})

	t.Run("post through the box", func(t *testing.T) {
		pp := Parallelepiped{Origin: v(5, 5, -5), DX: v(1, 0, 0), DY: v(0, 1, 0), DZ: v(0, 0, 20)}
		require.True(t, b.Interferes(pp))
	})

	t.Run("sheared and apart", func(t *testing.T) {
		pp := Parallelepiped{Origin: v(20, 0, 0), DX: v(5, 0, 0), DY: v(5, 5, 0), DZ: v(0, 0, 5)}
		require.False(t, b.Interferes(pp))
	})

	t.Run("flat slab through the box", func(t *testing.T) {
		pp := Parallelepiped{Origin: v(-10, -10, 5), DX: v(40, 0, 0), DY: v(0, 40, 0)}
		require.True(t, b.Interferes(pp))
	})

	t.Run("corners", func(t *testing.T) {
		pp := Parallelepiped{Origin: v(1, 2, 3), DX: v(1, 0, 0), DY: v(0, 2, 0), DZ: v(0, 0, 3)}
		c := pp.Corners()
		require.Equal(t, v(1, 2, 3), c[0])
		require.Equal(t, v(2, 4, 6), c[7])
		require.Equal(t, New(1, 2, 2, 4, 3, 6).Corners(), c)
	})
}

func TestInterferesMesh(t *testing.T) {
	b := New(0, 10, 0, 10, 0, 10)

	t.Run("unreferenced vertex inside", func(t *testing.T) {
		m := Mesh{
			Vertices:  []geometry.Vector3{v(5, 5, 5), v(20, 20, 20), v(21, 20, 20), v(20, 21, 20)},
			Triangles: [][3]int{{1, 2, 3}},
		}
		require.False(t, b.Interferes(m))
	})

	t.Run("invalid indices are skipped", func(t *testing.T) {
		m := Mesh{
			Vertices:  []geometry.Vector3{v(5, 5, 5), v(20, 20, 20)},
			Triangles: [][3]int{{0, 1, 9}, {-1, 0, 1}},
		}
		require.False(t, b.Interferes(m))
	})

	t.Run("referenced vertex inside", func(t *testing.T) {
		m := Mesh{
			Vertices:  []geometry.Vector3{v(5, 5, 5), v(20, 20, 20), v(21, 20, 20)},
			Triangles: [][3]int{{0, 1, 2}},
		}
		require.True(t, b.Interferes(m))
	})

	t.Run("large facet pierced", func(t *testing.T) {
		m := Mesh{
			Vertices:  []geometry.Vector3{v(-100, -100, 5), v(100, -100, 5), v(-100, 300, 5), v(50, 50, 50)},
			Triangles: [][3]int{{0, 1, 2}},
		}
		require.True(t, b.Interferes(m))
	})
}

func TestInterferesFrustum(t *testing.T) {
	b := New(0, 10, 0, 10, 0, 10)

	t.Run("identity is the unit cube", func(t *testing.T) {
		f := Frustum{ToUnitBox: mgl64.Ident4()}
		require.True(t, b.Interferes(f))
		require.False(t, New(5, 6, 5, 6, 5, 6).Interferes(f))
	})

	t.Run("rod through the box", func(t *testing.T) {
		m := mgl64.Scale3D(0.01, 1, 1).Mul4(mgl64.Translate3D(-5, -5, -5))
		require.True(t, b.Interferes(Frustum{ToUnitBox: m}))
	})

	t.Run("box inside the frustum", func(t *testing.T) {
		f := Frustum{ToUnitBox: mgl64.Scale3D(0.01, 0.01, 0.01)}
		require.True(t, b.Interferes(f))
	})

	t.Run("singular matrix", func(t *testing.T) {
		f := Frustum{ToUnitBox: mgl64.Scale3D(1, 1, 0)}
		require.False(t, b.Interferes(f))
	})

	t.Run("perspective", func(t *testing.T) {
		proj := mgl64.Perspective(mgl64.DegToRad(30), 1, 1, 100)
		view := mgl64.LookAtV(mgl64.Vec3{5, 5, 50}, mgl64.Vec3{5, 5, 0}, mgl64.Vec3{0, 1, 0})
		f := Frustum{ToUnitBox: proj.Mul4(view)}
		require.True(t, b.Interferes(f))

		behind := New(0, 10, 0, 10, 60, 70)
		require.False(t, behind.Interferes(f))

		aside := New(100, 110, 0, 10, 0, 10)
		require.False(t, aside.Interferes(f))
	})

	t.Run("corners and unit mapping", func(t *testing.T) {
		f := Frustum{ToUnitBox: mgl64.Scale3D(0.5, 0.5, 0.5)}
		c, ok := f.Corners()
		require.True(t, ok)
		require.InDelta(t, -2, c[0].X, 1e-12)
		require.InDelta(t, 2, c[7].Z, 1e-12)

		p, ok := f.ToUnit(v(2, 0, -2))
		require.True(t, ok)
		require.InDelta(t, 1, p.X, 1e-12)
		require.InDelta(t, -1, p.Z, 1e-12)
	})
}
