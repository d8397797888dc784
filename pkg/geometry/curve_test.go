package geometry

import (
	"math"
	"testing"
)

func TestLinePlaneIntersection(t *testing.T) {
	l := NewLine(NewVector3(0, 0, -1), NewVector3(0, 0, 3))
	pl := NewPlane(NewVector3(0, 0, 0), NewVector3(0, 0, 1))

	ts := l.PlaneIntersection(pl)
	if len(ts) != 1 || ts[0] != 0.25 {
		t.Fatalf("expected [0.25], got %v", ts)
	}
	if p := l.PointAt(ts[0]); p != NewVector3(0, 0, 0) {
		t.Errorf("intersection point: expected origin, got %v", p)
	}

	parallel := NewLine(NewVector3(0, 0, 1), NewVector3(5, 0, 1))
	if ts := parallel.PlaneIntersection(pl); ts != nil {
		t.Errorf("parallel line should not intersect, got %v", ts)
	}
}

func TestLineTrimAndClone(t *testing.T) {
	l := NewLine(NewVector3(0, 0, 0), NewVector3(10, 0, 0))

	trimmed := l.Trim(0.2, 0.5).(*Line)
	if trimmed.Start != NewVector3(2, 0, 0) || trimmed.End != NewVector3(5, 0, 0) {
		t.Errorf("Trim failed: got %v -> %v", trimmed.Start, trimmed.End)
	}

	clone := l.Clone().(*Line)
	clone.Start = NewVector3(1, 1, 1)
	if l.Start != NewVector3(0, 0, 0) {
		t.Error("Clone should not share state with the original")
	}
	if l.Length() != 10 {
		t.Errorf("Length: expected 10, got %v", l.Length())
	}
}

func TestPolylineArcLength(t *testing.T) {
	pl := NewPolyline(NewVector3(0, 0, 0), NewVector3(3, 0, 0), NewVector3(3, 1, 0))

	if p := pl.PointAt(0.75); p.Distance(NewVector3(3, 0, 0)) > 1e-12 {
		t.Errorf("PointAt(0.75): expected corner (3,0,0), got %v", p)
	}
	if p := pl.PointAt(0.5); p.Distance(NewVector3(2, 0, 0)) > 1e-12 {
		t.Errorf("PointAt(0.5): expected (2,0,0), got %v", p)
	}
	if p := pl.PointAt(1); p.Distance(NewVector3(3, 1, 0)) > 1e-12 {
		t.Errorf("PointAt(1): expected end point, got %v", p)
	}
}

func TestPolylinePlaneIntersection(t *testing.T) {
	pl := NewPolyline(NewVector3(0, 0, 0), NewVector3(4, 0, 0), NewVector3(4, 4, 0))
	plane := NewPlane(NewVector3(2, 0, 0), NewVector3(1, 0, 0))

	ts := pl.PlaneIntersection(plane)
	if len(ts) != 1 || math.Abs(ts[0]-0.25) > 1e-12 {
		t.Fatalf("expected [0.25], got %v", ts)
	}

	far := NewPlane(NewVector3(10, 0, 0), NewVector3(1, 0, 0))
	if ts := pl.PlaneIntersection(far); len(ts) != 0 {
		t.Errorf("expected no intersection, got %v", ts)
	}
}

func TestPolylineTrim(t *testing.T) {
	pl := NewPolyline(NewVector3(0, 0, 0), NewVector3(4, 0, 0), NewVector3(4, 4, 0))
	trimmed := pl.Trim(0.25, 0.75).(*Polyline)

	expected := []Vector3{NewVector3(2, 0, 0), NewVector3(4, 0, 0), NewVector3(4, 2, 0)}
	if len(trimmed.Points) != len(expected) {
		t.Fatalf("expected %d points, got %v", len(expected), trimmed.Points)
	}
	for i, e := range expected {
		if trimmed.Points[i].Distance(e) > 1e-12 {
			t.Errorf("point %d: expected %v, got %v", i, e, trimmed.Points[i])
		}
	}
}
