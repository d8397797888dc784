package geometry

import (
	"math"
	"sort"
)

// Curve is a parametric curve on the interval [0, 1]
type Curve interface {
	// PointAt returns the point at parameter t
	PointAt(t float64) Vector3
	// PlaneIntersection returns the parameters where the curve crosses pl,
	// in no particular order. Parameters outside [0, 1] may be returned.
	PlaneIntersection(pl Plane) []float64
	// Clone returns an independent copy
	Clone() Curve
	// Trim returns the part between t0 and t1, reparametrized to [0, 1]
	Trim(t0, t1 float64) Curve
}

// Line is a straight segment from Start to End
type Line struct {
	Start Vector3
	End   Vector3
}

// NewLine creates a segment
func NewLine(start, end Vector3) *Line {
	return &Line{Start: start, End: end}
}

func (l *Line) PointAt(t float64) Vector3 {
	return l.Start.Lerp(l.End, t)
}

func (l *Line) PlaneIntersection(pl Plane) []float64 {
	d0 := pl.Distance(l.Start)
	d1 := pl.Distance(l.End)
	if d0 == d1 {
		// parallel, or lying in the plane
		return nil
	}
	return []float64{d0 / (d0 - d1)}
}

func (l *Line) Clone() Curve {
	c := *l
	return &c
}

func (l *Line) Trim(t0, t1 float64) Curve {
	return &Line{Start: l.PointAt(t0), End: l.PointAt(t1)}
}

// Length returns the distance between the endpoints
func (l *Line) Length() float64 {
	return l.Start.Distance(l.End)
}

// Polyline is a chain of segments parametrized by arc length
type Polyline struct {
	Points []Vector3
}

// NewPolyline creates a polyline through the given points
func NewPolyline(points ...Vector3) *Polyline {
	return &Polyline{Points: append([]Vector3(nil), points...)}
}

// stations returns the cumulative normalized arc length at each point
func (p *Polyline) stations() []float64 {
	st := make([]float64, len(p.Points))
	total := 0.0
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i].Distance(p.Points[i-1])
		st[i] = total
	}
	if total == 0 {
		return st
	}
	for i := range st {
		st[i] /= total
	}
	return st
}

func (p *Polyline) PointAt(t float64) Vector3 {
	switch len(p.Points) {
	case 0:
		return Vector3{}
	case 1:
		return p.Points[0]
	}
	st := p.stations()
	i := sort.SearchFloat64s(st, t)
	switch {
	case i <= 0:
		i = 1
	case i >= len(st):
		i = len(st) - 1
	}
	span := st[i] - st[i-1]
	if span == 0 {
		return p.Points[i]
	}
	return p.Points[i-1].Lerp(p.Points[i], (t-st[i-1])/span)
}

func (p *Polyline) PlaneIntersection(pl Plane) []float64 {
	st := p.stations()
	var res []float64
	for i := 1; i < len(p.Points); i++ {
		d0 := pl.Distance(p.Points[i-1])
		d1 := pl.Distance(p.Points[i])
		if d0 == d1 || math.Signbit(d0) == math.Signbit(d1) && d0 != 0 && d1 != 0 {
			continue
		}
		s := d0 / (d0 - d1)
		res = append(res, st[i-1]+s*(st[i]-st[i-1]))
	}
	return res
}

func (p *Polyline) Clone() Curve {
	return NewPolyline(p.Points...)
}

func (p *Polyline) Trim(t0, t1 float64) Curve {
	st := p.stations()
	points := []Vector3{p.PointAt(t0)}
	for i, s := range st {
		if s > t0 && s < t1 {
			points = append(points, p.Points[i])
		}
	}
	points = append(points, p.PointAt(t1))
	return &Polyline{Points: points}
}
