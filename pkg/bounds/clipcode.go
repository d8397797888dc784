package bounds

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/philipparndt/gospatial/pkg/geometry"
)

// ErrTypeUnreachable marks a broken internal invariant of the clipper
const ErrTypeUnreachable = "bounds_unreachable"

// maxClipSteps bounds the clip loop. Each step resolves one face, so a
// well-formed segment needs at most 6 per endpoint.
const maxClipSteps = 16

// ClipCode has one bit for each face of a box that a point lies beyond
type ClipCode uint8

const (
	Left ClipCode = 1 << iota
	Right
	Bottom
	Top
	Front
	Back
)

// Inside is the code of a point inside the box or on its border
const Inside ClipCode = 0

// ClipCode returns the outcode of p. Comparisons are strict, so a point on a
// face has code 0.
func (b Box) ClipCode(p geometry.Vector3) ClipCode {
	var c ClipCode
	if p.X < b.MinX {
		c |= Left
	} else if p.X > b.MaxX {
		c |= Right
	}
	if p.Y < b.MinY {
		c |= Bottom
	} else if p.Y > b.MaxY {
		c |= Top
	}
	if p.Z < b.MinZ {
		c |= Front
	} else if p.Z > b.MaxZ {
		c |= Back
	}
	return c
}

// clipCodes returns the outcodes of all points, their bitwise AND and
// whether any point is inside.
func (b Box) clipCodes(points []geometry.Vector3) (codes []ClipCode, and ClipCode, anyInside bool) {
	codes = make([]ClipCode, len(points))
	and = Left | Right | Bottom | Top | Front | Back
	for i, p := range points {
		codes[i] = b.ClipCode(p)
		and &= codes[i]
		if codes[i] == Inside {
			anyInside = true
		}
	}
	return codes, and, anyInside
}

// clip runs the Cohen-Sutherland loop on the segment from *s to *e with the
// given outcodes. On success the endpoints are moved onto the part inside the
// box. On failure they are left in an undefined intermediate state.
func (b Box) clip(s, e *geometry.Vector3, cs, ce ClipCode) bool {
	for step := 0; step < maxClipSteps; step++ {
		if cs|ce == Inside {
			return true
		}
		if cs&ce != 0 {
			return false
		}
		if cs != Inside {
			*s = b.clipToFace(*s, *e, cs)
			cs = b.ClipCode(*s)
		} else {
			*e = b.clipToFace(*e, *s, ce)
			ce = b.ClipCode(*e)
		}
	}
	// numerical ping-pong on a degenerate segment
	return false
}

// clipToFace moves p along the segment towards q onto the first face flagged
// in code. The coordinate of that face is set exactly to avoid round-off
// flipping the code back.
func (b Box) clipToFace(p, q geometry.Vector3, code ClipCode) geometry.Vector3 {
	d := q.Sub(p)
	switch {
	case code&Left != 0:
		p = p.Add(d.Mul((b.MinX - p.X) / d.X))
		p.X = b.MinX
	case code&Right != 0:
		p = p.Add(d.Mul((b.MaxX - p.X) / d.X))
		p.X = b.MaxX
	case code&Bottom != 0:
		p = p.Add(d.Mul((b.MinY - p.Y) / d.Y))
		p.Y = b.MinY
	case code&Top != 0:
		p = p.Add(d.Mul((b.MaxY - p.Y) / d.Y))
		p.Y = b.MaxY
	case code&Front != 0:
		p = p.Add(d.Mul((b.MinZ - p.Z) / d.Z))
		p.Z = b.MinZ
	case code&Back != 0:
		p = p.Add(d.Mul((b.MaxZ - p.Z) / d.Z))
		p.Z = b.MaxZ
	default:
		panic(errors.New("clip code has no face bit").
			WithType(ErrTypeUnreachable).
			WithTag("code", int(code)))
	}
	return p
}

// interferesSegment tests a segment whose outcodes are already known
func (b Box) interferesSegment(s, e geometry.Vector3, cs, ce ClipCode) bool {
	if cs&ce != 0 {
		return false
	}
	if cs == Inside || ce == Inside {
		return true
	}
	return b.clip(&s, &e, cs, ce)
}

// InterferesSegment reports whether the segment from s to e touches the box
func (b Box) InterferesSegment(s, e geometry.Vector3) bool {
	return b.interferesSegment(s, e, b.ClipCode(s), b.ClipCode(e))
}

// ClipLine clips the segment from *start to *end to the box. It returns false
// and leaves the endpoints untouched when the segment misses the box.
func (b Box) ClipLine(start, end *geometry.Vector3) bool {
	s, e := *start, *end
	if !b.clip(&s, &e, b.ClipCode(s), b.ClipCode(e)) {
		return false
	}
	*start, *end = s, e
	return true
}
