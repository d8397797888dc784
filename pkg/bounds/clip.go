package bounds

import (
	"sort"

	"github.com/philipparndt/gospatial/pkg/geometry"
)

// parameterEpsilon merges curve parameters closer than this
const parameterEpsilon = 1e-10

// Clip splits c at the six box planes and returns the pieces inside the box,
// in curve order. A curve completely inside comes back as a single clone.
func (b Box) Clip(c geometry.Curve) []geometry.Curve {
	params := []float64{0, 1}
	for _, pl := range b.Planes() {
		for _, t := range c.PlaneIntersection(pl) {
			if t > 0 && t < 1 {
				params = append(params, t)
			}
		}
	}
	sort.Float64s(params)

	var spans [][2]float64
	for i := 1; i < len(params); i++ {
		t0, t1 := params[i-1], params[i]
		if t1-t0 < parameterEpsilon {
			continue
		}
		if !b.Contains(c.PointAt((t0 + t1) / 2)) {
			continue
		}
		if n := len(spans); n > 0 && t0-spans[n-1][1] < parameterEpsilon {
			spans[n-1][1] = t1
			continue
		}
		spans = append(spans, [2]float64{t0, t1})
	}

	res := make([]geometry.Curve, 0, len(spans))
	for _, s := range spans {
		if s[0] == 0 && s[1] == 1 {
			res = append(res, c.Clone())
			continue
		}
		res = append(res, c.Trim(s[0], s[1]))
	}
	return res
}
