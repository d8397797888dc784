package quadtree

import "github.com/philipparndt/gospatial/pkg/geometry"

// Default split limits
const (
	DefaultMaxListLen = 20
	DefaultMaxDepth   = 8
)

// dynamicDepthLimit keeps 1<<depth from overflowing
const dynamicDepthLimit = 30

// SplitPolicy decides when a leaf becomes a branch
type SplitPolicy struct {
	// MaxListLen is the number of items a leaf holds before it splits
	MaxListLen int
	// MaxDepth is the deepest level that may still be split
	MaxDepth int
	// Dynamic ignores both limits and splits a leaf at depth d once it
	// holds more than 2^d items.
	Dynamic bool
}

// FixedDepth splits a leaf holding maxListLen items as long as it is above
// maxDepth.
func FixedDepth(maxListLen, maxDepth int) SplitPolicy {
	if maxListLen < 1 {
		maxListLen = 1
	}
	return SplitPolicy{MaxListLen: maxListLen, MaxDepth: maxDepth}
}

// DynamicDepth lets the allowed leaf size double with every level
func DynamicDepth() SplitPolicy {
	return SplitPolicy{Dynamic: true}
}

func (p SplitPolicy) shouldSplit(count, depth int) bool {
	if p.Dynamic {
		return depth < dynamicDepthLimit && count > 1<<depth
	}
	return count >= p.MaxListLen && depth < p.MaxDepth
}

func (p SplitPolicy) String() string {
	if p.Dynamic {
		return "dynamic"
	}
	return "fixed"
}

// Option configures a QuadTree
type Option func(*options)

type options struct {
	policy   SplitPolicy
	equality Equality
	initial  geometry.Rect
	hasHint  bool
}

// WithSplitPolicy replaces the default FixedDepth(20, 8)
func WithSplitPolicy(p SplitPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithEquality sets how Remove matches items
func WithEquality(e Equality) Option {
	return func(o *options) {
		o.equality = e
	}
}

// WithInitialRect starts the root with r. The root keeps this rectangle as
// long as it covers everything inserted before the first split. Empty or
// degenerate rectangles are ignored.
func WithInitialRect(r geometry.Rect) Option {
	return func(o *options) {
		if r.IsEmpty() || !r.IsValid() || r.Width() <= 0 || r.Height() <= 0 {
			return
		}
		o.initial = r
		o.hasHint = true
	}
}
