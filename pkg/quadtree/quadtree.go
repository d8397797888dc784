// Package quadtree implements an adaptive 2D spatial index over items with a
// rectangular extent.
//
// The tree is a covering structure, not a partition: an item is stored in
// every leaf whose rectangle it hit-tests, so it may appear in several
// siblings. Queries de-duplicate before returning.
//
// Before the first split the root rectangle simply follows the content. Once
// the root has been split it only grows, by doubling towards items that fall
// outside of it.
//
// A QuadTree is not safe for concurrent use.
package quadtree

import (
	"math"

	"github.com/philipparndt/gospatial/pkg/geometry"
)

// rootPadding is the share of the longer content side added around the
// root rectangle before the first split.
const rootPadding = 0.1

// QuadTree indexes items of type T by their 2D extent
type QuadTree[T Item] struct {
	root     node[T]
	policy   SplitPolicy
	equality Equality

	initial geometry.Rect
	hasHint bool

	// content is the union of all extents inserted while unconstrained
	content geometry.Rect
	// constrained is set by the first split and never cleared
	constrained bool
}

// New creates an empty tree
func New[T Item](opts ...Option) *QuadTree[T] {
	o := options{policy: FixedDepth(DefaultMaxListLen, DefaultMaxDepth)}
	for _, opt := range opts {
		opt(&o)
	}

	t := &QuadTree[T]{
		policy:   o.policy,
		equality: o.equality,
		initial:  o.initial,
		hasHint:  o.hasHint,
		content:  geometry.EmptyRect(),
	}
	r := geometry.EmptyRect()
	if o.hasHint {
		r = o.initial
	}
	t.root = &leaf[T]{rect: r}
	return t
}

// Rect returns the area covered by the root
func (t *QuadTree[T]) Rect() geometry.Rect {
	return t.root.bounds()
}

// Policy returns the split policy in use
func (t *QuadTree[T]) Policy() SplitPolicy {
	return t.policy
}

// Insert adds item to every leaf it hits, growing the root first if needed.
// Items with an empty or invalid extent are ignored.
func (t *QuadTree[T]) Insert(item T) {
	ext := item.Extent()
	if ext.IsEmpty() || !ext.IsValid() {
		return
	}

	if t.constrained {
		t.grow(ext)
	} else {
		t.fit(ext)
	}
	if !item.HitTest(t.root.bounds(), true) {
		return
	}
	t.root = t.insert(t.root, item, 0)
}

// fit recomputes the root rectangle of a tree that was never split
func (t *QuadTree[T]) fit(ext geometry.Rect) {
	t.content.MinMaxRect(ext)
	l := t.root.(*leaf[T])

	if t.hasHint && l.rect.ContainsRect(t.content) {
		return
	}
	r := t.content
	if t.hasHint {
		r = geometry.UnionRect(t.initial, t.content)
	}
	l.rect = pad(r)
}

// pad grows r by a tenth of its longer side. A single point gets a margin
// relative to its distance from the origin, or 0.1 at the origin itself.
func pad(r geometry.Rect) geometry.Rect {
	size := math.Max(r.Width(), r.Height())
	if size == 0 {
		c := r.Center()
		size = math.Max(math.Abs(c.X), math.Abs(c.Y))
	}
	if size == 0 {
		size = 1
	}
	d := size * rootPadding
	return r.Inflate(d, d)
}

// grow doubles the root towards ext until it covers ext. The old root
// becomes the quadrant facing away from the growth direction and its corner
// is the split point, so the siblings tile the new root exactly.
func (t *QuadTree[T]) grow(ext geometry.Rect) {
	for !t.root.bounds().ContainsRect(ext) {
		r := t.root.bounds()
		w, h := r.Width(), r.Height()
		if w <= 0 {
			w = math.Max(h, 1)
		}
		if h <= 0 {
			h = math.Max(w, 1)
		}

		left := ext.MinX < r.MinX
		down := ext.MinY < r.MinY
		var grown geometry.Rect
		var corner geometry.Vector2
		var slot int
		switch {
		case left && down:
			grown = geometry.Rect{MinX: r.MinX - w, MaxX: r.MaxX, MinY: r.MinY - h, MaxY: r.MaxY}
			corner, slot = geometry.NewVector2(r.MinX, r.MinY), 0
		case left:
			grown = geometry.Rect{MinX: r.MinX - w, MaxX: r.MaxX, MinY: r.MinY, MaxY: r.MaxY + h}
			corner, slot = geometry.NewVector2(r.MinX, r.MaxY), 3
		case down:
			grown = geometry.Rect{MinX: r.MinX, MaxX: r.MaxX + w, MinY: r.MinY - h, MaxY: r.MaxY}
			corner, slot = geometry.NewVector2(r.MaxX, r.MinY), 1
		default:
			grown = geometry.Rect{MinX: r.MinX, MaxX: r.MaxX + w, MinY: r.MinY, MaxY: r.MaxY + h}
			corner, slot = geometry.NewVector2(r.MaxX, r.MaxY), 2
		}

		b := newBranch[T](grown, corner)
		b.children[slot] = t.root
		t.root = b
	}
}

func (t *QuadTree[T]) insert(n node[T], item T, depth int) node[T] {
	switch n := n.(type) {
	case *branch[T]:
		for i, c := range n.children {
			if item.HitTest(c.bounds(), true) {
				n.children[i] = t.insert(c, item, depth+1)
			}
		}
		return n
	case *leaf[T]:
		if t.policy.shouldSplit(len(n.items), depth) {
			t.constrained = true
			return t.insert(split(n), item, depth)
		}
		n.items = append(n.items, item)
		return n
	}
	return n
}

// Remove deletes every stored occurrence of item and reports whether there
// was one. Branches left with four empty leaves collapse into an empty leaf.
// The root rectangle is kept.
func (t *QuadTree[T]) Remove(item T) bool {
	var removed bool
	t.root, removed = t.remove(t.root, item)
	return removed
}

func (t *QuadTree[T]) remove(n node[T], item T) (node[T], bool) {
	if !item.HitTest(n.bounds(), true) {
		return n, false
	}
	switch n := n.(type) {
	case *leaf[T]:
		kept := n.items[:0]
		removed := false
		for _, it := range n.items {
			if sameItem(t.equality, it, item) {
				removed = true
				continue
			}
			kept = append(kept, it)
		}
		clear(n.items[len(kept):])
		n.items = kept
		return n, removed
	case *branch[T]:
		removed := false
		for i, c := range n.children {
			var r bool
			n.children[i], r = t.remove(c, item)
			removed = removed || r
		}
		if removed && n.isEmpty() {
			return &leaf[T]{rect: n.rect}, true
		}
		return n, removed
	}
	return n, false
}
