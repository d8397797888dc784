package quadtree

import "github.com/philipparndt/gospatial/pkg/geometry"

// node is either a *leaf or a *branch
type node[T Item] interface {
	bounds() geometry.Rect
}

type leaf[T Item] struct {
	rect  geometry.Rect
	items []T
}

// branch children are in quadrant order: top-right, top-left, bottom-left,
// bottom-right.
type branch[T Item] struct {
	rect     geometry.Rect
	children [4]node[T]
}

func (l *leaf[T]) bounds() geometry.Rect   { return l.rect }
func (b *branch[T]) bounds() geometry.Rect { return b.rect }

// newBranch creates a branch of four empty leaves meeting at c
func newBranch[T Item](r geometry.Rect, c geometry.Vector2) *branch[T] {
	b := &branch[T]{rect: r}
	for i := range b.children {
		b.children[i] = &leaf[T]{rect: r.QuadrantAround(c, i)}
	}
	return b
}

// split turns l into a branch and hands every item to each quadrant it hits
func split[T Item](l *leaf[T]) *branch[T] {
	b := newBranch[T](l.rect, l.rect.Center())
	for _, c := range b.children {
		child := c.(*leaf[T])
		for _, it := range l.items {
			if it.HitTest(child.rect, true) {
				child.items = append(child.items, it)
			}
		}
	}
	return b
}

// isEmpty reports whether all four children are leaves without items
func (b *branch[T]) isEmpty() bool {
	for _, c := range b.children {
		l, ok := c.(*leaf[T])
		if !ok || len(l.items) > 0 {
			return false
		}
	}
	return true
}

// collect appends the items below n, skipping those already in seen
func collect[T Item](n node[T], seen map[T]struct{}, res []T) []T {
	switch n := n.(type) {
	case *leaf[T]:
		for _, it := range n.items {
			if _, ok := seen[it]; ok {
				continue
			}
			seen[it] = struct{}{}
			res = append(res, it)
		}
	case *branch[T]:
		for _, c := range n.children {
			res = collect(c, seen, res)
		}
	}
	return res
}
