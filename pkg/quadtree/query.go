package quadtree

import "github.com/philipparndt/gospatial/pkg/geometry"

// GetObjectsFromRect returns the items of every leaf touching r. Leaves are
// only skipped when they are disjoint from r, so items on a border are kept.
func (t *QuadTree[T]) GetObjectsFromRect(r geometry.Rect) []T {
	return t.gather(func(nr geometry.Rect) bool {
		return !geometry.DisjointRects(nr, r)
	}, nil)
}

// GetObjectsInsideRect is GetObjectsFromRect restricted to items whose
// extent lies completely inside r.
func (t *QuadTree[T]) GetObjectsInsideRect(r geometry.Rect) []T {
	return t.gather(func(nr geometry.Rect) bool {
		return !geometry.DisjointRects(nr, r)
	}, func(it T) bool {
		return r.ContainsRect(it.Extent())
	})
}

// GetObjectsCloseTo returns the items of every leaf the probe hits
func (t *QuadTree[T]) GetObjectsCloseTo(probe HitTester) []T {
	return t.gather(func(nr geometry.Rect) bool {
		return probe.HitTest(nr, false)
	}, nil)
}

// AllObjects returns every stored item once
func (t *QuadTree[T]) AllObjects() []T {
	return collect(t.root, map[T]struct{}{}, nil)
}

// Len returns the number of distinct items
func (t *QuadTree[T]) Len() int {
	return len(t.AllObjects())
}

// gather walks the nodes accepted by visit and collects leaf items passing
// keep. A nil keep accepts everything.
func (t *QuadTree[T]) gather(visit func(geometry.Rect) bool, keep func(T) bool) []T {
	var res []T
	seen := map[T]struct{}{}

	var walk func(n node[T])
	walk = func(n node[T]) {
		if !visit(n.bounds()) {
			return
		}
		switch n := n.(type) {
		case *leaf[T]:
			for _, it := range n.items {
				if _, ok := seen[it]; ok {
					continue
				}
				seen[it] = struct{}{}
				if keep == nil || keep(it) {
					res = append(res, it)
				}
			}
		case *branch[T]:
			for _, c := range n.children {
				walk(c)
			}
		}
	}
	walk(t.root)
	return res
}

// Action tells Iterate how to continue after visiting a node
type Action int

const (
	// BranchDone skips the children of the node
	BranchDone Action = iota
	// GoDeeper visits the children of a branch. On a leaf it is BranchDone.
	GoDeeper
	// GoDeeperAndSplit splits a leaf regardless of the split policy and
	// visits the new children.
	GoDeeperAndSplit
)

func (a Action) String() string {
	switch a {
	case BranchDone:
		return "branch_done"
	case GoDeeper:
		return "go_deeper"
	case GoDeeperAndSplit:
		return "go_deeper_and_split"
	default:
		return "unknown"
	}
}

// NodeInfo describes a node handed to an Iterate visitor
type NodeInfo[T Item] struct {
	Depth int
	Rect  geometry.Rect
	Leaf  bool
	// Items holds the distinct items stored in the node or anywhere below it
	Items []T
}

// Iterate visits the nodes depth first, parents before children, children
// in quadrant order. Nodes deeper than maxDepth are not visited; a negative
// maxDepth means no limit.
func (t *QuadTree[T]) Iterate(maxDepth int, visit func(NodeInfo[T]) Action) {
	t.root = t.iterate(t.root, 0, maxDepth, visit)
}

func (t *QuadTree[T]) iterate(n node[T], depth, maxDepth int, visit func(NodeInfo[T]) Action) node[T] {
	_, isLeaf := n.(*leaf[T])
	action := visit(NodeInfo[T]{
		Depth: depth,
		Rect:  n.bounds(),
		Leaf:  isLeaf,
		Items: collect(n, map[T]struct{}{}, nil),
	})
	if action == BranchDone || (maxDepth >= 0 && depth >= maxDepth) {
		return n
	}

	b, ok := n.(*branch[T])
	if !ok {
		if action != GoDeeperAndSplit {
			return n
		}
		b = split(n.(*leaf[T]))
		t.constrained = true
	}
	for i, c := range b.children {
		b.children[i] = t.iterate(c, depth+1, maxDepth, visit)
	}
	return b
}
