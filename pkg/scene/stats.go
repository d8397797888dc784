package scene

import (
	"github.com/philipparndt/gospatial/pkg/geometry"
	"github.com/philipparndt/gospatial/pkg/quadtree"
)

// IndexStats describes the shape of the screen index
type IndexStats struct {
	Policy       string        `json:"policy"`
	Root         geometry.Rect `json:"root"`
	Facets       int           `json:"facets"`
	Culled       int           `json:"culled"`
	Nodes        int           `json:"nodes"`
	Leaves       int           `json:"leaves"`
	EmptyLeaves  int           `json:"empty_leaves"`
	Depth        int           `json:"depth"`
	MaxLeafItems int           `json:"max_leaf_items"`
	// Stored counts every facet once per leaf it is stored in
	Stored int `json:"stored"`
}

// Stats walks the screen index down to maxDepth. A negative maxDepth walks
// the whole tree.
func (s *Scene) Stats(maxDepth int) IndexStats {
	st := IndexStats{
		Policy: s.index.Policy().String(),
		Root:   s.index.Rect(),
		Facets: s.index.Len(),
		Culled: s.culled,
	}
	s.index.Iterate(maxDepth, func(n quadtree.NodeInfo[*Facet]) quadtree.Action {
		st.Nodes++
		st.Depth = max(st.Depth, n.Depth)
		if !n.Leaf {
			return quadtree.GoDeeper
		}
		st.Leaves++
		st.Stored += len(n.Items)
		st.MaxLeafItems = max(st.MaxLeafItems, len(n.Items))
		if len(n.Items) == 0 {
			st.EmptyLeaves++
		}
		return quadtree.BranchDone
	})
	return st
}

// Refine splits every leaf above depth that holds more than maxItems facets,
// regardless of the split policy, and returns the number of splits.
func (s *Scene) Refine(depth, maxItems int) int {
	splits := 0
	s.index.Iterate(depth, func(n quadtree.NodeInfo[*Facet]) quadtree.Action {
		if !n.Leaf {
			return quadtree.GoDeeper
		}
		if n.Depth < depth && len(n.Items) > maxItems {
			splits++
			return quadtree.GoDeeperAndSplit
		}
		return quadtree.BranchDone
	})
	return splits
}
