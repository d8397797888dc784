package quadtree

import "github.com/philipparndt/gospatial/pkg/geometry"

// HitTester answers whether something touches a rectangle. The answer must
// be monotone: an object missing a rectangle also misses every rectangle
// inside it.
type HitTester interface {
	// HitTest reports whether the object touches r. includeControlPoints
	// also counts construction points that are not part of the visible
	// outline.
	HitTest(r geometry.Rect, includeControlPoints bool) bool
}

// Item is what the tree stores. Items are compared with == unless the tree
// uses ByReference equality.
type Item interface {
	comparable
	HitTester
	// Extent returns the 2D bounds of the item. Items with an empty or
	// invalid extent are not indexed.
	Extent() geometry.Rect
}

// Referencer is implemented by wrapper items that stand for another object.
// The referenced object must be comparable.
type Referencer interface {
	ReferencedObject() any
}

// Equality selects how Remove recognises stored items
type Equality int

const (
	// ByIdentity matches items with ==
	ByIdentity Equality = iota
	// ByReference also matches two Referencer items pointing at the same object
	ByReference
)

func (e Equality) String() string {
	switch e {
	case ByIdentity:
		return "identity"
	case ByReference:
		return "reference"
	default:
		return "unknown"
	}
}

func sameItem[T Item](mode Equality, a, b T) bool {
	if a == b {
		return true
	}
	if mode != ByReference {
		return false
	}
	ra, ok := any(a).(Referencer)
	if !ok {
		return false
	}
	rb, ok := any(b).(Referencer)
	if !ok {
		return false
	}
	return ra.ReferencedObject() == rb.ReferencedObject()
}
