package markers

import (
	"maps"
	"slices"
)

// MarkerID identifies a marker within an Index.
type MarkerID uint64

// IDSet is an unordered set of marker ids.
type IDSet map[MarkerID]struct{}

// Contains reports whether id is a member of s.
func (s IDSet) Contains(id MarkerID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids in s.
func (s IDSet) Len() int {
	return len(s)
}

// Sorted returns the members of s in ascending order.
func (s IDSet) Sorted() []MarkerID {
	return slices.Sorted(maps.Keys(s))
}

func (s IDSet) add(id MarkerID) {
	s[id] = struct{}{}
}

func (s IDSet) remove(id MarkerID) {
	delete(s, id)
}

func (s IDSet) addAll(other IDSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// --- Boundary nodes --------------------------------------------------------

// nodeRef addresses a node in the arena of an Index. nilNode is the zero
// value and never refers to a live node.
type nodeRef int32

const nilNode nodeRef = 0

// priorities are drawn from [0, maxPriority); the values outside of this
// interval are reserved for nodes pinned during a splice and for nodes about
// to be removed.
const (
	maxPriority      int64 = 1<<31 - 1
	infinitePriority int64 = 1<<63 - 1
)

// node is a boundary position in use as the start and/or end of markers.
//
// leftExtent is the displacement of the node's position from its left
// ancestor, i.e. the closest ancestor whose right subtree contains the node
// (the document origin if there is none).
type node struct {
	parent, left, right nodeRef
	leftExtent          Extent
	leftMarkers         IDSet // markers spanning from the left ancestor up to here
	rightMarkers        IDSet // markers spanning from here up to the right ancestor
	startMarkers        IDSet
	endMarkers          IDSet
	priority            int64
}

func (n *node) isMarkerEndpoint() bool {
	return len(n.startMarkers)+len(n.endMarkers) > 0
}

// arena owns all the nodes of a tree. Links between nodes are arena
// indices; slots of removed nodes are recycled.
type arena struct {
	nodes []*node // nodes[0] is a placeholder for nilNode
	free  []nodeRef
}

func newArena() arena {
	return arena{nodes: []*node{nil}}
}

func (a *arena) alloc(parent nodeRef, leftExtent Extent) nodeRef {
	n := &node{
		parent:       parent,
		leftExtent:   leftExtent,
		leftMarkers:  make(IDSet),
		rightMarkers: make(IDSet),
		startMarkers: make(IDSet),
		endMarkers:   make(IDSet),
	}
	if k := len(a.free); k > 0 {
		ref := a.free[k-1]
		a.free = a.free[:k-1]
		a.nodes[ref] = n
		return ref
	}
	a.nodes = append(a.nodes, n)
	return nodeRef(len(a.nodes) - 1)
}

func (a *arena) release(ref nodeRef) {
	assert(ref != nilNode && a.nodes[ref] != nil, "arena: release of a dead node")
	a.nodes[ref] = nil
	a.free = append(a.free, ref)
}

// at returns the node for ref. It must not be called with nilNode.
func (a *arena) at(ref nodeRef) *node {
	return a.nodes[ref]
}

func (a *arena) live() int {
	return len(a.nodes) - 1 - len(a.free)
}
