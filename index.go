package markers

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"math/rand"
)

// Index tracks markers over a document as ranges of points.
//
// Internally, an Index is a treap of boundary nodes. Positions are never
// stored in absolute terms; every node stores a displacement relative to an
// ancestor, so an edit shifts all following positions by re-anchoring a
// single node.
//
//	Operation         |  expected time
//	------------------+---------------------------
//	Insert / Delete   |  O(log n)
//	Splice            |  O(log n + k), k = markers touched by the edit
//	Find…             |  O(log n + k), k = size of result
//	GetRange          |  O(log n), O(1) if cached
//
// An Index created by New is empty. The zero value is not usable.
type Index struct {
	root       nodeRef
	nodes      arena
	startNodes map[MarkerID]nodeRef
	endNodes   map[MarkerID]nodeRef
	exclusive  IDSet
	random     *rand.Rand
	positions  map[nodeRef]Point // cache of absolute node positions, dropped on splice
	cursor     cursor
}

// Option configures an Index.
type Option func(*Index)

// WithSeed seeds the random source used for balancing the tree. Indexes
// with identical seeds, fed with identical operations, have identical shape.
func WithSeed(seed int64) Option {
	return func(ix *Index) {
		ix.random = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used for balancing the tree.
func WithRand(r *rand.Rand) Option {
	return func(ix *Index) {
		if r != nil {
			ix.random = r
		}
	}
}

// New creates an empty marker index. Without options, the random source is
// seeded with 0.
func New(opts ...Option) *Index {
	ix := &Index{
		nodes:      newArena(),
		startNodes: make(map[MarkerID]nodeRef),
		endNodes:   make(map[MarkerID]nodeRef),
		exclusive:  make(IDSet),
		positions:  make(map[nodeRef]Point),
	}
	for _, opt := range opts {
		opt(ix)
	}
	if ix.random == nil {
		ix.random = rand.New(rand.NewSource(0))
	}
	ix.cursor.ix = ix
	return ix
}

// Len returns the number of markers in the index.
func (ix *Index) Len() int {
	return len(ix.startNodes)
}

// Has reports whether a marker with the given id is present.
func (ix *Index) Has(id MarkerID) bool {
	_, ok := ix.startNodes[id]
	return ok
}

// Insert adds a marker spanning from start to end. A marker with start
// equal to end is an empty marker at a single position.
//
// It is an error to insert an id twice or to pass an inverted range.
func (ix *Index) Insert(id MarkerID, start, end Point) error {
	if err := checkRange("insert", start, end); err != nil {
		return err
	}
	if ix.Has(id) {
		T().Errorf("insert: marker %d already present", id)
		return fmt.Errorf("%w: marker %d already present", ErrInvalidArgument, id)
	}
	startNode := ix.cursor.insertMarkerStart(id, start, end)
	endNode := ix.cursor.insertMarkerEnd(id, start, end)
	ix.positions[startNode] = start
	ix.positions[endNode] = end

	ix.nodes.at(startNode).startMarkers.add(id)
	ix.nodes.at(endNode).endMarkers.add(id)
	ix.reprioritize(startNode)
	ix.reprioritize(endNode)

	ix.startNodes[id] = startNode
	ix.endNodes[id] = endNode
	T().Debugf("insert: marker %d at %s – %s", id, start, end)
	return nil
}

// reprioritize draws a fresh priority for ref and moves it to where heap
// order requires it to be.
func (ix *Index) reprioritize(ref nodeRef) {
	ix.nodes.at(ref).priority = ix.random.Int63n(maxPriority)
	ix.bubbleUp(ref)
	ix.bubbleDown(ref)
}

// Delete removes a marker from the index.
func (ix *Index) Delete(id MarkerID) error {
	startNode, ok := ix.startNodes[id]
	if !ok {
		T().Errorf("delete: unknown marker %d", id)
		return fmt.Errorf("%w: delete marker %d", ErrNotFound, id)
	}
	endNode := ix.endNodes[id]

	for ref := startNode; ref != nilNode; ref = ix.nodes.at(ref).parent {
		ix.nodes.at(ref).rightMarkers.remove(id)
	}
	for ref := endNode; ref != nilNode; ref = ix.nodes.at(ref).parent {
		ix.nodes.at(ref).leftMarkers.remove(id)
	}
	ix.nodes.at(startNode).startMarkers.remove(id)
	ix.nodes.at(endNode).endMarkers.remove(id)

	if !ix.nodes.at(startNode).isMarkerEndpoint() {
		ix.deleteNode(startNode)
	}
	if endNode != startNode && !ix.nodes.at(endNode).isMarkerEndpoint() {
		ix.deleteNode(endNode)
	}
	delete(ix.startNodes, id)
	delete(ix.endNodes, id)
	ix.exclusive.remove(id)
	T().Debugf("delete: marker %d", id)
	return nil
}

// SetExclusive sets whether text inserted exactly at a boundary of a marker
// is excluded from it (exclusive) or absorbed into it (inclusive, the
// default). The flag is only relevant for Splice.
func (ix *Index) SetExclusive(id MarkerID, exclusive bool) error {
	if !ix.Has(id) {
		T().Errorf("set-exclusive: unknown marker %d", id)
		return fmt.Errorf("%w: set exclusive for marker %d", ErrNotFound, id)
	}
	if exclusive {
		ix.exclusive.add(id)
	} else {
		ix.exclusive.remove(id)
	}
	return nil
}

// IsExclusive reports whether a marker is exclusive. Unknown markers are
// not exclusive.
func (ix *Index) IsExclusive(id MarkerID) bool {
	return ix.exclusive.Contains(id)
}

// Exclusive returns the set of exclusive markers.
func (ix *Index) Exclusive() IDSet {
	s := make(IDSet, len(ix.exclusive))
	s.addAll(ix.exclusive)
	return s
}

// GetRange returns the current range of a marker.
func (ix *Index) GetRange(id MarkerID) (Range, error) {
	startNode, ok := ix.startNodes[id]
	if !ok {
		return Range{}, fmt.Errorf("%w: range of marker %d", ErrNotFound, id)
	}
	return Range{
		Start: ix.nodePosition(startNode),
		End:   ix.nodePosition(ix.endNodes[id]),
	}, nil
}

// GetStart returns the current start position of a marker.
func (ix *Index) GetStart(id MarkerID) (Point, error) {
	startNode, ok := ix.startNodes[id]
	if !ok {
		return Point{}, fmt.Errorf("%w: start of marker %d", ErrNotFound, id)
	}
	return ix.nodePosition(startNode), nil
}

// GetEnd returns the current end position of a marker.
func (ix *Index) GetEnd(id MarkerID) (Point, error) {
	endNode, ok := ix.endNodes[id]
	if !ok {
		return Point{}, fmt.Errorf("%w: end of marker %d", ErrNotFound, id)
	}
	return ix.nodePosition(endNode), nil
}

// Compare orders two markers by ascending start and, for equal starts, by
// descending end. It returns -1, 0 or 1.
func (ix *Index) Compare(id1, id2 MarkerID) (int, error) {
	r1, err := ix.GetRange(id1)
	if err != nil {
		return 0, err
	}
	r2, err := ix.GetRange(id2)
	if err != nil {
		return 0, err
	}
	if cmp := r1.Start.Compare(r2.Start); cmp != 0 {
		return cmp, nil
	}
	return r2.End.Compare(r1.End), nil
}

// Dump returns a snapshot of the ranges of all markers.
func (ix *Index) Dump() map[MarkerID]Range {
	return ix.cursor.dump()
}

// Depth returns the height of the tree, 0 for an empty index.
func (ix *Index) Depth() int {
	var depth func(nodeRef) int
	depth = func(ref nodeRef) int {
		if ref == nilNode {
			return 0
		}
		n := ix.nodes.at(ref)
		return 1 + max(depth(n.left), depth(n.right))
	}
	return depth(ix.root)
}

// nodePosition computes the absolute position of a node by walking up to
// the root.
func (ix *Index) nodePosition(ref nodeRef) Point {
	if p, ok := ix.positions[ref]; ok {
		return p
	}
	cur, n := ref, ix.nodes.at(ref)
	position := n.leftExtent
	for n.parent != nilNode {
		parent := ix.nodes.at(n.parent)
		if parent.right == cur {
			position = compose(parent.leftExtent, position)
		}
		cur, n = n.parent, parent
	}
	p := Point(position)
	ix.positions[ref] = p
	return p
}
