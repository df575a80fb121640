package markers

import "fmt"

// Check validates structural invariants of the index: parent links, search
// tree order of positions, heap order of priorities, and consistency of
// the marker tables with the node sets.
//
// Check is meant to be used in tests. It does not verify the left/right
// marker sets; use queries against a model for that.
func (ix *Index) Check() error {
	if ix == nil {
		return fmt.Errorf("%w: nil index", ErrCorrupted)
	}
	if ix.root == nilNode {
		if len(ix.startNodes) != 0 || len(ix.endNodes) != 0 {
			return fmt.Errorf("%w: empty tree with %d markers", ErrCorrupted, len(ix.startNodes))
		}
		return nil
	}
	if ix.nodes.at(ix.root).parent != nilNode {
		return fmt.Errorf("%w: root has a parent", ErrCorrupted)
	}
	chk := checker{ix: ix, previous: Point{Line: -1}}
	if err := chk.checkNode(ix.root, Point{}); err != nil {
		return err
	}
	if chk.count != ix.nodes.live() {
		return fmt.Errorf("%w: %d nodes reachable, %d allocated", ErrCorrupted, chk.count, ix.nodes.live())
	}
	for id, ref := range ix.startNodes {
		if n := ix.nodes.at(ref); n == nil || !n.startMarkers.Contains(id) {
			return fmt.Errorf("%w: start node of marker %d does not list it", ErrCorrupted, id)
		}
		endRef, ok := ix.endNodes[id]
		if !ok {
			return fmt.Errorf("%w: marker %d has no end node", ErrCorrupted, id)
		}
		if n := ix.nodes.at(endRef); n == nil || !n.endMarkers.Contains(id) {
			return fmt.Errorf("%w: end node of marker %d does not list it", ErrCorrupted, id)
		}
		if ix.nodePosition(ref).Compare(ix.nodePosition(endRef)) > 0 {
			return fmt.Errorf("%w: marker %d ends before it starts", ErrCorrupted, id)
		}
	}
	if chk.starts != len(ix.startNodes) || chk.ends != len(ix.endNodes) {
		return fmt.Errorf("%w: node sets list %d starts and %d ends for %d markers",
			ErrCorrupted, chk.starts, chk.ends, len(ix.startNodes))
	}
	return nil
}

type checker struct {
	ix       *Index
	previous Point // position of the in-order predecessor
	count    int
	starts   int
	ends     int
}

// checkNode walks the subtree at ref in order; leftAncestor is the position
// the node's left extent is relative to.
func (chk *checker) checkNode(ref nodeRef, leftAncestor Point) error {
	n := chk.ix.nodes.at(ref)
	if n == nil {
		return fmt.Errorf("%w: link to released node %d", ErrCorrupted, ref)
	}
	position := Advance(leftAncestor, n.leftExtent)
	for _, child := range []nodeRef{n.left, n.right} {
		if child == nilNode {
			continue
		}
		c := chk.ix.nodes.at(child)
		if c == nil {
			return fmt.Errorf("%w: link to released node %d", ErrCorrupted, child)
		}
		if c.parent != ref {
			return fmt.Errorf("%w: broken parent link at node %d", ErrCorrupted, child)
		}
		if c.priority < n.priority {
			return fmt.Errorf("%w: heap order violated at %s", ErrCorrupted, position)
		}
	}
	if n.left != nilNode {
		if err := chk.checkNode(n.left, leftAncestor); err != nil {
			return err
		}
	}
	if position.Compare(chk.previous) <= 0 {
		return fmt.Errorf("%w: node at %s follows node at %s", ErrCorrupted, position, chk.previous)
	}
	if !n.isMarkerEndpoint() {
		return fmt.Errorf("%w: node at %s is not a marker boundary", ErrCorrupted, position)
	}
	chk.previous = position
	chk.count++
	chk.starts += len(n.startMarkers)
	chk.ends += len(n.endMarkers)
	if n.right != nilNode {
		return chk.checkNode(n.right, position)
	}
	return nil
}
