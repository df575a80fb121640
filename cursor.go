package markers

// cursor walks the tree of an Index, reconstructing absolute positions from
// the relative left extents of the nodes it visits.
//
// A cursor is re-used for every traversal; each traversal starts with
// reset, as rotations between traversals invalidate whatever positions a
// previous walk has computed.
type cursor struct {
	ix            *Index
	current       nodeRef
	position      Point // absolute position of current
	leftAncestor  Point // position of closest ancestor to the left (origin if none)
	rightAncestor Point // position of closest ancestor to the right (MaxPoint if none)
	leftStack     []Point
	rightStack    []Point
}

func (c *cursor) reset() {
	c.current = c.ix.root
	if c.current != nilNode {
		c.position = Point(c.node().leftExtent)
	} else {
		c.position = Point{}
	}
	c.leftAncestor = Point{}
	c.rightAncestor = MaxPoint
	c.leftStack = c.leftStack[:0]
	c.rightStack = c.rightStack[:0]
}

func (c *cursor) node() *node {
	return c.ix.nodes.at(c.current)
}

// --- Insertion -------------------------------------------------------------

// insertMarkerStart finds or creates the node at start. Every node on the
// search path which the marker spans to the right is tagged with id.
func (c *cursor) insertMarkerStart(id MarkerID, start, end Point) nodeRef {
	c.reset()
	if c.current == nilNode {
		c.ix.root = c.ix.nodes.alloc(nilNode, Extent(start))
		return c.ix.root
	}
	for {
		switch cmp := start.Compare(c.position); {
		case cmp == 0:
			c.markRight(id, start, end)
			return c.current
		case cmp < 0:
			c.markRight(id, start, end)
			if c.node().left == nilNode {
				c.insertLeftChild(start)
				c.descendLeft()
				c.markRight(id, start, end)
				return c.current
			}
			c.descendLeft()
		default:
			if c.node().right == nilNode {
				c.insertRightChild(start)
				c.descendRight()
				c.markRight(id, start, end)
				return c.current
			}
			c.descendRight()
		}
	}
}

// insertMarkerEnd finds or creates the node at end. Every node on the
// search path which the marker spans to the left is tagged with id.
func (c *cursor) insertMarkerEnd(id MarkerID, start, end Point) nodeRef {
	c.reset()
	if c.current == nilNode {
		c.ix.root = c.ix.nodes.alloc(nilNode, Extent(end))
		return c.ix.root
	}
	for {
		switch cmp := end.Compare(c.position); {
		case cmp == 0:
			c.markLeft(id, start, end)
			return c.current
		case cmp < 0:
			if c.node().left == nilNode {
				c.insertLeftChild(end)
				c.descendLeft()
				c.markLeft(id, start, end)
				return c.current
			}
			c.descendLeft()
		default:
			c.markLeft(id, start, end)
			if c.node().right == nilNode {
				c.insertRightChild(end)
				c.descendRight()
				c.markLeft(id, start, end)
				return c.current
			}
			c.descendRight()
		}
	}
}

// insertSpliceBoundary finds or creates a node at position. If
// isInsertionEnd is set, an existing node at position is not re-used;
// instead a new node is created as its in-order successor.
func (c *cursor) insertSpliceBoundary(position Point, isInsertionEnd bool) nodeRef {
	c.reset()
	for {
		cmp := position.Compare(c.position)
		if cmp == 0 && !isInsertionEnd {
			return c.current
		}
		if cmp < 0 {
			if c.node().left == nilNode {
				c.insertLeftChild(position)
				return c.node().left
			}
			c.descendLeft()
		} else {
			if c.node().right == nilNode {
				c.insertRightChild(position)
				return c.node().right
			}
			c.descendRight()
		}
	}
}

func (c *cursor) insertLeftChild(position Point) {
	child := c.ix.nodes.alloc(c.current, Difference(position, c.leftAncestor))
	c.node().left = child
}

func (c *cursor) insertRightChild(position Point) {
	child := c.ix.nodes.alloc(c.current, Difference(position, c.position))
	c.node().right = child
}

// markLeft tags the current node if the marker spans from its left
// ancestor up to it.
func (c *cursor) markLeft(id MarkerID, start, end Point) {
	if !c.position.IsZero() && start.Compare(c.leftAncestor) <= 0 && c.position.Compare(end) <= 0 {
		c.node().leftMarkers.add(id)
	}
}

// markRight tags the current node if the marker spans from it up to its
// right ancestor.
func (c *cursor) markRight(id MarkerID, start, end Point) {
	if c.leftAncestor.Compare(start) < 0 && start.Compare(c.position) <= 0 &&
		c.rightAncestor.Compare(end) <= 0 {
		c.node().rightMarkers.add(id)
	}
}

// --- Queries ---------------------------------------------------------------

func (c *cursor) findIntersecting(start, end Point, result IDSet) {
	c.reset()
	if c.current == nilNode {
		return
	}
	for {
		c.cacheNodePosition()
		if start.Compare(c.position) < 0 {
			if c.node().left == nilNode {
				break
			}
			c.checkIntersection(start, end, result)
			c.descendLeft()
		} else {
			if c.node().right == nilNode {
				break
			}
			c.checkIntersection(start, end, result)
			c.descendRight()
		}
	}
	for {
		c.checkIntersection(start, end, result)
		c.moveToSuccessor()
		if c.current == nilNode {
			break
		}
		c.cacheNodePosition()
		if c.position.Compare(end) > 0 {
			break
		}
	}
}

func (c *cursor) findContaining(position Point, result IDSet) {
	c.reset()
	if c.current == nilNode {
		return
	}
	for {
		c.checkIntersection(position, position, result)
		c.cacheNodePosition()
		if position.Compare(c.position) < 0 {
			if c.node().left == nilNode {
				return
			}
			c.descendLeft()
		} else {
			if c.node().right == nilNode {
				return
			}
			c.descendRight()
		}
	}
}

func (c *cursor) findContainedIn(start, end Point, result IDSet) {
	c.reset()
	if c.current == nilNode {
		return
	}
	c.seekToFirstNodeGreaterThanOrEqualTo(start)
	started := make(IDSet)
	for c.current != nilNode && c.position.Compare(end) <= 0 {
		n := c.node()
		started.addAll(n.startMarkers)
		for id := range n.endMarkers {
			if started.Contains(id) {
				result.add(id)
			}
		}
		c.cacheNodePosition()
		c.moveToSuccessor()
	}
}

func (c *cursor) findStartingIn(start, end Point, result IDSet) {
	c.collectInRange(start, end, func(n *node) {
		result.addAll(n.startMarkers)
	})
}

func (c *cursor) findEndingIn(start, end Point, result IDSet) {
	c.collectInRange(start, end, func(n *node) {
		result.addAll(n.endMarkers)
	})
}

// collectInRange visits every node positioned in [start, end] in order.
func (c *cursor) collectInRange(start, end Point, visit func(*node)) {
	c.reset()
	if c.current == nilNode {
		return
	}
	c.seekToFirstNodeGreaterThanOrEqualTo(start)
	for c.current != nilNode && c.position.Compare(end) <= 0 {
		visit(c.node())
		c.cacheNodePosition()
		c.moveToSuccessor()
	}
}

// checkIntersection collects the markers of the current node which
// intersect [start, end].
func (c *cursor) checkIntersection(start, end Point, result IDSet) {
	n := c.node()
	if c.leftAncestor.Compare(end) <= 0 && start.Compare(c.position) <= 0 {
		result.addAll(n.leftMarkers)
	}
	if start.Compare(c.position) <= 0 && c.position.Compare(end) <= 0 {
		result.addAll(n.startMarkers)
		result.addAll(n.endMarkers)
	}
	if c.position.Compare(end) <= 0 && start.Compare(c.rightAncestor) <= 0 {
		result.addAll(n.rightMarkers)
	}
}

// dump collects the ranges of all markers in a single in-order walk.
func (c *cursor) dump() map[MarkerID]Range {
	snapshot := make(map[MarkerID]Range)
	c.reset()
	for c.current != nilNode && c.node().left != nilNode {
		c.cacheNodePosition()
		c.descendLeft()
	}
	for c.current != nilNode {
		n := c.node()
		for id := range n.startMarkers {
			snapshot[id] = Range{Start: c.position}
		}
		for id := range n.endMarkers {
			r := snapshot[id]
			r.End = c.position
			snapshot[id] = r
		}
		c.cacheNodePosition()
		c.moveToSuccessor()
	}
	return snapshot
}

// --- Navigation ------------------------------------------------------------

func (c *cursor) seekToFirstNodeGreaterThanOrEqualTo(position Point) {
	for {
		cmp := position.Compare(c.position)
		c.cacheNodePosition()
		if cmp == 0 {
			break
		} else if cmp < 0 {
			if c.node().left == nilNode {
				break
			}
			c.descendLeft()
		} else {
			if c.node().right == nilNode {
				break
			}
			c.descendRight()
		}
	}
	if c.position.Compare(position) < 0 {
		c.moveToSuccessor()
	}
}

func (c *cursor) descendLeft() {
	c.leftStack = append(c.leftStack, c.leftAncestor)
	c.rightStack = append(c.rightStack, c.rightAncestor)
	c.rightAncestor = c.position
	c.current = c.node().left
	c.position = Advance(c.leftAncestor, c.node().leftExtent)
}

func (c *cursor) descendRight() {
	c.leftStack = append(c.leftStack, c.leftAncestor)
	c.rightStack = append(c.rightStack, c.rightAncestor)
	c.leftAncestor = c.position
	c.current = c.node().right
	c.position = Advance(c.leftAncestor, c.node().leftExtent)
}

func (c *cursor) ascend() {
	parent := c.node().parent
	if parent == nilNode {
		c.current = nilNode
		c.position = Point{}
		c.leftAncestor = Point{}
		c.rightAncestor = MaxPoint
		return
	}
	if c.ix.nodes.at(parent).left == c.current {
		c.position = c.rightAncestor
	} else {
		c.position = c.leftAncestor
	}
	k := len(c.leftStack) - 1
	c.leftAncestor, c.leftStack = c.leftStack[k], c.leftStack[:k]
	c.rightAncestor, c.rightStack = c.rightStack[k], c.rightStack[:k]
	c.current = parent
}

// moveToSuccessor steps to the in-order successor of the current node,
// or to nilNode if there is none.
func (c *cursor) moveToSuccessor() {
	if c.current == nilNode {
		return
	}
	if c.node().right != nilNode {
		c.descendRight()
		for c.node().left != nilNode {
			c.descendLeft()
		}
		return
	}
	for {
		parent := c.node().parent
		if parent == nilNode || c.ix.nodes.at(parent).right != c.current {
			break
		}
		c.ascend()
	}
	c.ascend()
}

func (c *cursor) cacheNodePosition() {
	if c.current != nilNode {
		c.ix.positions[c.current] = c.position
	}
}
