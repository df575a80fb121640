package markers

// Treap maintenance: rotations and the bubbling of nodes along the heap
// order of priorities.

func (ix *Index) bubbleUp(ref nodeRef) {
	for {
		n := ix.nodes.at(ref)
		if n.parent == nilNode || n.priority >= ix.nodes.at(n.parent).priority {
			return
		}
		if ix.nodes.at(n.parent).left == ref {
			ix.rotateRight(ref)
		} else {
			ix.rotateLeft(ref)
		}
	}
}

func (ix *Index) bubbleDown(ref nodeRef) {
	for {
		n := ix.nodes.at(ref)
		leftPriority, rightPriority := infinitePriority, infinitePriority
		if n.left != nilNode {
			leftPriority = ix.nodes.at(n.left).priority
		}
		if n.right != nilNode {
			rightPriority = ix.nodes.at(n.right).priority
		}
		if leftPriority < rightPriority && leftPriority < n.priority {
			ix.rotateRight(n.left)
		} else if rightPriority < n.priority {
			ix.rotateLeft(n.right)
		} else {
			return
		}
	}
}

// deleteNode moves a node down to a leaf and unlinks it.
func (ix *Index) deleteNode(ref nodeRef) {
	delete(ix.positions, ref)
	n := ix.nodes.at(ref)
	n.priority = infinitePriority
	ix.bubbleDown(ref)
	assert(n.left == nilNode && n.right == nilNode, "deleteNode: node did not reach a leaf")
	ix.replaceChild(n.parent, ref, nilNode)
	ix.nodes.release(ref)
}

// releaseSubtree returns all nodes of a detached subtree to the arena.
func (ix *Index) releaseSubtree(ref nodeRef) {
	if ref == nilNode {
		return
	}
	n := ix.nodes.at(ref)
	ix.releaseSubtree(n.left)
	ix.releaseSubtree(n.right)
	delete(ix.positions, ref)
	ix.nodes.release(ref)
}

// replaceChild links child into the slot of old below parent. If parent is
// nilNode, child becomes the root.
func (ix *Index) replaceChild(parent, old, child nodeRef) {
	if parent == nilNode {
		ix.root = child
	} else if p := ix.nodes.at(parent); p.left == old {
		p.left = child
	} else {
		p.right = child
	}
	if child != nilNode {
		ix.nodes.at(child).parent = parent
	}
}

// rotateLeft lifts pivot, the right child of its parent, one level up.
//
// Absolute positions are preserved: pivot's left ancestor changes from its
// former parent to the parent's left ancestor, so their extents compose.
// Markers crossing the pivot to the left are re-expressed relative to the
// former parent, which has become pivot's left child.
func (ix *Index) rotateLeft(pivotRef nodeRef) {
	pivot := ix.nodes.at(pivotRef)
	rootRef := pivot.parent
	root := ix.nodes.at(rootRef)

	ix.replaceChild(root.parent, rootRef, pivotRef)
	root.right = pivot.left
	if root.right != nilNode {
		ix.nodes.at(root.right).parent = rootRef
	}
	pivot.left = rootRef
	root.parent = pivotRef

	pivot.leftExtent = compose(root.leftExtent, pivot.leftExtent)

	pivot.rightMarkers.addAll(root.rightMarkers)
	for id := range pivot.leftMarkers {
		if root.leftMarkers.Contains(id) {
			root.leftMarkers.remove(id)
		} else {
			pivot.leftMarkers.remove(id)
			root.rightMarkers.add(id)
		}
	}
}

// rotateRight lifts pivot, the left child of its parent, one level up.
//
// The former parent becomes pivot's right child, and pivot its new left
// ancestor. Markers crossing the pivot to the right are re-expressed
// relative to the former parent.
func (ix *Index) rotateRight(pivotRef nodeRef) {
	pivot := ix.nodes.at(pivotRef)
	rootRef := pivot.parent
	root := ix.nodes.at(rootRef)

	ix.replaceChild(root.parent, rootRef, pivotRef)
	root.left = pivot.right
	if root.left != nilNode {
		ix.nodes.at(root.left).parent = rootRef
	}
	pivot.right = rootRef
	root.parent = pivotRef

	root.leftExtent = Difference(Point(root.leftExtent), Point(pivot.leftExtent))

	for id := range root.leftMarkers {
		if !pivot.startMarkers.Contains(id) { // pivot may sit at the origin
			pivot.leftMarkers.add(id)
		}
	}
	for id := range pivot.rightMarkers {
		if root.rightMarkers.Contains(id) {
			root.rightMarkers.remove(id)
		} else {
			pivot.rightMarkers.remove(id)
			root.leftMarkers.add(id)
		}
	}
}
