package markers

import "fmt"

// Invalidation classifies the markers affected by a splice. Clients use it
// to decide which derived state (rendered decorations, folds, etc.) has to
// be recomputed.
type Invalidation struct {
	Touch    IDSet // markers with a boundary adjacent to or crossing the edited region
	Inside   IDSet // markers overlapping the edited region
	Overlap  IDSet // markers with a boundary inside the edited region
	Surround IDSet // markers with both boundaries inside the deleted region
}

func newInvalidation() Invalidation {
	return Invalidation{
		Touch:    make(IDSet),
		Inside:   make(IDSet),
		Overlap:  make(IDSet),
		Surround: make(IDSet),
	}
}

// IsEmpty is true if no marker has been affected.
func (inv Invalidation) IsEmpty() bool {
	return len(inv.Touch)+len(inv.Inside)+len(inv.Overlap)+len(inv.Surround) == 0
}

// Splice updates all markers for an edit replacing the text spanning
// oldExtent from start by text spanning newExtent.
//
// Markers behind the edit shift by the difference of the extents. Marker
// boundaries inside a deleted region collapse to the end of the inserted
// text. Text inserted exactly at a marker boundary is absorbed by inclusive
// markers and excluded from exclusive ones.
//
// The index has no knowledge of the document's content. Deleting beyond
// the end of the document is a contract violation of the client.
func (ix *Index) Splice(start Point, oldExtent, newExtent Extent) (Invalidation, error) {
	if !validPoint(start) || !validExtent(oldExtent) || !validExtent(newExtent) {
		T().Errorf("splice: negative coordinates in %s, %s, %s", start, oldExtent, newExtent)
		return Invalidation{}, fmt.Errorf("%w: splice: negative coordinates", ErrInvalidArgument)
	}
	clear(ix.positions)
	invalidated := newInvalidation()
	if ix.root == nilNode || oldExtent.IsZero() && newExtent.IsZero() {
		return invalidated, nil
	}
	T().Debugf("splice: at %s replace %s by %s", start, oldExtent, newExtent)

	isInsertion := oldExtent.IsZero()
	startRef := ix.cursor.insertSpliceBoundary(start, false)
	endRef := ix.cursor.insertSpliceBoundary(Advance(start, oldExtent), isInsertion)
	startNode, endNode := ix.nodes.at(startRef), ix.nodes.at(endRef)

	// pin both boundaries to the top, end node above start node
	startNode.priority = -1
	ix.bubbleUp(startRef)
	endNode.priority = -2
	ix.bubbleUp(endRef)
	assert(ix.root == endRef && endNode.left == startRef, "splice: boundaries not pinned")

	startingInside, endingInside := make(IDSet), make(IDSet)
	if isInsertion {
		ix.reclassifyInsertion(startRef, endRef, invalidated)
	} else {
		ix.reclassifyDeletion(startRef, endRef, startingInside, endingInside)
	}
	populateInvalidation(invalidated, startNode, endNode, startingInside, endingInside)

	// drop the deleted region and re-anchor everything behind it
	ix.releaseSubtree(startNode.right)
	startNode.right = nilNode
	endNode.leftExtent = Extent(Advance(start, newExtent))

	if startNode.leftExtent == endNode.leftExtent {
		ix.mergeInto(startRef, endRef)
		ix.deleteNode(endRef)
	} else if endNode.isMarkerEndpoint() {
		ix.reprioritize(endRef)
	} else {
		ix.deleteNode(endRef)
	}
	if startNode.isMarkerEndpoint() {
		ix.reprioritize(startRef)
	} else {
		ix.deleteNode(startRef)
	}
	T().Debugf("splice: touched %d markers, %d surrounded", len(invalidated.Touch), len(invalidated.Surround))
	return invalidated, nil
}

// reclassifyInsertion moves marker boundaries sitting exactly at the
// insertion point. Exclusive markers starting there are pushed behind the
// inserted text. Inclusive markers ending there absorb the inserted text,
// as do empty exclusive markers whose start has been pushed.
func (ix *Index) reclassifyInsertion(startRef, endRef nodeRef, invalidated Invalidation) {
	startNode, endNode := ix.nodes.at(startRef), ix.nodes.at(endRef)
	for id := range startNode.startMarkers {
		if ix.IsExclusive(id) {
			startNode.startMarkers.remove(id)
			startNode.rightMarkers.remove(id)
			endNode.startMarkers.add(id)
			ix.startNodes[id] = endRef
		}
	}
	for id := range startNode.endMarkers {
		if !ix.IsExclusive(id) || endNode.startMarkers.Contains(id) {
			startNode.endMarkers.remove(id)
			if !endNode.startMarkers.Contains(id) {
				startNode.rightMarkers.add(id)
				invalidated.Overlap.add(id)
			}
			endNode.endMarkers.add(id)
			ix.endNodes[id] = endRef
		}
	}
}

// reclassifyDeletion moves every marker boundary inside the deleted region
// to the end node. startNode's right subtree holds exactly the nodes
// positioned strictly between the two boundaries.
func (ix *Index) reclassifyDeletion(startRef, endRef nodeRef, startingInside, endingInside IDSet) {
	startNode, endNode := ix.nodes.at(startRef), ix.nodes.at(endRef)
	ix.collectMarkersInSubtree(startNode.right, startingInside, endingInside)

	for id := range endingInside {
		endNode.endMarkers.add(id)
		if !startingInside.Contains(id) {
			startNode.rightMarkers.add(id)
		}
		ix.endNodes[id] = endRef
	}
	for id := range endNode.endMarkers {
		if ix.IsExclusive(id) && !endNode.startMarkers.Contains(id) {
			endingInside.add(id)
		}
	}
	for id := range startingInside {
		endNode.startMarkers.add(id)
		ix.startNodes[id] = endRef
	}
	for id := range startNode.startMarkers {
		if ix.IsExclusive(id) && !startNode.endMarkers.Contains(id) {
			startNode.startMarkers.remove(id)
			startNode.rightMarkers.remove(id)
			endNode.startMarkers.add(id)
			ix.startNodes[id] = endRef
			startingInside.add(id)
		}
	}
}

func (ix *Index) collectMarkersInSubtree(ref nodeRef, starting, ending IDSet) {
	if ref == nilNode {
		return
	}
	n := ix.nodes.at(ref)
	ix.collectMarkersInSubtree(n.left, starting, ending)
	starting.addAll(n.startMarkers)
	ending.addAll(n.endMarkers)
	ix.collectMarkersInSubtree(n.right, starting, ending)
}

// mergeInto moves all marker boundaries of a node src to node dst at the
// same position.
func (ix *Index) mergeInto(dstRef, srcRef nodeRef) {
	dst, src := ix.nodes.at(dstRef), ix.nodes.at(srcRef)
	for id := range src.startMarkers {
		dst.startMarkers.add(id)
		dst.rightMarkers.add(id)
		ix.startNodes[id] = dstRef
	}
	for id := range src.endMarkers {
		dst.endMarkers.add(id)
		if src.leftMarkers.Contains(id) {
			dst.leftMarkers.add(id)
			src.leftMarkers.remove(id)
		}
		ix.endNodes[id] = dstRef
	}
}

func populateInvalidation(inv Invalidation, startNode, endNode *node, startingInside, endingInside IDSet) {
	inv.Touch.addAll(startNode.endMarkers)
	inv.Touch.addAll(endNode.startMarkers)
	for id := range startNode.rightMarkers {
		inv.Touch.add(id)
		inv.Inside.add(id)
	}
	for id := range endNode.leftMarkers {
		inv.Touch.add(id)
		inv.Inside.add(id)
	}
	for id := range startingInside {
		inv.Touch.add(id)
		inv.Inside.add(id)
		inv.Overlap.add(id)
		if endingInside.Contains(id) {
			inv.Surround.add(id)
		}
	}
	for id := range endingInside {
		inv.Touch.add(id)
		inv.Inside.add(id)
		inv.Overlap.add(id)
	}
}
