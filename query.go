package markers

// FindIntersecting returns the markers whose range intersects [start, end].
// Touching at a single position counts as intersection.
func (ix *Index) FindIntersecting(start, end Point) (IDSet, error) {
	if err := checkRange("find-intersecting", start, end); err != nil {
		return nil, err
	}
	result := make(IDSet)
	ix.cursor.findIntersecting(start, end, result)
	return result, nil
}

// FindContaining returns the markers containing both start and end. Pass
// identical points to query for markers containing a single position.
func (ix *Index) FindContaining(start, end Point) (IDSet, error) {
	if err := checkRange("find-containing", start, end); err != nil {
		return nil, err
	}
	containing := make(IDSet)
	ix.cursor.findContaining(start, containing)
	if start != end {
		containingEnd := make(IDSet)
		ix.cursor.findContaining(end, containingEnd)
		for id := range containing {
			if !containingEnd.Contains(id) {
				containing.remove(id)
			}
		}
	}
	return containing, nil
}

// FindContainedIn returns the markers whose range lies within [start, end].
func (ix *Index) FindContainedIn(start, end Point) (IDSet, error) {
	if err := checkRange("find-contained-in", start, end); err != nil {
		return nil, err
	}
	result := make(IDSet)
	ix.cursor.findContainedIn(start, end, result)
	return result, nil
}

// FindStartingIn returns the markers starting within [start, end].
func (ix *Index) FindStartingIn(start, end Point) (IDSet, error) {
	if err := checkRange("find-starting-in", start, end); err != nil {
		return nil, err
	}
	result := make(IDSet)
	ix.cursor.findStartingIn(start, end, result)
	return result, nil
}

// FindEndingIn returns the markers ending within [start, end].
func (ix *Index) FindEndingIn(start, end Point) (IDSet, error) {
	if err := checkRange("find-ending-in", start, end); err != nil {
		return nil, err
	}
	result := make(IDSet)
	ix.cursor.findEndingIn(start, end, result)
	return result, nil
}

// FindStartingAt returns the markers starting exactly at position.
func (ix *Index) FindStartingAt(position Point) (IDSet, error) {
	return ix.FindStartingIn(position, position)
}

// FindEndingAt returns the markers ending exactly at position.
func (ix *Index) FindEndingAt(position Point) (IDSet, error) {
	return ix.FindEndingIn(position, position)
}
