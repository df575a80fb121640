package markers

import (
	"fmt"
	"math"
)

// Point is an absolute location in a document.
//
// Points are ordered lexicographically, first by line, then by column.
// The unit of a column is up to the client, as long as it is used
// consistently.
type Point struct {
	Line   int
	Column int
}

// Extent is a relative displacement between two points.
//
// If Line is zero, Column is a column delta. If Line is non-zero, Column is
// the absolute column on the last line spanned, as the line has been ended
// in between. Point and Extent share their layout, which makes an extent
// relative to the document origin convertible to the point it reaches.
type Extent struct {
	Line   int
	Column int
}

// Range is the span of a marker, from Start to End (both inclusive
// boundaries, i.e. a range may be empty).
type Range struct {
	Start Point
	End   Point
}

// MaxPoint is an unbounded position, greater than any position in a
// document. It is used as an open right bound.
var MaxPoint = Point{Line: math.MaxInt, Column: math.MaxInt}

// Advance returns the point reached by moving from origin by extent e.
func Advance(origin Point, e Extent) Point {
	if e.Line == 0 {
		return Point{Line: origin.Line, Column: origin.Column + e.Column}
	}
	return Point{Line: origin.Line + e.Line, Column: e.Column}
}

// Difference returns the extent leading from origin to end. It is the
// inverse of Advance:
//
//	Advance(origin, Difference(end, origin)) == end
//
// for end >= origin.
func Difference(end, origin Point) Extent {
	if end.Line == origin.Line {
		return Extent{Line: 0, Column: end.Column - origin.Column}
	}
	return Extent{Line: end.Line - origin.Line, Column: end.Column}
}

// compose appends extent b to extent a.
func compose(a, b Extent) Extent {
	return Extent(Advance(Point(a), b))
}

// Compare returns -1, 0 or 1, depending on p being before, equal to or
// after q.
func (p Point) Compare(q Point) int {
	switch {
	case p.Line < q.Line:
		return -1
	case p.Line > q.Line:
		return 1
	case p.Column < q.Column:
		return -1
	case p.Column > q.Column:
		return 1
	}
	return 0
}

// IsZero is true for the document origin.
func (p Point) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// IsZero is true for the empty displacement.
func (e Extent) IsZero() bool {
	return e.Line == 0 && e.Column == 0
}

func (p Point) String() string {
	if p == MaxPoint {
		return "(∞, ∞)"
	}
	return fmt.Sprintf("(%d, %d)", p.Line, p.Column)
}

func (e Extent) String() string {
	return fmt.Sprintf("(%d, %d)", e.Line, e.Column)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s – %s]", r.Start, r.End)
}

func validPoint(p Point) bool {
	return p.Line >= 0 && p.Column >= 0
}

func validExtent(e Extent) bool {
	return e.Line >= 0 && e.Column >= 0
}

func checkRange(op string, start, end Point) error {
	if !validPoint(start) || !validPoint(end) {
		T().Errorf("%s: negative coordinates in %s – %s", op, start, end)
		return fmt.Errorf("%w: %s: negative coordinates", ErrInvalidArgument, op)
	}
	if start.Compare(end) > 0 {
		T().Errorf("%s: start %s after end %s", op, start, end)
		return fmt.Errorf("%w: %s: start %s after end %s", ErrInvalidArgument, op, start, end)
	}
	return nil
}
