package extent

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/markers"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// Unit is the unit columns are counted in.
type Unit int

const (
	Bytes     Unit = iota // UTF-8 bytes
	Runes                 // Unicode code points
	Graphemes             // user-perceived characters (grapheme clusters)
	Cells                 // fixed-width display cells, see CellContext
)

func (u Unit) String() string {
	switch u {
	case Bytes:
		return "bytes"
	case Runes:
		return "runes"
	case Graphemes:
		return "graphemes"
	case Cells:
		return "cells"
	}
	return "unknown unit"
}

// CellContext is the East Asian width context used for measuring in Cells.
var CellContext = uax11.LatinContext

var setupGraphemes sync.Once

// Of returns the extent spanned by text.
//
// The line component is the number of newlines in text. The column
// component is the length of the text following the last newline, measured
// in unit.
func Of(text string, unit Unit) markers.Extent {
	lines := strings.Count(text, "\n")
	last := text
	if lines > 0 {
		last = text[strings.LastIndexByte(text, '\n')+1:]
	}
	return markers.Extent{Line: lines, Column: Width(last, unit)}
}

// End returns the position reached by writing text at start.
func End(start markers.Point, text string, unit Unit) markers.Point {
	return markers.Advance(start, Of(text, unit))
}

// Width measures a single line of text in unit.
func Width(line string, unit Unit) int {
	switch unit {
	case Runes:
		return utf8.RuneCountInString(line)
	case Graphemes:
		if line == "" {
			return 0
		}
		setupGraphemes.Do(grapheme.SetupGraphemeClasses)
		return grapheme.StringFromString(line).Len()
	case Cells:
		if line == "" {
			return 0
		}
		setupGraphemes.Do(grapheme.SetupGraphemeClasses)
		return uax11.StringWidth(grapheme.StringFromString(line), CellContext)
	}
	return len(line)
}

// Edit describes the replacement of text Old at position Start by text New.
type Edit struct {
	Start markers.Point
	Old   string
	New   string
}

// Extents returns the old and new extent of the edit.
func (e Edit) Extents(unit Unit) (oldExtent, newExtent markers.Extent) {
	return Of(e.Old, unit), Of(e.New, unit)
}

// Apply splices the edit into a marker index.
func (e Edit) Apply(ix *markers.Index, unit Unit) (markers.Invalidation, error) {
	oldExtent, newExtent := e.Extents(unit)
	tracer().Debugf("edit at %s: %s → %s (%s)", e.Start, oldExtent, newExtent, unit)
	return ix.Splice(e.Start, oldExtent, newExtent)
}
