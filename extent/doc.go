/*
Package extent measures text fragments as marker extents.

A marker index does not know about text; it only learns about edits as
pairs of extents. Hosts use this package to derive those extents from the
text being deleted and inserted:

	e := extent.Edit{Start: p, Old: "foo", New: "bar\nbaz"}
	inv, err := e.Apply(ix, extent.Runes)

Columns may be counted in bytes, runes, grapheme clusters or display cells,
whichever unit the host uses for its positions.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package extent

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
