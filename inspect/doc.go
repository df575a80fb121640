/*
Package inspect renders snapshots of a marker index for debugging.

A snapshot is what markers.Index.Dump returns: the absolute range of every
mark. Listing prints it to a console, one mark per line and colored by
exclusivity. WriteHTML renders it as an HTML table.

	ix := markers.New()
	...
	inspect.NewListing(0).Print(ix)

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package inspect

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
