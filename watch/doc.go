/*
Package watch broadcasts the invalidations caused by edits of a marker index.

Consumers of markers (selection rendering, fold rendering, diagnostics) are
usually decoupled from the host buffer applying edits. A Notifier wraps a
markers.Index; every splice applied through it is published as an Event to
all subscribers. The index itself stays single-threaded: the host still
serializes edits and queries. Only the delivery of events is asynchronous.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package watch

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the global core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
