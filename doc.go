/*
Package markers maintains a marker index: a set of marks anchored to ranges of
(line, column) positions in a mutable text document.

# Markers

Editors track many logical marks over a document: selections, folds, search
highlights, diagnostics, cursors of collaborators. Each of them spans a range
of positions and each of them has to follow the text as it is edited. Storing
absolute positions per mark would make every edit cost time proportional to
the number of marks behind the edit. An Index instead stores boundary
positions in a randomized binary search tree (a treap), where every node
holds only an offset relative to a structural neighbour. An edit re-anchors a
single node and thereby shifts every position following it.

Nodes are augmented with sets of marker ids which span across them. This
lets range queries answer "which marks intersect this region" without
scanning the subtrees below a node.

	ix := markers.New(markers.WithSeed(42))
	ix.Insert(1, markers.Point{Line: 0, Column: 2}, markers.Point{Line: 0, Column: 6})
	inv, _ := ix.Splice(markers.Point{}, markers.Extent{}, markers.Extent{Column: 2})
	r, _ := ix.GetRange(1)   // r = [(0, 4) – (0, 8)]

# Coordinates

Positions are given as Points. Edits are expressed as Extents, i.e. relative
displacements: if an extent spans one or more line breaks, its column
component is the absolute column on the last line, otherwise it is a column
delta. The host decides what a column is (bytes, runes, grapheme clusters);
package markers/extent has helpers to measure text fragments.

An Index is not safe for concurrent use. The host is expected to serialize
edits and queries, usually on the goroutine owning the document.

_________________________________________________________________________

# BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package markers

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

var (
	// ErrNotFound is flagged whenever an operation refers to an unknown marker id.
	ErrNotFound = errors.New("markers: marker not found")
	// ErrInvalidArgument is flagged whenever function parameters are invalid,
	// e.g. negative coordinates or inverted ranges.
	ErrInvalidArgument = errors.New("markers: invalid argument")
	// ErrCorrupted is returned by Check if the index violates one of its
	// structural invariants.
	ErrCorrupted = errors.New("markers: corrupted index")
)

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
