package markers

import (
	"fmt"
	"io"
	"strings"
)

// Index2Dot outputs the internal structure of an Index in Graphviz DOT format
// (for debugging purposes).
//
// Every node is labelled with its absolute position and priority, followed by
// its start, end, left and right marker sets.
func Index2Dot(ix *Index, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	var walk func(ref nodeRef, leftAncestor Point)
	walk = func(ref nodeRef, leftAncestor Point) {
		n := ix.nodes.at(ref)
		position := Advance(leftAncestor, n.leftExtent)
		label := fmt.Sprintf("%s p=%d\\nS%s E%s\\nL%s R%s", position, n.priority,
			idlist(n.startMarkers), idlist(n.endMarkers),
			idlist(n.leftMarkers), idlist(n.rightMarkers))
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", ref, label, nodeDotStyles(n))
		for i, child := range []nodeRef{n.left, n.right} {
			if child == nilNode {
				nilid := int(ref)*2 + i + 10000
				nodelist += fmt.Sprintf("\"%d\" %s;\n", nilid, emptyNode())
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ref, nilid)
				continue
			}
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ref, child)
		}
		if n.left != nilNode {
			walk(n.left, leftAncestor)
		}
		if n.right != nilNode {
			walk(n.right, position)
		}
	}
	if ix.root != nilNode {
		walk(ix.root, Point{})
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func idlist(s IDSet) string {
	ids := s.Sorted()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"
}

func nodeDotStyles(n *node) string {
	s := ",style=filled,shape=box"
	if n.priority < 0 {
		s += ",fillcolor=\"#FFBB88\""
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
	}
	return s
}
