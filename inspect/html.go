package inspect

import (
	"fmt"
	"io"
	"slices"

	"github.com/npillmayer/markers"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WriteHTML renders a snapshot as an HTML table with one row per mark,
// ordered by id. Rows of exclusive marks carry class "exclusive", rows of
// empty marks class "empty".
func WriteHTML(w io.Writer, snapshot map[markers.MarkerID]markers.Range,
	exclusive markers.IDSet) error {
	//
	table := element(atom.Table, html.Attribute{Key: "class", Val: "markers"})
	head := element(atom.Tr)
	for _, title := range []string{"id", "start", "end", "exclusive"} {
		head.AppendChild(cell(atom.Th, title))
	}
	table.AppendChild(head)
	ids := make([]markers.MarkerID, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		r := snapshot[id]
		excl := exclusive.Contains(id)
		var row *html.Node
		switch {
		case excl:
			row = element(atom.Tr, html.Attribute{Key: "class", Val: "exclusive"})
		case r.Start == r.End:
			row = element(atom.Tr, html.Attribute{Key: "class", Val: "empty"})
		default:
			row = element(atom.Tr)
		}
		row.AppendChild(cell(atom.Td, fmt.Sprintf("%d", id)))
		row.AppendChild(cell(atom.Td, r.Start.String()))
		row.AppendChild(cell(atom.Td, r.End.String()))
		row.AppendChild(cell(atom.Td, fmt.Sprintf("%t", excl)))
		table.AppendChild(row)
	}
	tracer().Debugf("inspect: rendering %d marks as HTML", len(ids))
	if err := html.Render(w, table); err != nil {
		return fmt.Errorf("inspect: rendering HTML: %w", err)
	}
	return nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func cell(a atom.Atom, text string) *html.Node {
	c := element(a)
	c.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return c
}
