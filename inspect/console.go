package inspect

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/markers"
	"github.com/npillmayer/markers/extent"
	"golang.org/x/term"
)

// Palette maps the kinds of lines in a listing to console colors.
type Palette struct {
	ID        *color.Color
	Inclusive *color.Color
	Exclusive *color.Color
	Empty     *color.Color
}

// DefaultPalette is used by listings created without an explicit palette.
var DefaultPalette = Palette{
	ID:        color.New(color.FgHiBlack),
	Inclusive: color.New(color.FgBlue),
	Exclusive: color.New(color.FgRed),
	Empty:     color.New(color.FgYellow),
}

// Listing prints marker snapshots to a console with a fixed width font.
type Listing struct {
	Width   int // line length in display cells
	Palette Palette
}

// NewListing creates a listing with lines of at most width cells.
// If width is not positive, it is derived from the current terminal.
func NewListing(width int) *Listing {
	if width <= 0 {
		width = WidthFromTerminal()
	}
	return &Listing{
		Width:   width,
		Palette: DefaultPalette,
	}
}

// WidthFromTerminal guesses a line length from stdin's terminal, falling
// back to 65 cells if stdin is not interactive.
func WidthFromTerminal() int {
	width := 65
	if term.IsTerminal(0) {
		w, _, err := term.GetSize(0)
		if err == nil {
			if w > 65 {
				width = w - 10
			} else if w > 30 {
				width = w - 5
			} else if w > 10 {
				width = w
			} else {
				width = 10
			}
		}
	}
	tracer().Debugf("inspect: setting line length to %d cells", width)
	return width
}

// Print outputs the current state of ix to stdout.
func (l *Listing) Print(ix *markers.Index) error {
	return l.Write(os.Stdout, ix.Dump(), ix.Exclusive())
}

// Write outputs a snapshot, one mark per line in ascending id order.
// Marks contained in exclusive are flagged and colored differently.
func (l *Listing) Write(w io.Writer, snapshot map[markers.MarkerID]markers.Range,
	exclusive markers.IDSet) error {
	//
	ids := make([]markers.MarkerID, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		r := snapshot[id]
		c := l.Palette.Inclusive
		flag := ""
		if exclusive.Contains(id) {
			c, flag = l.Palette.Exclusive, " excl"
		} else if r.Start == r.End {
			c = l.Palette.Empty
		}
		label := fmt.Sprintf("%6d  ", id)
		text := truncate(r.String()+flag, l.Width-len(label))
		if _, err := l.Palette.ID.Fprint(w, label); err != nil {
			return err
		}
		if _, err := c.Fprint(w, text); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// truncate shortens s to at most width display cells, marking the cut
// with an ellipsis.
func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	if extent.Width(s, extent.Cells) <= width {
		return s
	}
	var b strings.Builder
	n := 0
	for _, r := range s {
		rw := extent.Width(string(r), extent.Cells)
		if n+rw > width-1 {
			break
		}
		b.WriteRune(r)
		n += rw
	}
	b.WriteRune('…')
	return b.String()
}
