package watch

import (
	"context"
	"errors"

	"github.com/guiguan/caster"
	"github.com/npillmayer/markers"
)

// ErrClosed is returned when subscribing to a closed notifier.
var ErrClosed = errors.New("watch: notifier closed")

// Event is published for every splice which affected at least one marker.
type Event struct {
	Start     markers.Point
	OldExtent markers.Extent
	NewExtent markers.Extent
	markers.Invalidation
}

// Notifier applies edits to a marker index and publishes the resulting
// invalidations.
type Notifier struct {
	ix   *markers.Index
	cast *caster.Caster // broadcaster for splice events
}

// New creates a notifier for ix.
func New(ix *markers.Index) *Notifier {
	return &Notifier{
		ix:   ix,
		cast: caster.New(nil),
	}
}

// Index returns the wrapped marker index.
func (n *Notifier) Index() *markers.Index {
	return n.ix
}

// Subscribe returns a channel receiving Events. capacity is the channel's
// buffer size; a slow subscriber with a full buffer holds up publishing.
// The subscription ends when ctx is done, on Unsubscribe or on Close, and
// the channel is closed then. Subscribers must neither send on the channel
// nor close it.
func (n *Notifier) Subscribe(ctx context.Context, capacity uint) (chan interface{}, error) {
	select {
	case <-n.cast.Done():
		return nil, ErrClosed
	default:
	}
	ch, _ := n.cast.Sub(ctx, capacity)
	return ch, nil
}

// Unsubscribe ends a subscription and closes its channel.
func (n *Notifier) Unsubscribe(ch chan interface{}) {
	n.cast.Unsub(ch)
}

// Close ends all subscriptions.
func (n *Notifier) Close() {
	n.cast.Close()
}

// Splice applies an edit to the index (see markers.Index.Splice) and
// publishes the invalidation, if it is not empty.
func (n *Notifier) Splice(start markers.Point, oldExtent, newExtent markers.Extent) (markers.Invalidation, error) {
	inv, err := n.ix.Splice(start, oldExtent, newExtent)
	if err != nil {
		return inv, err
	}
	if inv.IsEmpty() {
		return inv, nil
	}
	ev := Event{Start: start, OldExtent: oldExtent, NewExtent: newExtent, Invalidation: inv}
	if !n.cast.Pub(ev) {
		tracer().Infof("watch: splice at %s not published, notifier closed", start)
	}
	return inv, nil
}
