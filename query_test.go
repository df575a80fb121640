package markers

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildQueryFixture(t *testing.T) *Index {
	t.Helper()
	ix := New(WithSeed(2))
	mustInsert(t, ix, 1, pt(0, 0), pt(0, 5))
	mustInsert(t, ix, 2, pt(0, 3), pt(1, 2))
	mustInsert(t, ix, 3, pt(0, 5), pt(0, 5))
	mustInsert(t, ix, 4, pt(1, 0), pt(4, 0))
	mustInsert(t, ix, 5, pt(2, 3), pt(2, 8))
	mustInsert(t, ix, 6, pt(5, 0), pt(6, 0))
	mustCheck(t, ix)
	return ix
}

func ids(set IDSet) []MarkerID {
	return set.Sorted()
}

func TestFindQueries(t *testing.T) {
	ix := buildQueryFixture(t)
	type query func(start, end Point) (IDSet, error)
	cases := []struct {
		name       string
		q          query
		start, end Point
		want       []MarkerID
	}{
		{"intersecting point", ix.FindIntersecting, pt(0, 5), pt(0, 5), []MarkerID{1, 2, 3}},
		{"intersecting range", ix.FindIntersecting, pt(1, 1), pt(2, 3), []MarkerID{2, 4, 5}},
		{"intersecting nothing", ix.FindIntersecting, pt(4, 1), pt(4, 9), nil},
		{"intersecting touch", ix.FindIntersecting, pt(4, 0), pt(5, 0), []MarkerID{4, 6}},
		{"containing point", ix.FindContaining, pt(0, 4), pt(0, 4), []MarkerID{1, 2}},
		{"containing range", ix.FindContaining, pt(1, 0), pt(1, 2), []MarkerID{2, 4}},
		{"contained in", ix.FindContainedIn, pt(0, 0), pt(1, 2), []MarkerID{1, 2, 3}},
		{"contained in narrow", ix.FindContainedIn, pt(0, 5), pt(2, 9), []MarkerID{3, 5}},
		{"starting in", ix.FindStartingIn, pt(0, 3), pt(1, 0), []MarkerID{2, 3, 4}},
		{"ending in", ix.FindEndingIn, pt(0, 5), pt(2, 8), []MarkerID{1, 2, 3, 5}},
	}
	for _, tc := range cases {
		got, err := tc.q(tc.start, tc.end)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
			t.Errorf("%s [%s – %s] (-want +got):\n%s", tc.name, tc.start, tc.end, diff)
		}
	}
}

func TestFindAtPosition(t *testing.T) {
	ix := buildQueryFixture(t)
	starting, _ := ix.FindStartingAt(pt(0, 5))
	ending, _ := ix.FindEndingAt(pt(0, 5))
	if diff := cmp.Diff([]MarkerID{3}, ids(starting)); diff != "" {
		t.Errorf("FindStartingAt (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]MarkerID{1, 3}, ids(ending)); diff != "" {
		t.Errorf("FindEndingAt (-want +got):\n%s", diff)
	}
}

func TestFindOnEmptyIndex(t *testing.T) {
	ix := New()
	for _, q := range []func(Point, Point) (IDSet, error){
		ix.FindIntersecting, ix.FindContaining, ix.FindContainedIn,
		ix.FindStartingIn, ix.FindEndingIn,
	} {
		got, err := q(pt(0, 0), pt(9, 9))
		if err != nil || got.Len() != 0 {
			t.Errorf("expected empty result on empty index, got %v, %v", got, err)
		}
	}
}

func TestFindRejectsInvalidRanges(t *testing.T) {
	ix := buildQueryFixture(t)
	if _, err := ix.FindIntersecting(pt(2, 0), pt(1, 0)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for inverted range, got %v", err)
	}
	if _, err := ix.FindContaining(pt(0, -3), pt(0, 0)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative column, got %v", err)
	}
}

func TestQueriesFollowSplice(t *testing.T) {
	ix := buildQueryFixture(t)
	// remove lines 1 through 3
	mustSplice(t, ix, pt(1, 0), ext(3, 0), ext(0, 0))
	got, _ := ix.FindIntersecting(pt(1, 0), pt(1, 0))
	if diff := cmp.Diff([]MarkerID{2, 4, 5}, ids(got)); diff != "" {
		t.Errorf("FindIntersecting after splice (-want +got):\n%s", diff)
	}
	got, _ = ix.FindStartingIn(pt(2, 0), pt(2, 0))
	if diff := cmp.Diff([]MarkerID{6}, ids(got)); diff != "" {
		t.Errorf("FindStartingIn after splice (-want +got):\n%s", diff)
	}
}
