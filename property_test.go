package markers

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing"
)

// How to run:
//   - Deterministic randomized property test:
//     go test . -run TestRandomizedAgainstModel -count=1
//   - Fuzz test for this file:
//     go test . -run '^$' -fuzz FuzzRandomizedAgainstModel -fuzztime=10s

// model keeps absolute ranges per marker and applies edits by brute force.
type model struct {
	ranges    map[MarkerID]Range
	exclusive map[MarkerID]bool
}

func newModel() *model {
	return &model{
		ranges:    make(map[MarkerID]Range),
		exclusive: make(map[MarkerID]bool),
	}
}

func (m *model) splice(start Point, oldExtent, newExtent Extent) {
	if len(m.ranges) == 0 || oldExtent.IsZero() && newExtent.IsZero() {
		return
	}
	editEnd := Advance(start, oldExtent)
	newEnd := Advance(start, newExtent)
	shift := func(p Point) Point {
		return Advance(newEnd, Difference(p, editEnd))
	}
	isInsertion := oldExtent.IsZero()
	for id, r := range m.ranges {
		excl := m.exclusive[id]
		var s, e Point
		switch cmp := r.Start.Compare(start); {
		case cmp < 0:
			s = r.Start
		case cmp == 0 && isInsertion:
			s = r.Start
			if excl {
				s = newEnd
			}
		case cmp == 0:
			s = r.Start
			if excl && r.End != start {
				s = newEnd
			}
		case r.Start.Compare(editEnd) <= 0:
			s = newEnd
		default:
			s = shift(r.Start)
		}
		switch cmp := r.End.Compare(start); {
		case cmp < 0:
			e = r.End
		case cmp == 0 && isInsertion:
			e = r.End
			if !excl || s == newEnd {
				e = newEnd
			}
		case cmp == 0:
			e = r.End
		case r.End.Compare(editEnd) <= 0:
			e = newEnd
		default:
			e = shift(r.End)
		}
		m.ranges[id] = Range{Start: s, End: e}
	}
}

// invalidation derives the Overlap and Surround sets of a splice from the
// ranges before the edit. On insertion, inclusive markers ending at the
// insertion point overlap it. On deletion, a boundary strictly inside the
// deleted region overlaps it, as does an exclusive start at the region's
// start or an exclusive end at its end. A marker with both boundaries
// overlapping is surrounded.
func (m *model) invalidation(start Point, oldExtent, newExtent Extent) (overlap, surround []MarkerID) {
	if len(m.ranges) == 0 || oldExtent.IsZero() && newExtent.IsZero() {
		return nil, nil
	}
	editEnd := Advance(start, oldExtent)
	strictlyInside := func(p Point) bool {
		return start.Compare(p) < 0 && p.Compare(editEnd) < 0
	}
	ov, sur := make(IDSet), make(IDSet)
	for id, r := range m.ranges {
		excl := m.exclusive[id]
		if oldExtent.IsZero() {
			if r.End == start && !excl {
				ov.add(id)
			}
			continue
		}
		startsInside := strictlyInside(r.Start) || excl && r.Start == start && r.End != start
		endsInside := strictlyInside(r.End) || excl && r.End == editEnd && r.Start != editEnd
		if startsInside || endsInside {
			ov.add(id)
		}
		if startsInside && endsInside {
			sur.add(id)
		}
	}
	return ov.Sorted(), sur.Sorted()
}

func (m *model) query(kind int, start, end Point) []MarkerID {
	set := make(IDSet)
	for id, r := range m.ranges {
		var hit bool
		switch kind {
		case 0: // intersecting
			hit = r.Start.Compare(end) <= 0 && start.Compare(r.End) <= 0
		case 1: // containing
			hit = r.Start.Compare(start) <= 0 && end.Compare(r.End) <= 0
		case 2: // contained in
			hit = start.Compare(r.Start) <= 0 && r.End.Compare(end) <= 0
		case 3: // starting in
			hit = start.Compare(r.Start) <= 0 && r.Start.Compare(end) <= 0
		case 4: // ending in
			hit = start.Compare(r.End) <= 0 && r.End.Compare(end) <= 0
		}
		if hit {
			set.add(id)
		}
	}
	return set.Sorted()
}

func (ix *Index) queryKind(kind int, start, end Point) (IDSet, error) {
	switch kind {
	case 0:
		return ix.FindIntersecting(start, end)
	case 1:
		return ix.FindContaining(start, end)
	case 2:
		return ix.FindContainedIn(start, end)
	case 3:
		return ix.FindStartingIn(start, end)
	}
	return ix.FindEndingIn(start, end)
}

var queryNames = []string{"intersecting", "containing", "contained-in", "starting-in", "ending-in"}

// a small coordinate space provokes coinciding boundaries
func randomPoint(r *rand.Rand) Point {
	return pt(r.Intn(4), r.Intn(8))
}

func randomExtent(r *rand.Rand) Extent {
	if r.Intn(3) == 0 {
		return ext(r.Intn(2)+1, r.Intn(6))
	}
	if r.Intn(4) == 0 {
		return ext(0, 0)
	}
	return ext(0, r.Intn(5))
}

func orderedPoints(r *rand.Rand) (Point, Point) {
	a, b := randomPoint(r), randomPoint(r)
	if a.Compare(b) > 0 {
		a, b = b, a
	}
	return a, b
}

func runRandomizedOps(t *testing.T, seed int64, steps int) {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	ix := New(WithSeed(seed))
	m := newModel()
	var nextID MarkerID
	for step := 0; step < steps; step++ {
		switch op := r.Intn(10); {
		case op < 4 || len(m.ranges) == 0:
			start, end := orderedPoints(r)
			nextID++
			if err := ix.Insert(nextID, start, end); err != nil {
				t.Fatalf("seed %d step %d: insert: %v", seed, step, err)
			}
			m.ranges[nextID] = Range{start, end}
			if r.Intn(3) == 0 {
				_ = ix.SetExclusive(nextID, true)
				m.exclusive[nextID] = true
			}
		case op < 5:
			id := pickMarker(r, m)
			if err := ix.Delete(id); err != nil {
				t.Fatalf("seed %d step %d: delete %d: %v", seed, step, id, err)
			}
			delete(m.ranges, id)
			delete(m.exclusive, id)
		case op < 6:
			id := pickMarker(r, m)
			excl := r.Intn(2) == 0
			_ = ix.SetExclusive(id, excl)
			m.exclusive[id] = excl
		default:
			start, oldExtent, newExtent := randomPoint(r), randomExtent(r), randomExtent(r)
			overlap, surround := m.invalidation(start, oldExtent, newExtent)
			inv, err := ix.Splice(start, oldExtent, newExtent)
			if err != nil {
				t.Fatalf("seed %d step %d: splice: %v", seed, step, err)
			}
			m.splice(start, oldExtent, newExtent)
			checkInvalidation(t, inv, overlap, surround, seed, step)
		}
		if err := ix.Check(); err != nil {
			t.Fatalf("seed %d step %d: %v", seed, step, err)
		}
		if diff := cmp.Diff(m.ranges, ix.Dump()); diff != "" {
			t.Fatalf("seed %d step %d: dump differs from model (-model +index):\n%s", seed, step, diff)
		}
		for kind := range queryNames {
			start, end := orderedPoints(r)
			got, err := ix.queryKind(kind, start, end)
			if err != nil {
				t.Fatalf("seed %d step %d: query: %v", seed, step, err)
			}
			if diff := cmp.Diff(m.query(kind, start, end), got.Sorted()); diff != "" {
				t.Fatalf("seed %d step %d: find-%s [%s – %s] (-model +index):\n%s",
					seed, step, queryNames[kind], start, end, diff)
			}
		}
	}
}

// checkInvalidation compares Overlap and Surround against the model and
// checks that every set is contained in the next coarser one.
func checkInvalidation(t *testing.T, inv Invalidation, overlap, surround []MarkerID, seed int64, step int) {
	t.Helper()
	if diff := cmp.Diff(overlap, inv.Overlap.Sorted()); diff != "" {
		t.Fatalf("seed %d step %d: overlap differs from model (-model +index):\n%s", seed, step, diff)
	}
	if diff := cmp.Diff(surround, inv.Surround.Sorted()); diff != "" {
		t.Fatalf("seed %d step %d: surround differs from model (-model +index):\n%s", seed, step, diff)
	}
	for _, pair := range []struct {
		name         string
		inner, outer IDSet
	}{
		{"surround/overlap", inv.Surround, inv.Overlap},
		{"overlap/inside", inv.Overlap, inv.Inside},
		{"inside/touch", inv.Inside, inv.Touch},
	} {
		for id := range pair.inner {
			if !pair.outer.Contains(id) {
				t.Fatalf("seed %d step %d: marker %d violates %s nesting", seed, step, id, pair.name)
			}
		}
	}
}

func pickMarker(r *rand.Rand, m *model) MarkerID {
	all := make(IDSet, len(m.ranges))
	for id := range m.ranges {
		all.add(id)
	}
	ids := all.Sorted()
	return ids[r.Intn(len(ids))]
}

func TestRandomizedAgainstModel(t *testing.T) {
	teardown := setupTracing(t, tracing.LevelError)
	defer teardown()
	//
	for seed := int64(1); seed <= 20; seed++ {
		runRandomizedOps(t, seed, 300)
	}
}

func FuzzRandomizedAgainstModel(f *testing.F) {
	f.Add(int64(1), uint8(50))
	f.Add(int64(42), uint8(200))
	f.Fuzz(func(t *testing.T, seed int64, steps uint8) {
		runRandomizedOps(t, seed, int(steps))
	})
}
