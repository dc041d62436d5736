package frames

import (
	"reflect"
	"slices"
	"testing"
)

// simple is the three-container layout used by the ordering tests:
//
//	┌──────────────────────────────────────────────┐
//	│ ┌──────┐                                     │
//	│ │  v1  │                                     │
//	│ ├──────┤ ┌──────┬──────┬──────┐ ┌──────────┐ │
//	│ │  v2  │ │  h1  │  h2  │  h3  │ │ s1,s2,s3 │ │
//	│ ├──────┤,└──────┴──────┴──────┘,└──────────┘ │
//	│ │  v3  │                                     │
//	│ └──────┘                                     │
//	└──────────────────────────────────────────────┘
type simple struct {
	t          *Tree
	r, v, h, s FrameID
	v1, v2, v3 FrameID
	h1, h2, h3 FrameID
	s1, s2, s3 FrameID
}

func newSimple() simple {
	t := New()
	return simple{
		t:  t,
		r:  t.Root(),
		v:  t.NewContainer(Vertical),
		h:  t.NewContainer(Horizontal),
		s:  t.NewContainer(Stacked),
		v1: t.NewLeaf(11, Stacked),
		v2: t.NewLeaf(12, Stacked),
		v3: t.NewLeaf(13, Stacked),
		h1: t.NewLeaf(21, Stacked),
		h2: t.NewLeaf(22, Stacked),
		h3: t.NewLeaf(23, Stacked),
		s1: t.NewLeaf(31, Stacked),
		s2: t.NewLeaf(32, Stacked),
		s3: t.NewLeaf(33, Stacked),
	}
}

// makeAppending builds the simple layout by appending every frame.
func makeAppending(tb testing.TB) simple {
	tb.Helper()
	l := newSimple()
	must(tb, l.t.Append(l.r, l.v))
	must(tb, l.t.Append(l.r, l.h))
	must(tb, l.t.Append(l.r, l.s))
	must(tb, l.t.Append(l.v, l.v1))
	must(tb, l.t.Append(l.v, l.v2))
	must(tb, l.t.Append(l.v, l.v3))
	must(tb, l.t.Append(l.h, l.h1))
	must(tb, l.t.Append(l.h, l.h2))
	must(tb, l.t.Append(l.h, l.h3))
	must(tb, l.t.Append(l.s, l.s1))
	must(tb, l.t.Append(l.s, l.s2))
	must(tb, l.t.Append(l.s, l.s3))
	return l
}

// makePrepending builds the simple layout by prepending every frame, so
// temporal order is the reverse of spatial order.
func makePrepending(tb testing.TB) simple {
	tb.Helper()
	l := newSimple()
	must(tb, l.t.Prepend(l.r, l.s))
	must(tb, l.t.Prepend(l.r, l.h))
	must(tb, l.t.Prepend(l.r, l.v))
	must(tb, l.t.Prepend(l.v, l.v3))
	must(tb, l.t.Prepend(l.v, l.v2))
	must(tb, l.t.Prepend(l.v, l.v1))
	must(tb, l.t.Prepend(l.h, l.h3))
	must(tb, l.t.Prepend(l.h, l.h2))
	must(tb, l.t.Prepend(l.h, l.h1))
	must(tb, l.t.Prepend(l.s, l.s3))
	must(tb, l.t.Prepend(l.s, l.s2))
	must(tb, l.t.Prepend(l.s, l.s1))
	return l
}

// makeJoining builds the simple layout by joining frames in the middle, at
// the beginning and at the end of their siblings.
func makeJoining(tb testing.TB) simple {
	tb.Helper()
	l := newSimple()
	must(tb, l.t.Append(l.r, l.v))
	must(tb, l.t.Append(l.r, l.h))
	must(tb, l.t.Append(l.r, l.s))

	must(tb, l.t.Append(l.v, l.v1))
	must(tb, l.t.Append(l.v, l.v3))
	must(tb, l.t.Prejoin(l.v3, l.v2))

	must(tb, l.t.Append(l.h, l.h1))
	must(tb, l.t.Append(l.h, l.h3))
	must(tb, l.t.Adjoin(l.h1, l.h2))

	must(tb, l.t.Append(l.s, l.s2))
	must(tb, l.t.Prejoin(l.s2, l.s1))
	must(tb, l.t.Adjoin(l.s2, l.s3))
	return l
}

// sized is the layout used by the homogenizing tests:
//
//	┌───────────────┬─────┬─────────────┐
//	│┌─────────────┐│     │┌─────┬─────┐│
//	││      A      ││     ││     │     ││
//	│├─────────────┤│     ││     │     ││
//	││     BCD     ││     ││     │     ││
//	│├─────────────┤│  G  ││  H  │  I  ││
//	││┌─────┬─────┐││     ││     │     ││
//	│││  E  │  F  │││     ││     │     ││
//	││└─────┴─────┘││     ││     │     ││
//	│└─────────────┘│     │└─────┴─────┘│
//	└───────────────┴─────┴─────────────┘
type sized struct {
	t                                 *Tree
	r, abcdefghi, hi, abcdef, ef, bcd FrameID
	a, b, c, d, e, f, g, h, i         FrameID
}

// makeSized builds the homogenizing layout with uneven rectangles placed
// directly, none of them pinned.
func makeSized(tb testing.TB) sized {
	tb.Helper()
	t := New()
	l := sized{
		t:         t,
		r:         t.Root(),
		a:         t.NewLeaf(1, Stacked),
		b:         t.NewLeaf(2, Stacked),
		c:         t.NewLeaf(3, Stacked),
		d:         t.NewLeaf(4, Stacked),
		e:         t.NewLeaf(5, Stacked),
		f:         t.NewLeaf(6, Stacked),
		g:         t.NewLeaf(7, Stacked),
		h:         t.NewLeaf(8, Stacked),
		i:         t.NewLeaf(9, Stacked),
		bcd:       t.NewContainer(Stacked),
		ef:        t.NewContainer(Horizontal),
		abcdef:    t.NewContainer(Vertical),
		hi:        t.NewContainer(Horizontal),
		abcdefghi: t.NewContainer(Horizontal),
	}
	must(tb, t.Append(l.bcd, l.b))
	must(tb, t.Append(l.bcd, l.c))
	must(tb, t.Append(l.bcd, l.d))
	must(tb, t.Append(l.ef, l.e))
	must(tb, t.Append(l.ef, l.f))
	must(tb, t.Append(l.abcdef, l.a))
	must(tb, t.Append(l.abcdef, l.bcd))
	must(tb, t.Append(l.abcdef, l.ef))
	must(tb, t.Append(l.hi, l.h))
	must(tb, t.Append(l.hi, l.i))
	must(tb, t.Append(l.abcdefghi, l.abcdef))
	must(tb, t.Append(l.abcdefghi, l.g))
	must(tb, t.Append(l.abcdefghi, l.hi))
	must(tb, t.Append(l.r, l.abcdefghi))

	places := []struct {
		id   FrameID
		area Area
	}{
		{l.r, NewArea(0, 0, 360, 360)},
		{l.abcdefghi, NewArea(0, 0, 360, 360)},
		{l.hi, NewArea(240, 0, 120, 360)},
		{l.abcdef, NewArea(0, 0, 180, 360)},
		{l.ef, NewArea(0, 300, 180, 60)},
		{l.bcd, NewArea(0, 120, 180, 180)},
		{l.i, NewArea(320, 0, 40, 360)},
		{l.h, NewArea(240, 0, 80, 360)},
		{l.g, NewArea(180, 0, 60, 360)},
		{l.f, NewArea(60, 300, 120, 60)},
		{l.e, NewArea(0, 300, 60, 60)},
		{l.d, NewArea(0, 120, 180, 180)},
		{l.c, NewArea(0, 120, 180, 180)},
		{l.b, NewArea(0, 120, 180, 180)},
		{l.a, NewArea(0, 0, 180, 120)},
	}
	for _, p := range places {
		must(tb, t.Place(p.id, p.area))
	}
	return l
}

// testingT is the subset of testing.TB that rapid.T also provides.
type testingT interface {
	Helper()
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
}

func must(tb testingT, err error) {
	tb.Helper()
	if err != nil {
		tb.Fatalf("unexpected error: %v", err)
	}
}

func assertOrder(tb testingT, name string, got, want []FrameID) {
	tb.Helper()
	if !slices.Equal(got, want) {
		tb.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertArea(tb testingT, tr *Tree, name string, id FrameID, want Area) {
	tb.Helper()
	got, err := tr.Area(id)
	if err != nil {
		tb.Fatalf("Area(%s): %v", name, err)
	}
	if got != want {
		tb.Errorf("Area(%s) = %v, want %v", name, got, want)
	}
}

func snapshotOf(tb testingT, tr *Tree) Snapshot {
	tb.Helper()
	snap, ok := tr.Snapshot(tr.Root())
	if !ok {
		tb.Fatal("Snapshot(root) failed")
	}
	return snap
}

func assertUnchanged(tb testingT, tr *Tree, before Snapshot) {
	tb.Helper()
	if after := snapshotOf(tb, tr); !reflect.DeepEqual(before, after) {
		tb.Errorf("tree changed by failed operation:\nbefore %+v\nafter  %+v", before, after)
	}
}

// assertTiled checks that the children of every container below frame tile
// it exactly (Vertical, Horizontal) or coincide with it (Stacked).
func assertTiled(tb testingT, tr *Tree, frame FrameID) {
	tb.Helper()
	tr.Walk(frame, func(f Frame) bool {
		if f.Count == 0 {
			return true
		}
		offset := 0
		for k := range tr.SpaceSeq(f.ID) {
			a, _ := tr.Area(k)
			var want Area
			switch f.Geometry {
			case Stacked:
				want = f.Area
			default:
				want = f.Area.band(f.Geometry, offset, a.major(f.Geometry))
				offset += a.major(f.Geometry)
			}
			if a != want {
				tb.Errorf("child %v of %s %v has area %v, want %v", k, f.Geometry, f.ID, a, want)
			}
		}
		if f.Geometry != Stacked && offset != max(f.Area.major(f.Geometry), 0) {
			tb.Errorf("children of %v span %d, want %d", f.ID, offset, f.Area.major(f.Geometry))
		}
		return true
	})
}
