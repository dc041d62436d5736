package frames

import (
	"testing"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
)

func TestHomogenize(t *testing.T) {
	tests := []struct {
		name     string
		geometry Geometry
		total    int
		kids     int
		pins     map[int]int
		policy   OverflowPolicy
		want     []int
	}{
		{name: "even", geometry: Horizontal, total: 360, kids: 3, want: []int{120, 120, 120}},
		{name: "remainder", geometry: Horizontal, total: 100, kids: 3, want: []int{34, 33, 33}},
		{name: "vertical", geometry: Vertical, total: 90, kids: 3, want: []int{30, 30, 30}},
		{name: "single", geometry: Vertical, total: 90, kids: 1, want: []int{90}},
		{name: "one pinned", geometry: Horizontal, total: 360, kids: 3, pins: map[int]int{0: 60}, want: []int{60, 150, 150}},
		{name: "pinned middle", geometry: Vertical, total: 360, kids: 3, pins: map[int]int{1: 200}, want: []int{80, 200, 80}},
		{name: "pinned fill", geometry: Horizontal, total: 360, kids: 2, pins: map[int]int{0: 360}, want: []int{360, 0}},
		{
			name: "all pinned proportional", geometry: Horizontal, total: 300, kids: 2,
			pins: map[int]int{0: 100, 1: 100}, want: []int{150, 150},
		},
		{
			name: "all pinned priority", geometry: Horizontal, total: 300, kids: 2,
			pins: map[int]int{0: 100, 1: 100}, policy: Priority, want: []int{100, 200},
		},
		{
			name: "overflow proportional", geometry: Horizontal, total: 360, kids: 3,
			pins: map[int]int{0: 300, 1: 300}, want: []int{180, 180, 0},
		},
		{
			name: "overflow priority", geometry: Horizontal, total: 360, kids: 3,
			pins: map[int]int{0: 300, 1: 300}, policy: Priority, want: []int{300, 60, 0},
		},
		{
			name: "custom policy", geometry: Horizontal, total: 90, kids: 2,
			pins: map[int]int{0: 10, 1: 10},
			policy: OverflowPolicyFunc(func(extents []int, total int) []int {
				return []int{0, total}
			}),
			want: []int{0, 90},
		},
		{
			name: "broken policy", geometry: Horizontal, total: 90, kids: 2,
			pins: map[int]int{0: 10, 1: 20},
			policy: OverflowPolicyFunc(func(extents []int, total int) []int {
				return nil
			}),
			want: []int{30, 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(WithPolicy(tt.policy))
			c := tr.NewContainer(tt.geometry)
			must(t, tr.Append(tr.Root(), c))
			kids := make([]FrameID, tt.kids)
			for i := range kids {
				kids[i] = tr.NewLeaf(SurfaceID(i+1), Stacked)
				must(t, tr.Append(c, kids[i]))
			}

			root := NewArea(0, 0, 100, 100)
			if tt.geometry == Vertical {
				root.Size.Height = tt.total
			} else {
				root.Size.Width = tt.total
			}
			must(t, tr.Reshape(tr.Root(), root))
			for i, e := range tt.pins {
				must(t, tr.Resize(kids[i], root.band(tt.geometry, 0, e)))
			}
			tr.Flush()

			offset := 0
			for i, e := range tt.want {
				assertArea(t, tr, "kid", kids[i], root.band(tt.geometry, offset, e))
				offset += e
			}
			assertTiled(t, tr, tr.Root())
		})
	}
}

func TestStackedOverlap(t *testing.T) {
	l := makeAppending(t)
	area := NewArea(10, 20, 200, 100)
	must(t, l.t.Reshape(l.r, area))

	for _, id := range []FrameID{l.v, l.h, l.s, l.s1, l.s2, l.s3} {
		assertArea(t, l.t, id.String(), id, area)
	}
	assertArea(t, l.t, "v2", l.v2, NewArea(10, 54, 200, 33))
	assertArea(t, l.t, "h3", l.h3, NewArea(144, 20, 66, 100))
}

func TestSettleCascade(t *testing.T) {
	want := func(l sized) map[FrameID]Area {
		return map[FrameID]Area{
			l.abcdefghi: NewArea(0, 0, 360, 360),
			l.abcdef:    NewArea(0, 0, 120, 360),
			l.g:         NewArea(120, 0, 120, 360),
			l.hi:        NewArea(240, 0, 120, 360),
			l.a:         NewArea(0, 0, 120, 120),
			l.bcd:       NewArea(0, 120, 120, 120),
			l.b:         NewArea(0, 120, 120, 120),
			l.c:         NewArea(0, 120, 120, 120),
			l.d:         NewArea(0, 120, 120, 120),
			l.ef:        NewArea(0, 240, 120, 120),
			l.e:         NewArea(0, 240, 60, 120),
			l.f:         NewArea(60, 240, 60, 120),
			l.h:         NewArea(240, 0, 60, 360),
			l.i:         NewArea(300, 0, 60, 360),
		}
	}

	t.Run("settle", func(t *testing.T) {
		l := makeSized(t)
		must(t, l.t.Settle(l.r))
		for id, area := range want(l) {
			assertArea(t, l.t, id.String(), id, area)
		}
	})

	t.Run("flush", func(t *testing.T) {
		l := makeSized(t)
		if n := l.t.Flush(); n != 14 {
			t.Errorf("Flush() = %d, want 14 assignments", n)
		}
		for id, area := range want(l) {
			assertArea(t, l.t, id.String(), id, area)
		}
		if n := l.t.Flush(); n != 0 {
			t.Errorf("second Flush() = %d, want 0", n)
		}
	})
}

func TestPending(t *testing.T) {
	l := makeAppending(t)
	assertOrder(t, "Pending", l.t.Pending(), []FrameID{l.r, l.v, l.h, l.s})

	l.t.Flush()
	if p := l.t.Pending(); len(p) != 0 {
		t.Errorf("Pending() after Flush = %v", p)
	}

	must(t, l.t.Resize(l.v2, NewArea(0, 0, 10, 10)))
	must(t, l.t.Resize(l.h, NewArea(0, 0, 10, 10)))
	assertOrder(t, "Pending", l.t.Pending(), []FrameID{l.r, l.v, l.h})
}

func TestReshapeKeepsPins(t *testing.T) {
	tr := New(WithRootGeometry(Horizontal))
	kids := []FrameID{tr.NewLeaf(1, Stacked), tr.NewLeaf(2, Stacked), tr.NewLeaf(3, Stacked)}
	for _, k := range kids {
		must(t, tr.Append(tr.Root(), k))
	}
	must(t, tr.Reshape(tr.Root(), NewArea(0, 0, 300, 100)))
	must(t, tr.Resize(kids[0], NewArea(0, 0, 60, 100)))
	tr.Flush()
	assertArea(t, tr, "kid1", kids[1], NewArea(60, 0, 120, 100))

	must(t, tr.Reshape(tr.Root(), NewArea(0, 0, 600, 50)))

	if f, _ := tr.Frame(kids[0]); !f.Pinned {
		t.Error("Reshape cleared the pin")
	}
	assertArea(t, tr, "kid0", kids[0], NewArea(0, 0, 60, 50))
	assertArea(t, tr, "kid1", kids[1], NewArea(60, 0, 270, 50))
	assertArea(t, tr, "kid2", kids[2], NewArea(330, 0, 270, 50))

	must(t, tr.Unpin(kids[0]))
	tr.Flush()
	assertArea(t, tr, "kid0", kids[0], NewArea(0, 0, 200, 50))
}

func TestResizeContainer(t *testing.T) {
	tr := New(WithRootGeometry(Horizontal))
	x := tr.NewLeaf(1, Stacked)
	sub := tr.NewContainer(Vertical)
	y, z := tr.NewLeaf(2, Stacked), tr.NewLeaf(3, Stacked)
	must(t, tr.Append(tr.Root(), x))
	must(t, tr.Append(tr.Root(), sub))
	must(t, tr.Append(sub, y))
	must(t, tr.Append(sub, z))
	must(t, tr.Reshape(tr.Root(), NewArea(0, 0, 200, 100)))
	tr.Flush()

	must(t, tr.Resize(sub, NewArea(0, 0, 80, 100)))
	tr.Flush()

	assertArea(t, tr, "x", x, NewArea(0, 0, 120, 100))
	assertArea(t, tr, "sub", sub, NewArea(120, 0, 80, 100))
	assertArea(t, tr, "y", y, NewArea(120, 0, 80, 50))
	assertArea(t, tr, "z", z, NewArea(120, 50, 80, 50))
}

func TestPlace(t *testing.T) {
	l := makeAppending(t)
	l.t.Flush()

	area := NewArea(1, 2, 3, 4)
	must(t, l.t.Place(l.v1, area))
	assertArea(t, l.t, "v1", l.v1, area)
	if f, _ := l.t.Frame(l.v1); f.Pinned {
		t.Error("Place pinned the frame")
	}
	if p := l.t.Pending(); len(p) != 0 {
		t.Errorf("Place requested a settle: %v", p)
	}
}

func TestDetachedSubtreeSettles(t *testing.T) {
	tr := New()
	c := tr.NewContainer(Horizontal)
	a, b := tr.NewLeaf(1, Stacked), tr.NewLeaf(2, Stacked)
	must(t, tr.Append(c, a))
	must(t, tr.Append(c, b))
	must(t, tr.Place(c, NewArea(0, 0, 100, 50)))
	tr.Flush()

	assertArea(t, tr, "a", a, NewArea(0, 0, 50, 50))
	assertArea(t, tr, "b", b, NewArea(50, 0, 50, 50))
}

func TestSettleUnknown(t *testing.T) {
	tr := New()
	for name, err := range map[string]error{
		"Settle":  tr.Settle(FrameID(42)),
		"Reshape": tr.Reshape(FrameID(42), Area{}),
		"Resize":  tr.Resize(FrameID(42), Area{}),
		"Place":   tr.Place(FrameID(42), Area{}),
		"Unpin":   tr.Unpin(FrameID(42)),
	} {
		if !ferrors.Is(err, ferrors.ErrCodeNotFound) {
			t.Errorf("%s(unknown) = %v, want NOT_FOUND", name, err)
		}
	}
}
