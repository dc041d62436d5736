package frames

import (
	"slices"
	"testing"
)

func TestOrders(t *testing.T) {
	tests := []struct {
		name     string
		build    func(testing.TB) simple
		temporal func(simple) [][]FrameID
	}{
		{
			name:  "appending",
			build: makeAppending,
			temporal: func(l simple) [][]FrameID {
				return [][]FrameID{{l.v, l.h, l.s}, {l.v1, l.v2, l.v3}, {l.h1, l.h2, l.h3}, {l.s1, l.s2, l.s3}}
			},
		},
		{
			name:  "prepending",
			build: makePrepending,
			temporal: func(l simple) [][]FrameID {
				return [][]FrameID{{l.s, l.h, l.v}, {l.v3, l.v2, l.v1}, {l.h3, l.h2, l.h1}, {l.s3, l.s2, l.s1}}
			},
		},
		{
			name:  "joining",
			build: makeJoining,
			temporal: func(l simple) [][]FrameID {
				return [][]FrameID{{l.v, l.h, l.s}, {l.v1, l.v2, l.v3}, {l.h1, l.h2, l.h3}, {l.s1, l.s2, l.s3}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.build(t)
			parents := []FrameID{l.r, l.v, l.h, l.s}
			spatial := [][]FrameID{{l.v, l.h, l.s}, {l.v1, l.v2, l.v3}, {l.h1, l.h2, l.h3}, {l.s1, l.s2, l.s3}}
			temporal := tt.temporal(l)

			for i, p := range parents {
				assertOrder(t, "Spatial", l.t.Spatial(p), spatial[i])
				assertOrder(t, "Temporal", l.t.Temporal(p), temporal[i])

				rev := slices.Clone(spatial[i])
				slices.Reverse(rev)
				assertOrder(t, "SpatialReverse", l.t.SpatialReverse(p), rev)

				rev = slices.Clone(temporal[i])
				slices.Reverse(rev)
				assertOrder(t, "TemporalReverse", l.t.TemporalReverse(p), rev)

				if got := l.t.Count(p); got != 3 {
					t.Errorf("Count(%v) = %d, want 3", p, got)
				}
			}
			if err := l.t.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestSeq(t *testing.T) {
	l := makePrepending(t)

	got := slices.Collect(l.t.SpaceSeq(l.h))
	assertOrder(t, "SpaceSeq", got, []FrameID{l.h1, l.h2, l.h3})

	got = slices.Collect(l.t.TimeSeq(l.h))
	assertOrder(t, "TimeSeq", got, []FrameID{l.h3, l.h2, l.h1})

	// Early break stops the iteration.
	var first []FrameID
	for id := range l.t.SpaceSeq(l.r) {
		first = append(first, id)
		break
	}
	assertOrder(t, "SpaceSeq break", first, []FrameID{l.v})

	if got := slices.Collect(l.t.SpaceSeq(NoFrame)); len(got) != 0 {
		t.Errorf("SpaceSeq(NoFrame) yielded %v", got)
	}
}

func TestNextPrev(t *testing.T) {
	l := makeJoining(t)

	tests := []struct {
		id         FrameID
		next, prev FrameID
	}{
		{l.v1, l.v2, NoFrame},
		{l.v2, l.v3, l.v1},
		{l.v3, NoFrame, l.v2},
		{l.h, l.s, l.v},
		{l.r, NoFrame, NoFrame},
	}
	for _, tt := range tests {
		if got := l.t.Next(tt.id); got != tt.next {
			t.Errorf("Next(%v) = %v, want %v", tt.id, got, tt.next)
		}
		if got := l.t.Prev(tt.id); got != tt.prev {
			t.Errorf("Prev(%v) = %v, want %v", tt.id, got, tt.prev)
		}
	}
}

func TestTop(t *testing.T) {
	l := makePrepending(t)

	if got := l.t.Top(l.s); got != l.s3 {
		t.Errorf("Top(s) = %v, want s3", got)
	}
	if got := l.t.Top(l.s1); got != NoFrame {
		t.Errorf("Top(leaf) = %v, want NoFrame", got)
	}
}
