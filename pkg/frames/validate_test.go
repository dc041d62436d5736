package frames

import (
	"testing"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
)

func TestValidate(t *testing.T) {
	for name, build := range map[string]func(testing.TB) simple{
		"appending":  makeAppending,
		"prepending": makePrepending,
		"joining":    makeJoining,
	} {
		if err := build(t).t.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", name, err)
		}
	}
}

func TestValidateCorrupted(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(l simple)
	}{
		{"count", func(l simple) {
			idx, _ := l.t.index(l.v)
			l.t.slots[idx].count++
		}},
		{"surface on container", func(l simple) {
			idx, _ := l.t.index(l.h)
			l.t.slots[idx].surface = 5
		}},
		{"leaf with children", func(l simple) {
			idx, _ := l.t.index(l.s)
			l.t.slots[idx].role = RoleLeaf
		}},
		{"broken back link", func(l simple) {
			idx, _ := l.t.index(l.h3)
			l.t.slots[idx].space.prev = none
		}},
		{"stale tail", func(l simple) {
			idx, _ := l.t.index(l.v)
			l.t.slots[idx].timeKids.tail = l.t.slots[idx].timeKids.head
		}},
		{"orders disagree", func(l simple) {
			v, _ := l.t.index(l.v)
			h1, _ := l.t.index(l.h1)
			l.t.slots[v].timeKids.head = h1
		}},
		{"second root", func(l simple) {
			idx, _ := l.t.index(l.v1)
			l.t.slots[idx].role = RoleRoot
		}},
		{"cycle", func(l simple) {
			r, _ := l.t.index(l.r)
			v, _ := l.t.index(l.v)
			l.t.slots[r].parent = v
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := makeAppending(t)
			tt.corrupt(l)
			if err := l.t.Validate(); !ferrors.Is(err, ferrors.ErrCodeInvalidTree) {
				t.Errorf("Validate() = %v, want INVALID_TREE", err)
			}
		})
	}
}
