package frames

import (
	"slices"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
)

// Validate checks the structural invariants of the tree and returns nil if
// they hold:
//
//  1. The root has no parent and is the only frame with RoleRoot.
//  2. Leaves have no children; only leaves hold a surface.
//  3. Every parent's spatial and temporal orders are well linked and are
//     permutations of the same child set, whose size is the child count.
//  4. Parent links are acyclic.
//
// Violations are reported as ErrCodeInvalidTree. The editor maintains these
// invariants; Validate exists for tests and for diagnosing corrupted state.
func (t *Tree) Validate() error {
	for idx := range t.slots {
		s := &t.slots[idx]
		if !s.live {
			continue
		}
		if err := t.validateSlot(idx); err != nil {
			return err
		}
		if s.count == 0 && s.spaceKids.head == none && s.timeKids.head == none {
			continue
		}
		space, err := t.walkOrder(idx, spatial)
		if err != nil {
			return err
		}
		time, err := t.walkOrder(idx, temporal)
		if err != nil {
			return err
		}
		if len(space) != s.count || len(time) != s.count {
			return invalid("%v counts %d children, spatial has %d, temporal has %d",
				t.id(idx), s.count, len(space), len(time))
		}
		slices.Sort(space)
		slices.Sort(time)
		if !slices.Equal(space, time) {
			return invalid("%v spatial and temporal orders hold different children", t.id(idx))
		}
	}
	return nil
}

func (t *Tree) validateSlot(idx int) error {
	s := &t.slots[idx]
	switch {
	case s.role == RoleRoot && idx != t.root:
		return invalid("%v is a second root", t.id(idx))
	case idx == t.root && (s.role != RoleRoot || s.parent != none):
		return invalid("root %v is malformed", t.id(idx))
	case s.role == RoleLeaf && s.count != 0:
		return invalid("leaf %v has %d children", t.id(idx), s.count)
	case s.role != RoleLeaf && s.surface != 0:
		return invalid("%s %v holds surface %d", s.role, t.id(idx), s.surface)
	}
	if s.parent != none {
		p := &t.slots[s.parent]
		if !p.live || p.role == RoleLeaf {
			return invalid("%v has an invalid parent", t.id(idx))
		}
	}
	steps := 0
	for a := s.parent; a != none; a = t.slots[a].parent {
		if steps++; steps > len(t.slots) || a == idx {
			return invalid("%v is part of a parent cycle", t.id(idx))
		}
	}
	return nil
}

// walkOrder follows order o of parent, checking back links and membership.
func (t *Tree) walkOrder(parent int, o order) ([]int, error) {
	var out []int
	prev := none
	for i := t.chainOf(parent, o).head; i != none; i = t.linkOf(i, o).next {
		if len(out) > len(t.slots) {
			return nil, invalid("%v has a looping sibling list", t.id(parent))
		}
		if !t.slots[i].live || t.slots[i].parent != parent {
			return nil, invalid("%v lists foreign frame %v", t.id(parent), t.id(i))
		}
		if t.linkOf(i, o).prev != prev {
			return nil, invalid("%v has a broken back link at %v", t.id(parent), t.id(i))
		}
		out = append(out, i)
		prev = i
	}
	if t.chainOf(parent, o).tail != prev {
		return nil, invalid("%v has a stale tail", t.id(parent))
	}
	seen := make(map[int]bool, len(out))
	for _, i := range out {
		if seen[i] {
			return nil, invalid("%v lists %v twice", t.id(parent), t.id(i))
		}
		seen[i] = true
	}
	return out, nil
}

func invalid(format string, args ...any) error {
	return ferrors.New(ferrors.ErrCodeInvalidTree, format, args...)
}
