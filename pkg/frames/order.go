package frames

import "iter"

// order selects one of the two sibling orders kept per parent.
type order int

const (
	// spatial order drives layout position and render iteration.
	spatial order = iota
	// temporal order drives recency; the head is the most recent child.
	temporal
)

func (t *Tree) linkOf(idx int, o order) *link {
	if o == spatial {
		return &t.slots[idx].space
	}
	return &t.slots[idx].time
}

func (t *Tree) chainOf(idx int, o order) *chain {
	if o == spatial {
		return &t.slots[idx].spaceKids
	}
	return &t.slots[idx].timeKids
}

func (t *Tree) pushFront(parent, child int, o order) {
	c, l := t.chainOf(parent, o), t.linkOf(child, o)
	l.prev, l.next = none, c.head
	if c.head != none {
		t.linkOf(c.head, o).prev = child
	} else {
		c.tail = child
	}
	c.head = child
}

func (t *Tree) pushBack(parent, child int, o order) {
	c, l := t.chainOf(parent, o), t.linkOf(child, o)
	l.prev, l.next = c.tail, none
	if c.tail != none {
		t.linkOf(c.tail, o).next = child
	} else {
		c.head = child
	}
	c.tail = child
}

func (t *Tree) insertAfter(parent, anchor, child int, o order) {
	a, l := t.linkOf(anchor, o), t.linkOf(child, o)
	l.prev, l.next = anchor, a.next
	if a.next != none {
		t.linkOf(a.next, o).prev = child
	} else {
		t.chainOf(parent, o).tail = child
	}
	a.next = child
}

func (t *Tree) insertBefore(parent, anchor, child int, o order) {
	a, l := t.linkOf(anchor, o), t.linkOf(child, o)
	l.prev, l.next = a.prev, anchor
	if a.prev != none {
		t.linkOf(a.prev, o).next = child
	} else {
		t.chainOf(parent, o).head = child
	}
	a.prev = child
}

func (t *Tree) unlink(parent, child int, o order) {
	c, l := t.chainOf(parent, o), t.linkOf(child, o)
	if l.prev != none {
		t.linkOf(l.prev, o).next = l.next
	} else {
		c.head = l.next
	}
	if l.next != none {
		t.linkOf(l.next, o).prev = l.prev
	} else {
		c.tail = l.prev
	}
	l.prev, l.next = none, none
}

// indices returns the children of parent in order o.
func (t *Tree) indices(parent int, o order) []int {
	out := make([]int, 0, t.slots[parent].count)
	for i := t.chainOf(parent, o).head; i != none; i = t.linkOf(i, o).next {
		out = append(out, i)
	}
	return out
}

func (t *Tree) ids(id FrameID, o order, reverse bool) []FrameID {
	idx, err := t.index(id)
	if err != nil {
		return nil
	}
	out := make([]FrameID, 0, t.slots[idx].count)
	if reverse {
		for i := t.chainOf(idx, o).tail; i != none; i = t.linkOf(i, o).prev {
			out = append(out, t.id(i))
		}
		return out
	}
	for i := t.chainOf(idx, o).head; i != none; i = t.linkOf(i, o).next {
		out = append(out, t.id(i))
	}
	return out
}

// Spatial returns the children of id in spatial order (layout position).
// Returns nil if id is unknown.
func (t *Tree) Spatial(id FrameID) []FrameID { return t.ids(id, spatial, false) }

// SpatialReverse returns the children of id in reverse spatial order.
func (t *Tree) SpatialReverse(id FrameID) []FrameID { return t.ids(id, spatial, true) }

// Temporal returns the children of id in temporal order, most recent first.
// Returns nil if id is unknown.
func (t *Tree) Temporal(id FrameID) []FrameID { return t.ids(id, temporal, false) }

// TemporalReverse returns the children of id from least to most recent.
func (t *Tree) TemporalReverse(id FrameID) []FrameID { return t.ids(id, temporal, true) }

// SpaceSeq iterates the children of id in spatial order.
// The tree must not be edited while iterating.
func (t *Tree) SpaceSeq(id FrameID) iter.Seq[FrameID] { return t.seq(id, spatial) }

// TimeSeq iterates the children of id in temporal order.
// The tree must not be edited while iterating.
func (t *Tree) TimeSeq(id FrameID) iter.Seq[FrameID] { return t.seq(id, temporal) }

func (t *Tree) seq(id FrameID, o order) iter.Seq[FrameID] {
	return func(yield func(FrameID) bool) {
		idx, err := t.index(id)
		if err != nil {
			return
		}
		for i := t.chainOf(idx, o).head; i != none; i = t.linkOf(i, o).next {
			if !yield(t.id(i)) {
				return
			}
		}
	}
}

// Next returns the spatial successor of id among its siblings.
func (t *Tree) Next(id FrameID) FrameID { return t.sibling(id, func(l link) int { return l.next }) }

// Prev returns the spatial predecessor of id among its siblings.
func (t *Tree) Prev(id FrameID) FrameID { return t.sibling(id, func(l link) int { return l.prev }) }

func (t *Tree) sibling(id FrameID, pick func(link) int) FrameID {
	idx, err := t.index(id)
	if err != nil {
		return NoFrame
	}
	return t.id(pick(t.slots[idx].space))
}
