package frames

import (
	"cmp"
	"slices"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
)

func (t *Tree) request(idx int) { t.pending[idx] = struct{}{} }

// Pending returns the frames with an outstanding settle request, shallowest
// first.
func (t *Tree) Pending() []FrameID {
	queue := t.pendingQueue()
	out := make([]FrameID, len(queue))
	for i, idx := range queue {
		out[i] = t.id(idx)
	}
	return out
}

func (t *Tree) pendingQueue() []int {
	queue := make([]int, 0, len(t.pending))
	for idx := range t.pending {
		if t.slots[idx].live && t.slots[idx].role != RoleLeaf {
			queue = append(queue, idx)
		}
	}
	depths := make(map[int]int, len(queue))
	for _, idx := range queue {
		depths[idx] = t.depth(idx)
	}
	slices.SortFunc(queue, func(a, b int) int {
		return cmp.Or(cmp.Compare(depths[a], depths[b]), cmp.Compare(a, b))
	})
	return queue
}

// Flush performs every outstanding settle request, shallowest container
// first, and returns the number of rectangles assigned. A container reached
// by the cascade of an ancestor is not settled twice.
func (t *Tree) Flush() int {
	if len(t.pending) == 0 {
		return 0
	}
	queue := t.pendingQueue()
	clear(t.pending)

	seen := make(map[int]bool, len(queue))
	n := 0
	for _, idx := range queue {
		if !seen[idx] {
			n += t.settle(idx, false, seen)
		}
	}
	return n
}

// Settle recomputes the rectangles of the whole subtree below frame from
// frame's current area. It never fails for a known handle.
func (t *Tree) Settle(frame FrameID) error {
	idx, err := t.index(frame)
	if err != nil {
		return err
	}
	t.settle(idx, true, make(map[int]bool))
	return nil
}

// Reshape sets the area of frame as part of top-level layout, for example
// after an output resize, and settles its whole subtree. Pinned flags are
// left as they are, so pinned descendants stay pinned.
func (t *Tree) Reshape(frame FrameID, area Area) error {
	idx, err := t.index(frame)
	if err != nil {
		return err
	}
	t.slots[idx].area = area
	t.settle(idx, true, make(map[int]bool))
	return nil
}

// Resize applies a direct resize request: the frame's area is set, the frame
// is pinned and its parent is asked to settle, redistributing the siblings
// around the pinned extent. Resized containers are asked to settle too.
//
// Resizing a frame without a parent fails with ErrCodeInvalidTree; use
// Reshape for the root.
func (t *Tree) Resize(frame FrameID, area Area) error {
	idx, err := t.index(frame)
	if err != nil {
		return err
	}
	s := &t.slots[idx]
	if s.parent == none {
		return ferrors.New(ferrors.ErrCodeInvalidTree, "%v has no parent to settle against", frame)
	}
	s.area = area
	s.pinned = true
	t.request(s.parent)
	if s.count > 0 {
		t.request(idx)
	}
	return nil
}

// Place assigns an area without pinning and without settling. It seeds
// stored layouts whose rectangles are already known.
func (t *Tree) Place(frame FrameID, area Area) error {
	idx, err := t.index(frame)
	if err != nil {
		return err
	}
	t.slots[idx].area = area
	return nil
}

// Unpin clears the pinned flag of frame and asks its parent to settle.
func (t *Tree) Unpin(frame FrameID) error {
	idx, err := t.index(frame)
	if err != nil {
		return err
	}
	s := &t.slots[idx]
	if !s.pinned {
		return nil
	}
	s.pinned = false
	if s.parent != none {
		t.request(s.parent)
	}
	return nil
}

// settle lays out the children of container and walks down into child
// containers whose area changed (or all of them when force is set). An
// explicit work list keeps deep trees off the call stack.
func (t *Tree) settle(container int, force bool, seen map[int]bool) int {
	n := 0
	work := []int{container}
	for len(work) > 0 {
		c := work[len(work)-1]
		work = work[:len(work)-1]
		seen[c] = true

		kids := t.indices(c, spatial)
		areas := t.distribute(c, kids)
		for i, k := range kids {
			old := t.slots[k].area
			t.slots[k].area = areas[i]
			n++
			if t.slots[k].count > 0 && (force || old != areas[i]) {
				work = append(work, k)
			}
		}
	}
	return n
}

// distribute computes the areas of kids, given in spatial order, inside
// container c.
func (t *Tree) distribute(c int, kids []int) []Area {
	area, g := t.slots[c].area, t.slots[c].geometry
	out := make([]Area, len(kids))
	if g == Stacked {
		for i := range out {
			out[i] = area
		}
		return out
	}

	total := max(area.major(g), 0)
	extents := make([]int, len(kids))
	var pinned, free []int
	claimed := 0
	for i, k := range kids {
		if t.slots[k].pinned {
			extents[i] = max(t.slots[k].area.major(g), 0)
			claimed += extents[i]
			pinned = append(pinned, i)
		} else {
			free = append(free, i)
		}
	}

	if len(free) == 0 || claimed > total {
		wants := make([]int, len(pinned))
		for j, i := range pinned {
			wants[j] = extents[i]
		}
		fitted := t.policy.Fit(wants, total)
		if len(fitted) != len(wants) {
			fitted = fitProportional(wants, total)
		}
		for j, e := range fitted {
			extents[pinned[j]] = e
		}
		claimed = total
	}
	for j, e := range divide(total-claimed, len(free)) {
		extents[free[j]] = e
	}

	offset := 0
	for i, e := range extents {
		out[i] = area.band(g, offset, e)
		offset += e
	}
	return out
}
