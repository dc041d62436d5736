package frames

import (
	ferrors "github.com/matzehuels/frametree/pkg/errors"
)

// Append inserts the detached frame at the tail of parent's spatial order and
// at the tail of its temporal order: last on screen, least recently active.
//
// Like every insertion it fails with ErrCodeInvalidTree if frame is attached,
// is the root, equals the target or is an ancestor of it; with
// ErrCodeNotFound for unknown handles; and with ErrCodeGeometryMismatch if
// parent is a leaf. Nothing is modified when an error is returned.
func (t *Tree) Append(parent, frame FrameID) error {
	p, f, err := t.checkInsert(parent, frame, false)
	if err != nil {
		return err
	}
	t.pushBack(p, f, spatial)
	t.pushBack(p, f, temporal)
	t.adopt(p, f)
	return nil
}

// Prepend inserts the detached frame at the head of parent's spatial order
// but at the tail of its temporal order: first on screen, yet no more recent
// than its older siblings.
func (t *Tree) Prepend(parent, frame FrameID) error {
	p, f, err := t.checkInsert(parent, frame, false)
	if err != nil {
		return err
	}
	t.pushFront(p, f, spatial)
	t.pushBack(p, f, temporal)
	t.adopt(p, f)
	return nil
}

// Adjoin inserts the detached frame right after sibling in both orders,
// under sibling's parent.
func (t *Tree) Adjoin(sibling, frame FrameID) error {
	s, f, err := t.checkInsert(sibling, frame, true)
	if err != nil {
		return err
	}
	p := t.slots[s].parent
	t.insertAfter(p, s, f, spatial)
	t.insertAfter(p, s, f, temporal)
	t.adopt(p, f)
	return nil
}

// Prejoin inserts the detached frame right before sibling in both orders,
// under sibling's parent.
func (t *Tree) Prejoin(sibling, frame FrameID) error {
	s, f, err := t.checkInsert(sibling, frame, true)
	if err != nil {
		return err
	}
	p := t.slots[s].parent
	t.insertBefore(p, s, f, spatial)
	t.insertBefore(p, s, f, temporal)
	t.adopt(p, f)
	return nil
}

// Detach removes frame from both orders of its parent and clears its parent
// link and pinned flag. The frame, with its subtree, becomes a standalone
// subtree owned by the caller, who may insert it again or Discard it.
func (t *Tree) Detach(frame FrameID) error {
	f, err := t.index(frame)
	if err != nil {
		return err
	}
	s := &t.slots[f]
	if s.role == RoleRoot {
		return ferrors.New(ferrors.ErrCodeInvalidTree, "cannot detach the root")
	}
	if s.parent == none {
		return ferrors.New(ferrors.ErrCodeInvalidTree, "%v is not attached", frame)
	}
	p := s.parent
	t.unlink(p, f, spatial)
	t.unlink(p, f, temporal)
	t.slots[p].count--
	s.parent = none
	s.pinned = false
	t.request(p)
	return nil
}

// Discard releases a detached frame and its whole subtree. Handles into the
// subtree become stale.
func (t *Tree) Discard(frame FrameID) error {
	f, err := t.index(frame)
	if err != nil {
		return err
	}
	if t.slots[f].role == RoleRoot {
		return ferrors.New(ferrors.ErrCodeInvalidTree, "cannot discard the root")
	}
	if t.slots[f].parent != none {
		return ferrors.New(ferrors.ErrCodeInvalidTree, "%v must be detached before discard", frame)
	}
	stack := []int{f}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, t.indices(i, spatial)...)
		t.release(i)
	}
	return nil
}

// Pop moves frame to the head of its parent's temporal order, making it the
// most recent sibling. Spatial order is untouched and no settle is requested.
func (t *Tree) Pop(frame FrameID) error {
	f, err := t.index(frame)
	if err != nil {
		return err
	}
	p := t.slots[f].parent
	if p == none {
		return ferrors.New(ferrors.ErrCodeInvalidTree, "%v has no parent", frame)
	}
	t.raise(p, f)
	return nil
}

// PopRecursively pops frame and every ancestor up to the top of its subtree,
// so that frame ends up visible through any number of nested stacks.
func (t *Tree) PopRecursively(frame FrameID) error {
	f, err := t.index(frame)
	if err != nil {
		return err
	}
	for p := t.slots[f].parent; p != none; f, p = p, t.slots[p].parent {
		t.raise(p, f)
	}
	return nil
}

func (t *Tree) raise(p, f int) {
	if t.slots[p].timeKids.head == f {
		return
	}
	t.unlink(p, f, temporal)
	t.pushFront(p, f, temporal)
}

// SetGeometry changes the layout mode of frame. For containers and the root
// a settle is requested; for leaves only the stored mode changes.
func (t *Tree) SetGeometry(frame FrameID, g Geometry) error {
	f, err := t.index(frame)
	if err != nil {
		return err
	}
	if t.slots[f].geometry == g {
		return nil
	}
	t.slots[f].geometry = g
	if t.slots[f].role != RoleLeaf {
		t.request(f)
	}
	return nil
}

// Ramify wraps an attached frame in a new container of geometry g. The
// container takes the frame's place in both orders, inherits its area and
// pinned flag, and holds the frame as its only child.
func (t *Tree) Ramify(frame FrameID, g Geometry) (FrameID, error) {
	f, err := t.index(frame)
	if err != nil {
		return NoFrame, err
	}
	p := t.slots[f].parent
	if p == none {
		return NoFrame, ferrors.New(ferrors.ErrCodeInvalidTree, "%v is not attached", frame)
	}
	c := t.alloc(RoleContainer, g, 0)
	t.insertAfter(p, f, c, spatial)
	t.insertAfter(p, f, c, temporal)
	t.unlink(p, f, spatial)
	t.unlink(p, f, temporal)
	t.slots[c].parent = p
	t.slots[c].area = t.slots[f].area
	t.slots[c].pinned = t.slots[f].pinned
	t.slots[f].pinned = false
	t.pushBack(c, f, spatial)
	t.pushBack(c, f, temporal)
	t.slots[f].parent = c
	t.slots[c].count = 1
	t.request(p)
	t.request(c)
	return t.id(c), nil
}

// Deramify collapses a container holding exactly one child: the child takes
// the container's place in both orders and the container is released.
// The child inherits the container's pinned flag, since it now occupies the
// extent the container had; its own flag described a slot that is gone.
// Returns the child.
func (t *Tree) Deramify(frame FrameID) (FrameID, error) {
	c, err := t.index(frame)
	if err != nil {
		return NoFrame, err
	}
	s := &t.slots[c]
	if s.role != RoleContainer {
		return NoFrame, ferrors.New(ferrors.ErrCodeGeometryMismatch, "%v is a %s, not a container", frame, s.role)
	}
	if s.parent == none {
		return NoFrame, ferrors.New(ferrors.ErrCodeInvalidTree, "%v is not attached", frame)
	}
	if s.count != 1 {
		return NoFrame, ferrors.New(ferrors.ErrCodeInvalidTree, "%v has %d children, want 1", frame, s.count)
	}
	p, k := s.parent, s.spaceKids.head
	t.unlink(c, k, spatial)
	t.unlink(c, k, temporal)
	t.insertAfter(p, c, k, spatial)
	t.insertAfter(p, c, k, temporal)
	t.unlink(p, c, spatial)
	t.unlink(p, c, temporal)
	t.slots[k].parent = p
	t.slots[k].pinned = t.slots[c].pinned
	t.release(c)
	t.request(p)
	return t.id(k), nil
}

// checkInsert resolves and validates an insertion of frame relative to
// target. With viaSibling the new parent is target's parent, otherwise
// target itself. Returns the target and frame indices.
func (t *Tree) checkInsert(target, frame FrameID, viaSibling bool) (int, int, error) {
	tgt, err := t.index(target)
	if err != nil {
		return none, none, err
	}
	f, err := t.index(frame)
	if err != nil {
		return none, none, err
	}
	if f == tgt {
		return none, none, ferrors.New(ferrors.ErrCodeInvalidTree, "cannot insert %v relative to itself", frame)
	}
	if t.slots[f].role == RoleRoot {
		return none, none, ferrors.New(ferrors.ErrCodeInvalidTree, "cannot insert the root")
	}
	if t.slots[f].parent != none {
		return none, none, ferrors.New(ferrors.ErrCodeInvalidTree, "%v is already attached", frame)
	}

	p := tgt
	if viaSibling {
		p = t.slots[tgt].parent
		if p == none {
			return none, none, ferrors.New(ferrors.ErrCodeInvalidTree, "sibling %v has no parent", target)
		}
	} else if t.slots[p].role == RoleLeaf {
		return none, none, ferrors.New(ferrors.ErrCodeGeometryMismatch, "cannot insert into leaf %v", target)
	}

	for a := p; a != none; a = t.slots[a].parent {
		if a == f {
			return none, none, ferrors.New(ferrors.ErrCodeInvalidTree, "inserting %v under %v would create a cycle", frame, target)
		}
	}
	return tgt, f, nil
}

func (t *Tree) adopt(p, f int) {
	t.slots[f].parent = p
	t.slots[p].count++
	t.request(p)
}
