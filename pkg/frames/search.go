package frames

// Walk visits frame and its descendants depth-first in spatial order. When
// fn returns false the children of that frame are skipped.
func (t *Tree) Walk(frame FrameID, fn func(Frame) bool) {
	idx, err := t.index(frame)
	if err != nil {
		return
	}
	stack := []int{idx}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f, _ := t.Frame(t.id(i))
		if !fn(f) {
			continue
		}
		for k := t.slots[i].spaceKids.tail; k != none; k = t.slots[k].space.prev {
			stack = append(stack, k)
		}
	}
}

// FindSurface returns the attached leaf holding sid.
func (t *Tree) FindSurface(sid SurfaceID) (FrameID, bool) {
	found := NoFrame
	t.Walk(t.Root(), func(f Frame) bool {
		if found != NoFrame {
			return false
		}
		if f.Role == RoleLeaf && f.Surface == sid {
			found = f.ID
		}
		return true
	})
	return found, found != NoFrame
}

// FindTop returns the ancestor of frame (or frame itself) that sits directly
// under the root. It fails for the root and for detached frames.
func (t *Tree) FindTop(frame FrameID) (FrameID, bool) {
	idx, err := t.index(frame)
	if err != nil || idx == t.root {
		return NoFrame, false
	}
	for t.slots[idx].parent != none {
		if t.slots[idx].parent == t.root {
			return t.id(idx), true
		}
		idx = t.slots[idx].parent
	}
	return NoFrame, false
}

// FindPointed returns the deepest attached frame whose area contains pos.
// Inside a Stacked container only the top child is considered.
func (t *Tree) FindPointed(pos Position) (FrameID, bool) {
	cur := t.root
	if !t.slots[cur].area.Contains(pos) {
		return NoFrame, false
	}
	for {
		next := none
		if t.slots[cur].geometry == Stacked {
			if h := t.slots[cur].timeKids.head; h != none && t.slots[h].area.Contains(pos) {
				next = h
			}
		} else {
			for k := t.slots[cur].spaceKids.head; k != none; k = t.slots[k].space.next {
				if t.slots[k].area.Contains(pos) {
					next = k
					break
				}
			}
		}
		if next == none {
			return t.id(cur), true
		}
		cur = next
	}
}

// FindAdjacent returns the spatial neighbour of frame in direction dir: the
// sibling, in the nearest ancestor laid out along dir's axis, next to the
// branch holding frame. The result may be a container.
func (t *Tree) FindAdjacent(frame FrameID, dir Direction) (FrameID, bool) {
	idx, err := t.index(frame)
	if err != nil {
		return NoFrame, false
	}
	for p := t.slots[idx].parent; p != none; idx, p = p, t.slots[p].parent {
		if t.slots[p].geometry != dir.axis() {
			continue
		}
		n := t.slots[idx].space.prev
		if dir.forward() {
			n = t.slots[idx].space.next
		}
		if n != none {
			return t.id(n), true
		}
	}
	return NoFrame, false
}
