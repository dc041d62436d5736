package frames

// Snapshot is a value copy of a subtree. Two snapshots are equal under
// reflect.DeepEqual exactly when the subtrees have the same shape, the same
// attributes and the same sibling orders.
type Snapshot struct {
	Role     Role      `json:"role" yaml:"role"`
	Geometry Geometry  `json:"geometry" yaml:"geometry"`
	Surface  SurfaceID `json:"surface,omitempty" yaml:"surface,omitempty"`
	Area     Area      `json:"area" yaml:"area"`
	Pinned   bool      `json:"pinned,omitempty" yaml:"pinned,omitempty"`

	// Children in spatial order.
	Children []Snapshot `json:"children,omitempty" yaml:"children,omitempty"`
	// Temporal lists indices into Children, most recent first.
	Temporal []int `json:"temporal,omitempty" yaml:"temporal,omitempty"`
}

// Snapshot copies the subtree rooted at frame.
func (t *Tree) Snapshot(frame FrameID) (Snapshot, bool) {
	idx, err := t.index(frame)
	if err != nil {
		return Snapshot{}, false
	}
	return t.snapshot(idx), true
}

func (t *Tree) snapshot(idx int) Snapshot {
	s := &t.slots[idx]
	snap := Snapshot{
		Role:     s.role,
		Geometry: s.geometry,
		Area:     s.area,
		Pinned:   s.pinned,
	}
	if s.role == RoleLeaf {
		snap.Surface = s.surface
	}
	if s.count == 0 {
		return snap
	}
	kids := t.indices(idx, spatial)
	pos := make(map[int]int, len(kids))
	snap.Children = make([]Snapshot, len(kids))
	for i, k := range kids {
		pos[k] = i
		snap.Children[i] = t.snapshot(k)
	}
	for _, k := range t.indices(idx, temporal) {
		snap.Temporal = append(snap.Temporal, pos[k])
	}
	return snap
}

// Top returns the index into Children of the most recent child, or -1.
func (s Snapshot) Top() int {
	if len(s.Temporal) == 0 {
		return -1
	}
	return s.Temporal[0]
}

// Leaves returns the surfaces of all leaves below s in spatial order.
func (s Snapshot) Leaves() []SurfaceID {
	if s.Role == RoleLeaf {
		return []SurfaceID{s.Surface}
	}
	var out []SurfaceID
	for _, c := range s.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}
