package frames

import (
	"fmt"
	"maps"
	"slices"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
)

// SurfaceID is the opaque identifier of a client surface. It is supplied by
// the surface-management layer and only ever stored on leaves.
type SurfaceID uint64

// FrameID is a stable handle to a frame in a Tree. It stays valid while the
// frame is alive; after Discard the handle is stale and every operation that
// receives it fails with ErrCodeNotFound, even if the slot is reused.
//
// The zero value NoFrame never refers to a frame.
type FrameID uint64

// NoFrame is the zero FrameID.
const NoFrame FrameID = 0

func (id FrameID) String() string {
	if id == NoFrame {
		return "frame(none)"
	}
	return fmt.Sprintf("frame#%d.%d", int64(uint32(id))-1, uint32(id>>32))
}

// none marks an absent index in the arena.
const none = -1

// link is a frame's position in one of its parent's sibling orders.
type link struct{ prev, next int }

// chain is the head and tail of one sibling order of a parent.
type chain struct{ head, tail int }

// slot is the arena record of a frame.
type slot struct {
	gen  uint32
	live bool

	role     Role
	geometry Geometry
	surface  SurfaceID
	area     Area
	pinned   bool

	// parent is a back-reference only; ownership runs parent to child.
	parent int
	space  link
	time   link

	// Sibling orders over this frame's own children.
	spaceKids chain
	timeKids  chain
	count     int
}

// Frame is a read-only view of a frame's attributes.
type Frame struct {
	ID       FrameID
	Role     Role
	Geometry Geometry
	Surface  SurfaceID // Meaningful for leaves only
	Area     Area      // Last computed rectangle
	Pinned   bool      // Set by a direct resize, cleared on detach
	Parent   FrameID   // NoFrame for the root and detached frames
	Count    int       // Number of children
}

// IsLeaf reports whether the frame holds a surface.
func (f Frame) IsLeaf() bool { return f.Role == RoleLeaf }

// Tree is an arena of frames rooted at a single RoleRoot frame.
//
// Frames are created detached with NewLeaf or NewContainer and enter the tree
// through Append, Prepend, Adjoin or Prejoin. Structural edits record settle
// requests; Flush performs them. Detached frames may hold children, so whole
// subtrees can be assembled off-tree and inserted at once.
//
// The zero value is not usable - use New to create a Tree.
// Tree is not safe for concurrent use without external synchronization;
// see package workspace for a guarded wrapper.
type Tree struct {
	slots   []slot
	free    []int
	root    int
	policy  OverflowPolicy
	pending map[int]struct{}
}

// Option configures a Tree.
type Option func(*Tree)

// WithPolicy sets the policy that fits pinned children into a container
// whose extent they cannot share with anybody. Nil keeps the default.
func WithPolicy(p OverflowPolicy) Option {
	return func(t *Tree) {
		if p != nil {
			t.policy = p
		}
	}
}

// WithRootGeometry sets the geometry of the root frame. Default is Stacked.
func WithRootGeometry(g Geometry) Option {
	return func(t *Tree) { t.slots[t.root].geometry = g }
}

// New creates a tree holding only the root frame.
func New(opts ...Option) *Tree {
	t := &Tree{
		policy:  Proportional,
		pending: make(map[int]struct{}),
	}
	t.root = t.alloc(RoleRoot, Stacked, 0)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Clone returns an independent copy of the tree, detached frames and pending
// settle requests included. Handles valid in t are valid in the copy.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		slots:   slices.Clone(t.slots),
		free:    slices.Clone(t.free),
		root:    t.root,
		policy:  t.policy,
		pending: maps.Clone(t.pending),
	}
	if c.pending == nil {
		c.pending = make(map[int]struct{})
	}
	return c
}

// Root returns the handle of the root frame.
func (t *Tree) Root() FrameID { return t.id(t.root) }

// Len returns the number of live frames, attached or not.
func (t *Tree) Len() int { return len(t.slots) - len(t.free) }

// NewLeaf creates a detached leaf holding surface sid. The geometry is the
// one a container gets when the leaf is ramified.
func (t *Tree) NewLeaf(sid SurfaceID, g Geometry) FrameID {
	return t.id(t.alloc(RoleLeaf, g, sid))
}

// NewContainer creates a detached, empty container with geometry g.
func (t *Tree) NewContainer(g Geometry) FrameID {
	return t.id(t.alloc(RoleContainer, g, 0))
}

// Frame returns a view of the frame and true, or false if id is unknown.
func (t *Tree) Frame(id FrameID) (Frame, bool) {
	idx, err := t.index(id)
	if err != nil {
		return Frame{}, false
	}
	s := &t.slots[idx]
	f := Frame{
		ID:       id,
		Role:     s.role,
		Geometry: s.geometry,
		Area:     s.area,
		Pinned:   s.pinned,
		Parent:   t.id(s.parent),
		Count:    s.count,
	}
	if s.role == RoleLeaf {
		f.Surface = s.surface
	}
	return f, true
}

// Area returns the last computed rectangle of the frame.
func (t *Tree) Area(id FrameID) (Area, error) {
	idx, err := t.index(id)
	if err != nil {
		return Area{}, err
	}
	return t.slots[idx].area, nil
}

// Parent returns the parent of id, or NoFrame for the root, detached frames
// and unknown handles.
func (t *Tree) Parent(id FrameID) FrameID {
	idx, err := t.index(id)
	if err != nil {
		return NoFrame
	}
	return t.id(t.slots[idx].parent)
}

// Count returns the number of children of id.
func (t *Tree) Count(id FrameID) int {
	idx, err := t.index(id)
	if err != nil {
		return 0
	}
	return t.slots[idx].count
}

// Top returns the head of the temporal order of id's children: the most
// recently active child, which is the visible one in a Stacked container.
// Returns NoFrame if id has no children.
func (t *Tree) Top(id FrameID) FrameID {
	idx, err := t.index(id)
	if err != nil {
		return NoFrame
	}
	return t.id(t.slots[idx].timeKids.head)
}

// IsAttached reports whether id is the root or hangs under it.
func (t *Tree) IsAttached(id FrameID) bool {
	idx, err := t.index(id)
	if err != nil {
		return false
	}
	return t.topmost(idx) == t.root
}

func (t *Tree) alloc(role Role, g Geometry, sid SurfaceID) int {
	s := slot{
		live:      true,
		role:      role,
		geometry:  g,
		surface:   sid,
		parent:    none,
		space:     link{none, none},
		time:      link{none, none},
		spaceKids: chain{none, none},
		timeKids:  chain{none, none},
	}
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		s.gen = t.slots[idx].gen + 1
		t.slots[idx] = s
		return idx
	}
	t.slots = append(t.slots, s)
	return len(t.slots) - 1
}

func (t *Tree) release(idx int) {
	t.slots[idx] = slot{gen: t.slots[idx].gen}
	delete(t.pending, idx)
	t.free = append(t.free, idx)
}

func (t *Tree) id(idx int) FrameID {
	if idx == none {
		return NoFrame
	}
	return FrameID(uint64(t.slots[idx].gen)<<32 | uint64(idx+1))
}

func (t *Tree) index(id FrameID) (int, error) {
	idx := int(uint32(id)) - 1
	if idx < 0 || idx >= len(t.slots) {
		return none, ferrors.New(ferrors.ErrCodeNotFound, "%v not found", id)
	}
	s := &t.slots[idx]
	if !s.live || s.gen != uint32(id>>32) {
		return none, ferrors.New(ferrors.ErrCodeNotFound, "%v not found", id)
	}
	return idx, nil
}

// topmost climbs parent links until a frame without a parent.
func (t *Tree) topmost(idx int) int {
	for t.slots[idx].parent != none {
		idx = t.slots[idx].parent
	}
	return idx
}

func (t *Tree) depth(idx int) int {
	d := 0
	for t.slots[idx].parent != none {
		idx = t.slots[idx].parent
		d++
	}
	return d
}
