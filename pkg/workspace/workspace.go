// Package workspace owns a frame tree on behalf of concurrent callers.
//
// A Workspace serializes access to one [frames.Tree]. Every mutating call
// runs under an exclusive lock and flushes the pending settle requests
// before the lock is released, so readers always observe settled
// rectangles. Edits are logged at debug level and reported to the
// registered [observability.LayoutHooks].
//
// # Usage
//
//	ws := workspace.New(workspace.WithLogger(logger))
//	leaf := ws.NewLeaf(surface, frames.Stacked)
//	if err := ws.Append(ctx, ws.Root(), leaf); err != nil {
//	    return err
//	}
//	area, _ := ws.Area(leaf)
//
// Multi-step edits that must appear atomic go through Update:
//
//	err := ws.Update(ctx, func(t *frames.Tree) error {
//	    if err := t.Detach(a); err != nil {
//	        return err
//	    }
//	    return t.Adjoin(b, a)
//	})
package workspace

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/frametree/pkg/frames"
	"github.com/matzehuels/frametree/pkg/observability"
)

// Workspace is a frame tree guarded for concurrent use.
type Workspace struct {
	mu     sync.RWMutex
	tree   *frames.Tree
	logger *log.Logger
}

type options struct {
	logger *log.Logger
	tree   []frames.Option
}

// Option configures a Workspace.
type Option func(*options)

// WithLogger sets the logger edits are reported to. Default discards.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPolicy sets the overflow policy of a new tree.
func WithPolicy(p frames.OverflowPolicy) Option {
	return func(o *options) { o.tree = append(o.tree, frames.WithPolicy(p)) }
}

// WithRootGeometry sets the root geometry of a new tree.
func WithRootGeometry(g frames.Geometry) Option {
	return func(o *options) { o.tree = append(o.tree, frames.WithRootGeometry(g)) }
}

func buildOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a workspace around a fresh tree.
func New(opts ...Option) *Workspace {
	o := buildOptions(opts)
	return &Workspace{tree: frames.New(o.tree...), logger: o.logger}
}

// FromTree takes ownership of an existing tree, for example one built from a
// layout file. Pending settle requests are flushed. Tree options are ignored.
func FromTree(t *frames.Tree, opts ...Option) *Workspace {
	o := buildOptions(opts)
	w := &Workspace{tree: t, logger: o.logger}
	w.flush(context.Background())
	return w
}

// =============================================================================
// Mutations
// =============================================================================

// edit runs fn under the write lock, flushes and reports the outcome.
func (w *Workspace) edit(ctx context.Context, op string, fn func(*frames.Tree) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := fn(w.tree)
	w.flush(ctx)
	observability.Layout().OnEdit(ctx, op, err)
	if err != nil {
		w.logger.Debug("edit rejected", "op", op, "err", err)
		return err
	}
	w.logger.Debug("edit", "op", op)
	return nil
}

// editAtomic runs fn on a copy of the tree under the write lock and installs
// the copy only when fn succeeds, so a failure partway through leaves the
// tree exactly as it was.
func (w *Workspace) editAtomic(ctx context.Context, op string, fn func(*frames.Tree) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	draft := w.tree.Clone()
	err := fn(draft)
	observability.Layout().OnEdit(ctx, op, err)
	if err != nil {
		w.logger.Debug("edit rejected", "op", op, "err", err)
		return err
	}
	w.tree = draft
	w.flush(ctx)
	w.logger.Debug("edit", "op", op)
	return nil
}

// flush must be called with the write lock held.
func (w *Workspace) flush(ctx context.Context) {
	start := time.Now()
	n := w.tree.Flush()
	if n == 0 {
		return
	}
	elapsed := time.Since(start)
	observability.Layout().OnSettle(ctx, n, elapsed)
	w.logger.Debug("settled", "frames", n, "took", elapsed)
}

// NewLeaf creates a detached leaf for surface sid.
func (w *Workspace) NewLeaf(sid frames.SurfaceID, g frames.Geometry) frames.FrameID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tree.NewLeaf(sid, g)
}

// NewContainer creates a detached, empty container.
func (w *Workspace) NewContainer(g frames.Geometry) frames.FrameID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tree.NewContainer(g)
}

// Append inserts frame at the spatial and temporal tail of parent.
func (w *Workspace) Append(ctx context.Context, parent, frame frames.FrameID) error {
	return w.edit(ctx, "append", func(t *frames.Tree) error { return t.Append(parent, frame) })
}

// Prepend inserts frame at the spatial head and temporal tail of parent.
func (w *Workspace) Prepend(ctx context.Context, parent, frame frames.FrameID) error {
	return w.edit(ctx, "prepend", func(t *frames.Tree) error { return t.Prepend(parent, frame) })
}

// Adjoin inserts frame right after sibling in both orders.
func (w *Workspace) Adjoin(ctx context.Context, sibling, frame frames.FrameID) error {
	return w.edit(ctx, "adjoin", func(t *frames.Tree) error { return t.Adjoin(sibling, frame) })
}

// Prejoin inserts frame right before sibling in both orders.
func (w *Workspace) Prejoin(ctx context.Context, sibling, frame frames.FrameID) error {
	return w.edit(ctx, "prejoin", func(t *frames.Tree) error { return t.Prejoin(sibling, frame) })
}

// Detach removes frame from its parent and clears its pin.
func (w *Workspace) Detach(ctx context.Context, frame frames.FrameID) error {
	return w.edit(ctx, "detach", func(t *frames.Tree) error { return t.Detach(frame) })
}

// Discard releases a detached frame and its subtree.
func (w *Workspace) Discard(ctx context.Context, frame frames.FrameID) error {
	return w.edit(ctx, "discard", func(t *frames.Tree) error { return t.Discard(frame) })
}

// Remove detaches frame and discards its subtree in one step.
func (w *Workspace) Remove(ctx context.Context, frame frames.FrameID) error {
	return w.editAtomic(ctx, "remove", func(t *frames.Tree) error {
		if err := t.Detach(frame); err != nil {
			return err
		}
		return t.Discard(frame)
	})
}

// Resize pins frame to area and resettles its parent.
func (w *Workspace) Resize(ctx context.Context, frame frames.FrameID, area frames.Area) error {
	return w.edit(ctx, "resize", func(t *frames.Tree) error { return t.Resize(frame, area) })
}

// Reshape sets the area of frame and resettles its subtree, keeping pins.
func (w *Workspace) Reshape(ctx context.Context, frame frames.FrameID, area frames.Area) error {
	return w.edit(ctx, "reshape", func(t *frames.Tree) error { return t.Reshape(frame, area) })
}

// Unpin returns frame to automatic sizing.
func (w *Workspace) Unpin(ctx context.Context, frame frames.FrameID) error {
	return w.edit(ctx, "unpin", func(t *frames.Tree) error { return t.Unpin(frame) })
}

// Pop moves frame to the head of its parent's temporal order.
func (w *Workspace) Pop(ctx context.Context, frame frames.FrameID) error {
	return w.edit(ctx, "pop", func(t *frames.Tree) error { return t.Pop(frame) })
}

// PopRecursively pops frame and every ancestor below the root.
func (w *Workspace) PopRecursively(ctx context.Context, frame frames.FrameID) error {
	return w.edit(ctx, "pop-recursively", func(t *frames.Tree) error { return t.PopRecursively(frame) })
}

// SetGeometry changes the layout mode of frame.
func (w *Workspace) SetGeometry(ctx context.Context, frame frames.FrameID, g frames.Geometry) error {
	return w.edit(ctx, "set-geometry", func(t *frames.Tree) error { return t.SetGeometry(frame, g) })
}

// Ramify wraps frame in a new container and returns the container.
func (w *Workspace) Ramify(ctx context.Context, frame frames.FrameID, g frames.Geometry) (frames.FrameID, error) {
	var c frames.FrameID
	err := w.edit(ctx, "ramify", func(t *frames.Tree) (err error) {
		c, err = t.Ramify(frame, g)
		return err
	})
	return c, err
}

// Deramify collapses a single-child container and returns the child.
func (w *Workspace) Deramify(ctx context.Context, frame frames.FrameID) (frames.FrameID, error) {
	var k frames.FrameID
	err := w.edit(ctx, "deramify", func(t *frames.Tree) (err error) {
		k, err = t.Deramify(frame)
		return err
	})
	return k, err
}

// Update runs fn with exclusive access to the tree and flushes afterwards.
// The edits of fn take effect only if it returns nil; on error the tree is
// left unchanged. fn must not retain the tree.
func (w *Workspace) Update(ctx context.Context, fn func(*frames.Tree) error) error {
	return w.editAtomic(ctx, "update", fn)
}

// =============================================================================
// Queries
// =============================================================================

// View runs fn with shared access to the tree. fn must not edit the tree.
func (w *Workspace) View(fn func(*frames.Tree)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(w.tree)
}

// Root returns the handle of the root frame.
func (w *Workspace) Root() frames.FrameID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Root()
}

// Frame returns a copy of the attributes of id.
func (w *Workspace) Frame(id frames.FrameID) (frames.Frame, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Frame(id)
}

// Area returns the last settled rectangle of id.
func (w *Workspace) Area(id frames.FrameID) (frames.Area, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Area(id)
}

// Top returns the most recent child of id, or NoFrame.
func (w *Workspace) Top(id frames.FrameID) frames.FrameID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Top(id)
}

// Spatial returns the children of id in spatial order.
func (w *Workspace) Spatial(id frames.FrameID) []frames.FrameID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Spatial(id)
}

// Temporal returns the children of id, most recent first.
func (w *Workspace) Temporal(id frames.FrameID) []frames.FrameID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Temporal(id)
}

// Snapshot copies the whole attached tree.
func (w *Workspace) Snapshot() frames.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	snap, _ := w.tree.Snapshot(w.tree.Root())
	return snap
}

// FindSurface returns the attached leaf showing sid.
func (w *Workspace) FindSurface(sid frames.SurfaceID) (frames.FrameID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.FindSurface(sid)
}

// FindPointed returns the deepest visible frame containing pos.
func (w *Workspace) FindPointed(pos frames.Position) (frames.FrameID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.FindPointed(pos)
}

// FindAdjacent returns the spatial neighbour of id in direction dir.
func (w *Workspace) FindAdjacent(id frames.FrameID, dir frames.Direction) (frames.FrameID, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.FindAdjacent(id, dir)
}

// Leaves returns the attached leaves in spatial order.
func (w *Workspace) Leaves() []frames.FrameID {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []frames.FrameID
	w.tree.Walk(w.tree.Root(), func(f frames.Frame) bool {
		if f.IsLeaf() {
			out = append(out, f.ID)
		}
		return true
	})
	return out
}

// Validate checks the structural invariants of the tree.
func (w *Workspace) Validate() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tree.Validate()
}
