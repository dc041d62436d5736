// Package frames provides the frame tree of a tiling window-layout engine.
//
// # Overview
//
// A window manager arranges surfaces into nested regions: bands stacked
// top-to-bottom, bands side-by-side, or layered stacks where one surface is
// on top. This package keeps those regions as a tree of frames and computes
// the rectangle of every frame after each structural edit.
//
// A frame has one of three roles. The root is unique per tree and owns the
// output rectangle. Containers have a [Geometry] and children. Leaves hold a
// [SurfaceID] supplied by the surface layer.
//
// # Two Orders
//
// Every parent keeps two orders over the same children:
//
//   - spatial order decides where a child is placed and the order in which
//     renderers visit children ([Tree.Spatial])
//   - temporal order records recency; its head is the most recently active
//     child and the visible one in a [Stacked] container ([Tree.Temporal],
//     [Tree.Top])
//
// The insertion primitives update both orders at once:
//
//	Append   spatial tail, temporal tail
//	Prepend  spatial head, temporal tail
//	Adjoin   after a sibling in both orders
//	Prejoin  before a sibling in both orders
//
// [Tree.Pop] and [Tree.PopRecursively] change only temporal order and are
// what a focus policy calls when a surface becomes active.
//
// # Basic Usage
//
//	t := frames.New()
//	h := t.NewContainer(frames.Horizontal)
//	_ = t.Append(t.Root(), h)
//	_ = t.Append(h, t.NewLeaf(1, frames.Stacked))
//	_ = t.Append(h, t.NewLeaf(2, frames.Stacked))
//	_ = t.Reshape(t.Root(), frames.NewArea(0, 0, 1920, 1080))
//	t.Flush()
//
// Structural edits never compute rectangles. They record a settle request
// for the container whose child set changed, and [Tree.Flush] performs all
// outstanding requests. [Tree.Reshape] (output resize) and [Tree.Settle]
// lay out a subtree immediately.
//
// # Homogenizing
//
// Children of a [Vertical] or [Horizontal] container tile it along the major
// axis in spatial order. Children that were resized directly ([Tree.Resize])
// are pinned and keep their extent; the rest share what is left evenly, with
// rounding leftovers going to the first of them. When pinned children cannot
// be accommodated, an [OverflowPolicy] fits them. Children of a [Stacked]
// container all receive the container's rectangle.
//
// # Errors
//
// Edits are checked before anything is modified; on failure the tree is
// unchanged. Error codes come from package errors: ErrCodeInvalidTree for
// attached, self, root or cycle-forming insertions, ErrCodeNotFound for
// unknown or stale handles, and ErrCodeGeometryMismatch for inserting into a
// leaf or deramifying a non-container.
//
// # Concurrency
//
// [Tree] is not safe for concurrent use. Package workspace wraps a Tree with
// a single lock so that an edit and its settle are observed atomically.
package frames
