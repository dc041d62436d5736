// Package io reads and writes frame tree layouts.
//
// # Overview
//
// Two file kinds are supported:
//
//   - Layout descriptions: a declarative tree of frames in TOML, YAML or
//     JSON, built into a settled [frames.Tree] by [Build]
//   - Snapshots: the JSON form of a [frames.Snapshot], including computed
//     rectangles and temporal order, for tooling and regression comparisons
//
// # Layout Description Format
//
// The format is chosen by file extension (.toml, .yaml/.yml, .json):
//
//	width = 360
//	height = 360
//
//	[frame]
//	geometry = "horizontal"
//
//	  [[frame.frames]]
//	  geometry = "vertical"
//	    [[frame.frames.frames]]
//	    surface = 1
//	  [[frame.frames]]
//	  surface = 7
//	  pin = 60
//
// The top-level frame describes the root. Each frame may set:
//
//   - geometry: "stacked", "vertical" or "horizontal". Containers default to
//     vertical, leaves and the root to stacked
//   - surface: a non-zero surface ID; the frame is then a leaf
//   - pin: an extent along the parent's layout axis, applied as a direct
//     resize once the tree is reshaped to width x height
//   - insert: "append" (default) or "prepend"
//   - frames: the children, in insertion order
//
// Unknown keys, unknown geometries, leaves with children and duplicate
// surfaces are rejected with errors.ErrCodeInvalidFormat.
//
// # Usage
//
//	desc, err := io.LoadLayout("dev.toml")
//	if err != nil {
//	    return err
//	}
//	tree, err := io.Build(desc)
//
// Snapshots are exported with [ExportSnapshot] or [WriteSnapshot] and read
// back with [ImportSnapshot] or [ReadSnapshot]. [Restore] rebuilds a tree
// from a snapshot, keeping its temporal order and pins.
//
// # Concurrency
//
// All functions are safe for concurrent use. Trees returned by [Build] and
// [Restore] are independent and owned by the caller.
package io
