// Package pkg provides the libraries behind frametree, a frame tree for
// tiling window layouts.
//
// # Overview
//
// A frame tree partitions the output rectangle among surfaces. Containers
// split their rectangle among their children (side by side, top to bottom,
// or stacked on top of each other); leaves show one surface each. The pkg
// directory is organized into these areas:
//
//  1. [frames] - The tree itself: editing, sibling orders and layout
//  2. [workspace] - A locked, logged owner of one tree for concurrent use
//  3. [io] - Layout descriptions (TOML, YAML, JSON) and snapshot files
//  4. [render] - Screen, node-link and terminal renderers
//  5. [cache] - Rendered artifact cache used by the CLI
//  6. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	layout.toml
//	     ↓
//	[io] package (decode + build)
//	     ↓
//	[frames] package (edit, settle, flush)
//	     ↓
//	frames.Snapshot
//	     ↓
//	[render] packages → SVG/PDF/PNG/DOT, or [io] → JSON/TOML/YAML
//
// # Quick Start
//
// Build a tree by hand and read back the rectangles:
//
//	t := frames.New(frames.WithRootGeometry(frames.Horizontal))
//	editor, shell := t.NewLeaf(1, frames.Stacked), t.NewLeaf(2, frames.Stacked)
//	_ = t.Append(t.Root(), editor)
//	_ = t.Append(t.Root(), shell)
//	_ = t.Reshape(t.Root(), frames.NewArea(0, 0, 1200, 800))
//	t.Flush()
//
//	area, _ := t.Area(shell) // 600x800+600+0
//
// Or load one from a file:
//
//	d, _ := io.LoadLayout("desk.toml")
//	t, _ := io.Build(d)
//	svg := screen.RenderSVG(t.Snapshot(t.Root()))
//
// [frames]: github.com/matzehuels/frametree/pkg/frames
// [workspace]: github.com/matzehuels/frametree/pkg/workspace
// [io]: github.com/matzehuels/frametree/pkg/io
// [render]: github.com/matzehuels/frametree/pkg/render
// [cache]: github.com/matzehuels/frametree/pkg/cache
// [errors]: github.com/matzehuels/frametree/pkg/errors
// [observability]: github.com/matzehuels/frametree/pkg/observability
// [buildinfo]: github.com/matzehuels/frametree/pkg/buildinfo
package pkg
