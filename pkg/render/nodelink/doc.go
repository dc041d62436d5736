// Package nodelink renders frame trees as node-link diagrams.
//
// # Overview
//
// This package draws the tree structure with Graphviz: the root on top,
// containers as rounded boxes and leaves as plain boxes, with edges from
// each parent to its children in spatial order. It complements the screen
// view, which shows the computed rectangles instead of the hierarchy.
//
// # Usage
//
// Convert a snapshot to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(snap, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: labels include the rectangle, pinned flag and temporal rank
//
// Children of a Stacked container that are not on top are drawn dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
