// Package render draws settled frame trees.
//
// # Overview
//
// Renderers consume a [frames.Snapshot], so they never hold a lock on a live
// tree. The package provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Visibility helpers shared by the renderers ([Visible])
//   - Screen view of the computed rectangles (in [screen] subpackage)
//   - Node-link diagrams of the tree structure (in [nodelink] subpackage)
//   - Terminal previews (in [term] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := screen.RenderSVG(snap)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2)
//
// # Visibility
//
// Inside a Stacked container only the head of the temporal order is on
// screen. [Visible] walks a snapshot with that rule and returns the leaves a
// user would see.
//
// [screen]: github.com/matzehuels/frametree/pkg/render/screen
// [nodelink]: github.com/matzehuels/frametree/pkg/render/nodelink
// [term]: github.com/matzehuels/frametree/pkg/render/term
package render
