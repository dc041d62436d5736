// Package screen renders the on-screen rectangles of a settled frame tree
// as SVG.
//
// Each visible leaf becomes a labeled rectangle at its computed area, so the
// drawing looks like the output the layout would produce. Leaves hidden
// behind the top of a Stacked container can be drawn as faint outlines with
// [WithHidden]. A focused surface is highlighted with [WithFocus].
//
//	svg := screen.RenderSVG(snap, screen.WithFocus(3), screen.WithHidden())
//
// PDF and PNG output go through [render.ToPDF] and [render.ToPNG].
package screen
