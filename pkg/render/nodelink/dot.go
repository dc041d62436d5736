package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/frametree/pkg/frames"
	"github.com/matzehuels/frametree/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes area, pin and temporal rank in node labels.
	// When false, only the role or surface is shown.
	Detailed bool
}

// ToDOT converts a snapshot to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(snap frames.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	w := &dotWriter{buf: &buf, opts: opts}
	w.node(snap, -1, false)
	buf.WriteString("\n")
	for _, e := range w.edges {
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf   *bytes.Buffer
	opts  Options
	next  int
	edges [][2]int
}

// node writes s and its subtree in pre-order. rank is s's position in its
// parent's temporal order, or -1 for the root.
func (w *dotWriter) node(s frames.Snapshot, rank int, hidden bool) int {
	id := w.next
	w.next++
	label := fmtLabel(s, rank, w.opts.Detailed)
	fmt.Fprintf(w.buf, "  n%d [%s];\n", id, strings.Join(fmtAttrs(s, label, hidden), ", "))

	ranks := make([]int, len(s.Children))
	for r, k := range s.Temporal {
		ranks[k] = r
	}
	for i, c := range s.Children {
		covered := hidden || (s.Geometry == frames.Stacked && i != s.Top())
		child := w.node(c, ranks[i], covered)
		w.edges = append(w.edges, [2]int{id, child})
	}
	return id
}

func fmtLabel(s frames.Snapshot, rank int, detailed bool) string {
	var head string
	switch s.Role {
	case frames.RoleLeaf:
		head = fmt.Sprintf("surface %d", s.Surface)
	case frames.RoleRoot:
		head = "root " + s.Geometry.String()
	default:
		head = s.Geometry.String()
	}
	if !detailed {
		return head
	}

	parts := []string{head, s.Area.String()}
	if rank >= 0 {
		parts = append(parts, fmt.Sprintf("rank: %d", rank))
	}
	if s.Pinned {
		parts = append(parts, "pinned")
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(s frames.Snapshot, label string, hidden bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if s.Role != frames.RoleLeaf {
		attrs = append(attrs, "style=\"rounded,filled\"", "fillcolor=lightblue")
	}
	if hidden {
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// viewBox-only one so the diagram scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
