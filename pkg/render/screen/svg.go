package screen

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/frametree/pkg/frames"
	"github.com/matzehuels/frametree/pkg/render"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 24.0
)

// Option configures [RenderSVG].
type Option func(*renderer)

type renderer struct {
	focus  frames.SurfaceID
	hidden bool
	labels func(frames.SurfaceID) string
}

// WithFocus highlights the leaf showing surface s.
func WithFocus(s frames.SurfaceID) Option { return func(r *renderer) { r.focus = s } }

// WithHidden also draws leaves covered inside Stacked containers.
func WithHidden() Option { return func(r *renderer) { r.hidden = true } }

// WithLabels sets the label function for leaves. The default prints the
// surface number.
func WithLabels(fn func(frames.SurfaceID) string) Option {
	return func(r *renderer) { r.labels = fn }
}

// RenderSVG draws the leaves of snap at their areas, inside a canvas the
// size of snap's own area.
func RenderSVG(snap frames.Snapshot, opts ...Option) []byte {
	r := renderer{labels: func(s frames.SurfaceID) string { return fmt.Sprintf("%d", s) }}
	for _, opt := range opts {
		opt(&r)
	}

	origin := snap.Area.Pos
	w, h := max(1, snap.Area.Size.Width), max(1, snap.Area.Size.Height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="#f4f4f4"/>`+"\n", w, h)

	if r.hidden {
		for _, leaf := range render.Hidden(snap) {
			r.rect(&buf, leaf, origin, "hidden")
		}
	}
	visible := render.Visible(snap)
	for _, leaf := range visible {
		class := "frame"
		if r.focus != 0 && leaf.Surface == r.focus {
			class = "frame focus"
		}
		r.rect(&buf, leaf, origin, class)
	}
	for _, leaf := range visible {
		r.text(&buf, leaf, origin)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) rect(buf *bytes.Buffer, leaf frames.Snapshot, origin frames.Position, class string) {
	a := leaf.Area
	fill, stroke, dash := "white", "#333", ""
	switch class {
	case "hidden":
		fill, stroke, dash = "none", "#aaa", ` stroke-dasharray="4 3"`
	case "frame focus":
		fill, stroke = "#dbe9ff", "#1f5fbf"
	}
	fmt.Fprintf(buf, `  <rect id="surface-%d" class="%s" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="2"%s/>`+"\n",
		leaf.Surface, class, a.Pos.X-origin.X, a.Pos.Y-origin.Y, a.Size.Width, a.Size.Height, fill, stroke, dash)
}

func (r *renderer) text(buf *bytes.Buffer, leaf frames.Snapshot, origin frames.Position) {
	a := leaf.Area
	if a.IsEmpty() {
		return
	}
	label := r.labels(leaf.Surface)
	size := fontSize(float64(a.Size.Width), float64(a.Size.Height), len(label))
	cx := float64(a.Pos.X-origin.X) + float64(a.Size.Width)/2
	cy := float64(a.Pos.Y-origin.Y) + float64(a.Size.Height)/2
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		cx, cy, size, escapeXML(truncate(label, float64(a.Size.Width), size)))
}

func fontSize(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

func truncate(label string, width, size float64) string {
	maxChars := max(3, int(width*fontWidthRatio/(size*fontCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
