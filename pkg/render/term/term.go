// Package term draws a settled frame tree as a character grid for terminal
// previews.
package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/frametree/pkg/frames"
	"github.com/matzehuels/frametree/pkg/render"
)

// Options configures [Render].
type Options struct {
	// Focus is the surface whose box is highlighted. Zero means none.
	Focus frames.SurfaceID
	// Color enables ANSI styling. Without it the output is plain runes.
	Color bool
	// Label returns the text drawn in a leaf's top-left corner.
	// Defaults to the surface number.
	Label func(frames.SurfaceID) string
}

type paint uint8

const (
	paintNone paint = iota
	paintBorder
	paintFocus
	paintLabel
)

var (
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleFocus  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

const filler = '░'

type grid struct {
	cols, rows int
	cells      [][]rune
	paints     [][]paint
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, cells: make([][]rune, rows), paints: make([][]paint, rows)}
	for y := range rows {
		g.cells[y] = []rune(strings.Repeat(" ", cols))
		g.paints[y] = make([]paint, cols)
	}
	return g
}

func (g *grid) set(x, y int, r rune, p paint) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return
	}
	g.cells[y][x] = r
	g.paints[y][x] = p
}

// Render scales the visible leaves of snap onto a cols x rows grid and
// draws each as a rounded box with its label. Boxes too small for a border
// are filled with shading. Rows are separated by newlines.
func Render(snap frames.Snapshot, cols, rows int, opts Options) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	label := opts.Label
	if label == nil {
		label = func(s frames.SurfaceID) string { return fmt.Sprintf("%d", s) }
	}

	g := newGrid(cols, rows)
	scale := scaler{origin: snap.Area.Pos, w: snap.Area.Size.Width, h: snap.Area.Size.Height, cols: cols, rows: rows}
	for _, leaf := range render.Visible(snap) {
		x0, y0, x1, y1 := scale.box(leaf.Area)
		p := paintBorder
		if opts.Focus != 0 && leaf.Surface == opts.Focus {
			p = paintFocus
		}
		g.box(x0, y0, x1, y1, p)
		g.text(x0+1, y0+1, x1-x0-2, label(leaf.Surface))
	}
	return g.String(opts.Color)
}

type scaler struct {
	origin     frames.Position
	w, h       int
	cols, rows int
}

func (s scaler) box(a frames.Area) (x0, y0, x1, y1 int) {
	if s.w <= 0 || s.h <= 0 {
		return 0, 0, 0, 0
	}
	x0 = (a.Pos.X - s.origin.X) * s.cols / s.w
	x1 = (a.Right() - s.origin.X) * s.cols / s.w
	y0 = (a.Pos.Y - s.origin.Y) * s.rows / s.h
	y1 = (a.Bottom() - s.origin.Y) * s.rows / s.h
	return x0, y0, x1, y1
}

func (g *grid) box(x0, y0, x1, y1 int, p paint) {
	if x1-x0 < 2 || y1-y0 < 2 {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				g.set(x, y, filler, p)
			}
		}
		return
	}
	b := lipgloss.RoundedBorder()
	top, bottom := []rune(b.Top)[0], []rune(b.Bottom)[0]
	left, right := []rune(b.Left)[0], []rune(b.Right)[0]
	for x := x0 + 1; x < x1-1; x++ {
		g.set(x, y0, top, p)
		g.set(x, y1-1, bottom, p)
	}
	for y := y0 + 1; y < y1-1; y++ {
		g.set(x0, y, left, p)
		g.set(x1-1, y, right, p)
	}
	g.set(x0, y0, []rune(b.TopLeft)[0], p)
	g.set(x1-1, y0, []rune(b.TopRight)[0], p)
	g.set(x0, y1-1, []rune(b.BottomLeft)[0], p)
	g.set(x1-1, y1-1, []rune(b.BottomRight)[0], p)
}

func (g *grid) text(x, y, width int, s string) {
	if width <= 0 || y < 0 || y >= g.rows || x < 1 || x > g.cols || g.cells[y][x-1] == filler {
		return
	}
	for i, r := range []rune(s) {
		if i >= width {
			break
		}
		g.set(x+i, y, r, paintLabel)
	}
}

// String joins the grid rows. With color, each run of equally painted cells
// is rendered through its lipgloss style.
func (g *grid) String(color bool) string {
	lines := make([]string, g.rows)
	for y := range g.rows {
		if !color {
			lines[y] = string(g.cells[y])
			continue
		}
		var sb strings.Builder
		start := 0
		for x := 1; x <= g.cols; x++ {
			if x < g.cols && g.paints[y][x] == g.paints[y][start] {
				continue
			}
			sb.WriteString(styled(g.paints[y][start], string(g.cells[y][start:x])))
			start = x
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func styled(p paint, s string) string {
	switch p {
	case paintBorder:
		return styleBorder.Render(s)
	case paintFocus:
		return styleFocus.Render(s)
	case paintLabel:
		return styleLabel.Render(s)
	}
	return s
}
