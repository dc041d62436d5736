package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/frametree/pkg/frames"
	"github.com/matzehuels/frametree/pkg/render"
	"github.com/matzehuels/frametree/pkg/render/term"
	"github.com/matzehuels/frametree/pkg/workspace"
)

// Terminal cells are mapped to output pixels at this size when the window
// reshapes the root.
const (
	cellWidth  = 8
	cellHeight = 16
)

// chromeRows is the number of rows taken by the header and footer.
const chromeRows = 3

var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	previewErrStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// reloadMsg carries a freshly built workspace after the layout file changed.
type reloadMsg struct {
	ws  *workspace.Workspace
	err error
}

// =============================================================================
// PreviewModel - Interactive layout preview
// =============================================================================

// PreviewModel is the bubbletea model for the live layout preview.
type PreviewModel struct {
	ctx     context.Context
	path    string
	ws      *workspace.Workspace
	cols    int
	rows    int
	focus   frames.SurfaceID
	reloads int
	err     error
}

// NewPreviewModel creates a preview of ws with the first visible leaf focused.
func NewPreviewModel(ctx context.Context, path string, ws *workspace.Workspace) PreviewModel {
	m := PreviewModel{ctx: ctx, path: path, ws: ws, cols: defaultPreviewCols, rows: defaultPreviewRows + chromeRows}
	if v := render.Visible(ws.Snapshot()); len(v) > 0 {
		m.focus = v[0].Surface
	}
	return m
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.err = m.cycle(1)
		case "shift+tab":
			m.err = m.cycle(-1)
		case "left", "h":
			m.err = m.move(frames.West)
		case "right", "l":
			m.err = m.move(frames.East)
		case "up", "k":
			m.err = m.move(frames.North)
		case "down", "j":
			m.err = m.move(frames.South)
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.err = m.reshape()
	case reloadMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.ws = msg.ws
		m.reloads++
		m.err = m.reshape()
		m.keepFocus()
	}
	return m, nil
}

// reshape sizes the root to the terminal area below the header.
func (m *PreviewModel) reshape() error {
	rows := max(0, m.rows-chromeRows)
	return m.ws.Reshape(m.ctx, m.ws.Root(), frames.NewArea(0, 0, m.cols*cellWidth, rows*cellHeight))
}

// cycle raises the leaf step positions away from the focus in spatial
// order, wrapping around, and pops it through every stacked ancestor.
func (m *PreviewModel) cycle(step int) error {
	var leaves []frames.Snapshot
	collectLeaves(m.ws.Snapshot(), &leaves)
	if len(leaves) == 0 {
		return nil
	}
	i := slices.IndexFunc(leaves, func(s frames.Snapshot) bool { return s.Surface == m.focus })
	if i < 0 && step < 0 {
		i = 0
	}
	next := leaves[((i+step)%len(leaves)+len(leaves))%len(leaves)].Surface
	return m.raise(next)
}

// move focuses the leaf on screen next to the focus in direction dir.
func (m *PreviewModel) move(dir frames.Direction) error {
	from, ok := m.ws.FindSurface(m.focus)
	if !ok {
		return nil
	}
	adj, ok := m.ws.FindAdjacent(from, dir)
	if !ok {
		return nil
	}
	var target frames.SurfaceID
	m.ws.View(func(t *frames.Tree) {
		id := adj
		for {
			f, ok := t.Frame(id)
			if !ok {
				return
			}
			if f.IsLeaf() {
				target = f.Surface
				return
			}
			if f.Geometry == frames.Stacked {
				id = t.Top(id)
			} else if kids := t.Spatial(id); len(kids) > 0 {
				id = kids[0]
			} else {
				return
			}
		}
	})
	if target == 0 {
		return nil
	}
	return m.raise(target)
}

func (m *PreviewModel) raise(sid frames.SurfaceID) error {
	id, ok := m.ws.FindSurface(sid)
	if !ok {
		return nil
	}
	if err := m.ws.PopRecursively(m.ctx, id); err != nil {
		return err
	}
	m.focus = sid
	return nil
}

// keepFocus moves the focus to the first visible leaf if the focused surface
// disappeared in a reload.
func (m *PreviewModel) keepFocus() {
	if _, ok := m.ws.FindSurface(m.focus); ok {
		return
	}
	m.focus = 0
	if v := render.Visible(m.ws.Snapshot()); len(v) > 0 {
		m.focus = v[0].Surface
	}
}

func (m PreviewModel) View() string {
	var b strings.Builder

	snap := m.ws.Snapshot()
	b.WriteString(previewTitleStyle.Render(m.path))
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  %s  focus %d  reloads %d", snap.Area, m.focus, m.reloads)))
	b.WriteString("\n")

	b.WriteString(term.Render(snap, m.cols, max(1, m.rows-chromeRows), term.Options{Focus: m.focus, Color: true}))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(previewErrStyle.Render(iconError + " " + m.err.Error()))
	} else {
		b.WriteString(previewDimStyle.Render("tab/shift+tab cycle  ←↓↑→ move  q quit"))
	}
	return b.String()
}
