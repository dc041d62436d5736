package cli

import (
	"context"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/frametree/pkg/frames"
	"github.com/matzehuels/frametree/pkg/render"
	"github.com/matzehuels/frametree/pkg/render/term"
)

const (
	defaultPreviewCols = 64
	defaultPreviewRows = 16
)

// showOpts holds the command-line flags for the show command.
type showOpts struct {
	cols, rows int
	noPreview  bool
	focus      uint64
}

// showCommand creates the show command that prints the settled layout.
func (c *CLI) showCommand() *cobra.Command {
	opts := showOpts{cols: defaultPreviewCols, rows: defaultPreviewRows}

	cmd := &cobra.Command{
		Use:   "show [layout]",
		Short: "Print the settled rectangles of a layout",
		Long: `Build a layout file, settle every frame and print one row per leaf with its
rectangle, followed by a terminal preview of what is on screen.

Leaves covered by a sibling in a stacked frame are listed as hidden.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.cols, "cols", opts.cols, "preview width in characters")
	cmd.Flags().IntVar(&opts.rows, "rows", opts.rows, "preview height in characters")
	cmd.Flags().BoolVar(&opts.noPreview, "no-preview", false, "skip the terminal preview")
	cmd.Flags().Uint64Var(&opts.focus, "focus", 0, "surface to highlight in the preview")

	return cmd
}

func (c *CLI) runShow(ctx context.Context, path string, opts showOpts) error {
	ws, err := c.loadWorkspace(ctx, path)
	if err != nil {
		return err
	}
	snap := ws.Snapshot()

	emit(StyleTitle.Render(path))
	emit(leafTable(snap))

	visible, hidden := render.Visible(snap), render.Hidden(snap)
	printStats(countFrames(snap), len(visible), len(hidden), snap.Area.Size)

	if opts.noPreview {
		return nil
	}
	printNewline()
	emit(term.Render(snap, opts.cols, opts.rows, term.Options{
		Focus: frames.SurfaceID(opts.focus),
		Color: true,
	}))
	return nil
}

// leafTable renders one row per leaf in spatial order.
func leafTable(snap frames.Snapshot) string {
	visible := make(map[frames.SurfaceID]bool)
	for _, v := range render.Visible(snap) {
		visible[v.Surface] = true
	}

	var leaves []frames.Snapshot
	collectLeaves(snap, &leaves)

	rows := make([][]string, 0, len(leaves))
	for _, l := range leaves {
		state := "visible"
		if !visible[l.Surface] {
			state = "hidden"
		}
		pinned := ""
		if l.Pinned {
			pinned = iconSuccess
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(l.Surface), 10),
			l.Area.String(),
			pinned,
			state,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Surface", "Area", "Pinned", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(rows) && rows[row][3] == "hidden" {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if col == 0 {
				return StyleNumber
			}
			return StyleValue
		})
	return t.Render()
}

func collectLeaves(s frames.Snapshot, out *[]frames.Snapshot) {
	if s.Role == frames.RoleLeaf {
		*out = append(*out, s)
		return
	}
	for _, c := range s.Children {
		collectLeaves(c, out)
	}
}

func countFrames(s frames.Snapshot) int {
	n := 1
	for _, c := range s.Children {
		n += countFrames(c)
	}
	return n
}
