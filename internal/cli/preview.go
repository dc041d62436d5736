package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "preview [layout]",
		Short: "Preview a layout interactively in the terminal",
		Long: `Open a full-screen preview of a layout. The root is reshaped to the terminal
size, so resizing the window re-settles every frame.

Keys:
  tab, shift+tab   raise the next or previous leaf through its stacks
  arrows, hjkl     focus the leaf next to the focused one
  q                quit

With --watch the layout file is rebuilt whenever it is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the layout when the file changes")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, path string, watch bool) error {
	ws, err := c.loadWorkspace(ctx, path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewPreviewModel(ctx, path, ws), tea.WithContext(ctx), tea.WithAltScreen())

	if watch {
		w, err := newLayoutWatcher(path, c.Logger, func() {
			ws, err := c.loadWorkspace(ctx, path)
			p.Send(reloadMsg{ws: ws, err: err})
		})
		if err != nil {
			return err
		}
		go w.Run(ctx)
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
