package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frametree/pkg/render"
)

// validateCommand creates the validate command for checking layout files.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [layout...]",
		Short: "Check that layout files build into a consistent tree",
		Long: `Build each layout file and run the structural checks of the frame tree:
parent links, sibling orders, child counts and roles.

Every file is checked; the command fails if any of them is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args)
		},
	}
}

func (c *CLI) runValidate(ctx context.Context, paths []string) error {
	failed := 0
	for _, path := range paths {
		if err := c.validateOne(ctx, path); err != nil {
			printError("%s", path)
			printDetail("%s", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d layouts invalid", failed, len(paths))
	}
	return nil
}

func (c *CLI) validateOne(ctx context.Context, path string) error {
	prog := newProgress(loggerFromContext(ctx))
	ws, err := c.loadWorkspace(ctx, path)
	if err != nil {
		return err
	}
	if err := ws.Validate(); err != nil {
		return err
	}
	snap := ws.Snapshot()
	printSuccess("%s", path)
	printStats(countFrames(snap), len(render.Visible(snap)), len(render.Hidden(snap)), snap.Area.Size)
	prog.done("validated", "path", path)
	return nil
}
