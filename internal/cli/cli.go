// Package cli implements the frametree command-line interface.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/frametree/pkg/buildinfo"
	"github.com/matzehuels/frametree/pkg/frames"
	fio "github.com/matzehuels/frametree/pkg/io"
	"github.com/matzehuels/frametree/pkg/observability"
	"github.com/matzehuels/frametree/pkg/workspace"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "frametree"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	flags      Config
	cfg        Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), cfg: DefaultConfig()}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Frametree lays out frame trees and previews the result",
		Long:         `Frametree builds tiling window layouts from TOML, YAML or JSON descriptions, settles every frame to an on-screen rectangle and renders or exports the result.`,
		Version:      buildinfo.Resolve().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/frametree/config.toml)")
	pf.IntVar(&c.flags.Width, "width", 0, "output width, overrides the layout file")
	pf.IntVar(&c.flags.Height, "height", 0, "output height, overrides the layout file")
	pf.StringVar(&c.flags.Policy, "policy", "", "overflow policy: proportional (default), priority")

	// Register all subcommands
	root.AddCommand(c.showCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Layout Loading
// =============================================================================

// loadConfig merges the config file with the flags that were set explicitly.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			c.Logger.Debug("no config directory", "err", err)
			return nil
		}
		path = p
	}

	cfg, err := loadConfigFile(path, explicit)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = c.flags.Width
	}
	if flags.Changed("height") {
		cfg.Height = c.flags.Height
	}
	if flags.Changed("policy") {
		cfg.Policy = c.flags.Policy
	}
	if _, err := cfg.OverflowPolicy(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// loadWorkspace reads the layout at path and builds a settled workspace.
// Configured width and height replace the file's output size.
func (c *CLI) loadWorkspace(ctx context.Context, path string) (*workspace.Workspace, error) {
	start := time.Now()
	ws, n, err := c.buildWorkspace(path)
	observability.File().OnLoad(ctx, path, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("loaded layout", "path", path, "frames", n)
	return ws, nil
}

func (c *CLI) buildWorkspace(path string) (*workspace.Workspace, int, error) {
	d, err := fio.LoadLayout(path)
	if err != nil {
		return nil, 0, err
	}
	if c.cfg.Width > 0 {
		d.Width = c.cfg.Width
	}
	if c.cfg.Height > 0 {
		d.Height = c.cfg.Height
	}

	policy, err := c.cfg.OverflowPolicy()
	if err != nil {
		return nil, 0, err
	}
	tree, err := fio.Build(d, frames.WithPolicy(policy))
	if err != nil {
		return nil, 0, err
	}

	n := 0
	tree.Walk(tree.Root(), func(frames.Frame) bool {
		n++
		return true
	})
	return workspace.FromTree(tree, workspace.WithLogger(c.Logger)), n, nil
}
