package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
	"github.com/matzehuels/frametree/pkg/frames"
	"github.com/matzehuels/frametree/pkg/render"
)

const sampleLayout = `width = 200
height = 100

[frame]
geometry = "horizontal"

  [[frame.frames]]
  surface = 1
  pin = 60

  [[frame.frames]]
  geometry = "stacked"

    [[frame.frames.frames]]
    surface = 2

    [[frame.frames.frames]]
    surface = 3
`

// writeLayout writes src to a temp file and isolates the config and cache
// directories.
func writeLayout(t *testing.T, name, src string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestCLI() (*CLI, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, log.DebugLevel), &buf
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestRootCommand(t *testing.T) {
	c, _ := newTestCLI()
	root := c.RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"show", "export", "validate", "preview", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
	for _, flag := range []string{"config", "width", "height", "policy"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestLoadWorkspace(t *testing.T) {
	path := writeLayout(t, "layout.toml", sampleLayout)
	c, logs := newTestCLI()

	ws, err := c.loadWorkspace(context.Background(), path)
	if err != nil {
		t.Fatalf("loadWorkspace() error = %v", err)
	}
	snap := ws.Snapshot()
	if got := countFrames(snap); got != 5 {
		t.Errorf("countFrames() = %d, want 5", got)
	}

	want := map[frames.SurfaceID]frames.Area{
		1: frames.NewArea(0, 0, 60, 100),
		2: frames.NewArea(60, 0, 140, 100),
	}
	for _, leaf := range render.Visible(snap) {
		if leaf.Area != want[leaf.Surface] {
			t.Errorf("surface %d area = %v, want %v", leaf.Surface, leaf.Area, want[leaf.Surface])
		}
	}
	if !bytes.Contains(logs.Bytes(), []byte("loaded layout")) {
		t.Errorf("debug log missing load record: %s", logs)
	}
}

func TestLoadWorkspaceOverrides(t *testing.T) {
	path := writeLayout(t, "layout.toml", sampleLayout)
	c, _ := newTestCLI()
	c.cfg.Width, c.cfg.Height = 400, 50

	ws, err := c.loadWorkspace(context.Background(), path)
	if err != nil {
		t.Fatalf("loadWorkspace() error = %v", err)
	}
	if got := ws.Snapshot().Area; got != frames.NewArea(0, 0, 400, 50) {
		t.Errorf("root area = %v, want 400x50+0+0", got)
	}
}

func TestValidateCommand(t *testing.T) {
	good := writeLayout(t, "good.toml", sampleLayout)
	bad := writeLayout(t, "bad.toml", "width = 10\nheight = 10\n[frame]\ngeometry = \"diagonal\"\n")

	c, _ := newTestCLI()
	if err := execute(t, c, "validate", good); err != nil {
		t.Errorf("validate good layout: %v", err)
	}

	c, _ = newTestCLI()
	if err := execute(t, c, "validate", good, bad); err == nil {
		t.Error("validate with an invalid layout succeeded")
	}
}

func TestPolicyFlag(t *testing.T) {
	path := writeLayout(t, "layout.toml", sampleLayout)

	c, _ := newTestCLI()
	err := execute(t, c, "validate", "--policy", "random", path)
	if !ferrors.Is(err, ferrors.ErrCodeInvalidInput) {
		t.Errorf("--policy random error = %v, want INVALID_INPUT", err)
	}

	c, _ = newTestCLI()
	if err := execute(t, c, "validate", "--policy", "priority", "--width", "300", path); err != nil {
		t.Fatalf("validate --policy priority: %v", err)
	}
	if c.cfg.Policy != policyPriority || c.cfg.Width != 300 {
		t.Errorf("cfg = %+v, want priority policy and width 300", c.cfg)
	}
}

func TestCompletionCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c, _ := newTestCLI()

	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			root := c.RootCommand()
			var out bytes.Buffer
			root.SetArgs([]string{"completion", shell})
			root.SetOut(&out)
			root.SetErr(&bytes.Buffer{})
			if err := root.ExecuteContext(t.Context()); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "frametree") {
				t.Errorf("completion %s output does not mention frametree", shell)
			}
		})
	}

	if err := execute(t, c, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh succeeded")
	}
}
