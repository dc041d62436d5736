package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/frametree/pkg/cache"
	ferrors "github.com/matzehuels/frametree/pkg/errors"
	"github.com/matzehuels/frametree/pkg/frames"
	fio "github.com/matzehuels/frametree/pkg/io"
	"github.com/matzehuels/frametree/pkg/observability"
	"github.com/matzehuels/frametree/pkg/render"
	"github.com/matzehuels/frametree/pkg/render/nodelink"
	"github.com/matzehuels/frametree/pkg/render/screen"
)

// artifactTTL bounds how long a rendered artifact is reused.
const artifactTTL = 7 * 24 * time.Hour

const (
	formatJSON = "json" // settled snapshot
	formatTOML = "toml" // layout description
	formatYAML = "yaml" // layout description
	formatDOT  = "dot"  // node-link graph source
	formatSVG  = "svg"
	formatPDF  = "pdf"
	formatPNG  = "png"
)

// validFormats lists the supported export formats in output order.
var validFormats = []string{formatJSON, formatTOML, formatYAML, formatDOT, formatSVG, formatPDF, formatPNG}

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output   string   // output file (single format) or base path
	formats  []string // export formats
	tree     bool     // draw the node-link tree instead of the screen for svg/pdf/png
	detailed bool     // detailed node-link labels
	hidden   bool     // outline leaves stacked behind others
	focus    uint64   // surface to highlight
	scale    float64  // PNG scale factor
	noCache  bool     // render every artifact afresh
}

// artifactKeyOpts are the options that change rendered output.
type artifactKeyOpts struct {
	Tree     bool    `json:"tree"`
	Detailed bool    `json:"detailed"`
	Hidden   bool    `json:"hidden"`
	Focus    uint64  `json:"focus"`
	Scale    float64 `json:"scale"`
}

func (o exportOpts) keyOpts() artifactKeyOpts {
	return artifactKeyOpts{Tree: o.tree, Detailed: o.detailed, Hidden: o.hidden, Focus: o.focus, Scale: o.scale}
}

// cachedFormats are the formats slow enough to be worth caching.
var cachedFormats = []string{formatSVG, formatPDF, formatPNG}

// exportCommand creates the export command for writing settled layouts.
func (c *CLI) exportCommand() *cobra.Command {
	var formatsStr string
	opts := exportOpts{scale: 2.0}

	cmd := &cobra.Command{
		Use:   "export [layout]",
		Short: "Export a settled layout to files",
		Long: `Build a layout, settle it and write the result in one or more formats.

Formats:
  json   settled snapshot (<base>.snapshot.json)
  toml   layout description (<base>.layout.toml)
  yaml   layout description (<base>.layout.yaml)
  dot    Graphviz source of the frame tree
  svg    screen view of the computed rectangles (or the tree with --tree)
  pdf    as svg, converted with rsvg-convert
  png    as svg, converted with rsvg-convert

Several formats are written concurrently. The default formats come from the
config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = c.cfg.Formats
			if formatsStr != "" {
				opts.formats = parseFormats(formatsStr)
			}
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runExport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), '-' for stdout, or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "export format(s): "+strings.Join(validFormats, ", ")+" (comma-separated)")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "draw the frame tree instead of the screen (svg, pdf, png)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show areas, ranks and pins in tree labels")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "outline leaves stacked behind others (screen view)")
	cmd.Flags().Uint64Var(&opts.focus, "focus", 0, "surface to highlight (screen view)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// validateFormats checks that all requested formats are supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(validFormats, f) {
			return ferrors.New(ferrors.ErrCodeInvalidInput,
				"invalid format: %s (must be one of %s)", f, strings.Join(validFormats, ", "))
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input.
// If output has a known format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(validFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPath names the file a format is written to. Layout formats get an
// infix so exporting never overwrites the input description.
func artifactPath(base, format string) string {
	switch format {
	case formatJSON:
		return base + ".snapshot.json"
	case formatTOML, formatYAML:
		return base + ".layout." + format
	}
	return base + "." + format
}

// outputPaths maps every format to its destination. A single format with an
// explicit output is written exactly there; "-" means stdout.
func outputPaths(input string, opts exportOpts) map[string]string {
	paths := make(map[string]string, len(opts.formats))
	if len(opts.formats) == 1 && opts.output != "" && (opts.output == "-" || filepath.Ext(opts.output) != "") {
		paths[opts.formats[0]] = opts.output
		return paths
	}
	base := basePath(opts.output, input)
	for _, f := range opts.formats {
		paths[f] = artifactPath(base, f)
	}
	return paths
}

func (c *CLI) runExport(ctx context.Context, input string, opts exportOpts) error {
	logger := loggerFromContext(ctx)

	ws, err := c.loadWorkspace(ctx, input)
	if err != nil {
		return err
	}
	snap := ws.Snapshot()
	paths := outputPaths(input, opts)

	store := c.newCache(opts.noCache)
	defer store.Close()
	var encoded bytes.Buffer
	if err := fio.WriteSnapshot(&encoded, snap); err != nil {
		return err
	}
	snapHash := cache.Hash(encoded.Bytes())

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %s...", strings.Join(opts.formats, ", ")))
	spinner.Start()

	var mu sync.Mutex
	var written []string
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			data, err := cachedArtifact(gctx, store, snapHash, snap, format, opts)
			observability.File().OnExport(gctx, format, len(data), time.Since(start), err)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			if err := writeArtifact(paths[format], data); err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			logger.Debug("exported", "format", format, "bytes", len(data), "path", paths[format])
			mu.Lock()
			written = append(written, paths[format])
			spinner.SetMessage("Exported %d/%d formats...", len(written), len(opts.formats))
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()

	if len(paths) == 1 && opts.output == "-" {
		return nil
	}
	slices.Sort(written)
	printSuccess("Exported %s", input)
	for _, p := range written {
		printFile(p)
	}
	return nil
}

// cachedArtifact returns the artifact from store when the same snapshot was
// rendered with the same options before, and renders and stores it otherwise.
func cachedArtifact(ctx context.Context, store cache.Cache, snapHash string, snap frames.Snapshot, format string, opts exportOpts) ([]byte, error) {
	if !slices.Contains(cachedFormats, format) {
		return renderArtifact(ctx, snap, format, opts)
	}
	logger := loggerFromContext(ctx)
	key := cache.ArtifactKey(snapHash, format, opts.keyOpts())
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		logger.Debug("artifact cache hit", "format", format)
		return data, nil
	} else if err != nil {
		logger.Debug("artifact cache read failed", "format", format, "err", err)
	}

	data, err := renderArtifact(ctx, snap, format, opts)
	if err != nil {
		return nil, err
	}
	if err := store.Set(ctx, key, data, artifactTTL); err != nil {
		logger.Debug("artifact cache write failed", "format", format, "err", err)
	}
	return data, nil
}

// renderArtifact produces the bytes for one format from an immutable
// snapshot, so it is safe to call concurrently.
func renderArtifact(ctx context.Context, snap frames.Snapshot, format string, opts exportOpts) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case formatJSON:
		if err := fio.WriteSnapshot(&buf, snap); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatTOML:
		if err := fio.WriteLayout(&buf, fio.Describe(snap), fio.FormatTOML); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatYAML:
		if err := fio.WriteLayout(&buf, fio.Describe(snap), fio.FormatYAML); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatDOT:
		return []byte(nodelink.ToDOT(snap, nodelink.Options{Detailed: opts.detailed})), nil
	}

	svg, err := renderSVG(ctx, snap, opts)
	if err != nil {
		return nil, err
	}
	switch format {
	case formatSVG:
		return svg, nil
	case formatPDF:
		return render.ToPDF(ctx, svg)
	case formatPNG:
		return render.ToPNG(ctx, svg, opts.scale)
	}
	return nil, ferrors.New(ferrors.ErrCodeInvalidInput, "unknown format: %s", format)
}

func renderSVG(ctx context.Context, snap frames.Snapshot, opts exportOpts) ([]byte, error) {
	if opts.tree {
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(snap, nodelink.Options{Detailed: opts.detailed}))
	}
	var screenOpts []screen.Option
	if opts.hidden {
		screenOpts = append(screenOpts, screen.WithHidden())
	}
	if opts.focus != 0 {
		screenOpts = append(screenOpts, screen.WithFocus(frames.SurfaceID(opts.focus)))
	}
	return screen.RenderSVG(snap, screenOpts...), nil
}

// writeArtifact writes data to path, or to stdout for "-".
func writeArtifact(path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
