package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
)

// rsvgBinary is the librsvg converter used for PDF and PNG output.
var rsvgBinary = "rsvg-convert"

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts an SVG document to PNG. The scale multiplies the SVG's
// intrinsic size; 2 suits high-DPI screens. Scales at or below zero mean 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// convert pipes svg through rsvg-convert. The process is killed when ctx
// ends.
func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(rsvgBinary)
	if err != nil {
		return nil, ferrors.New(ferrors.ErrCodeUnsupported,
			"%s output needs %s from librsvg (brew install librsvg, apt install librsvg2-bin)", format, rsvgBinary)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ferrors.Wrap(ferrors.ErrCodeInternal, err, "%s conversion failed: %s", format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
