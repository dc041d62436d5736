package render

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
)

// fakeConverter installs a shell script in place of rsvg-convert that echoes
// its arguments followed by stdin.
func fakeConverter(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script converter")
	}
	path := filepath.Join(t.TempDir(), "rsvg-convert")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	old := rsvgBinary
	rsvgBinary = path
	t.Cleanup(func() { rsvgBinary = old })
}

func TestConvertMissingBinary(t *testing.T) {
	old := rsvgBinary
	rsvgBinary = "frametree-no-such-converter"
	t.Cleanup(func() { rsvgBinary = old })

	_, err := ToPDF(t.Context(), []byte("<svg/>"))
	if !ferrors.Is(err, ferrors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
}

func TestConvertArgs(t *testing.T) {
	fakeConverter(t, `echo "$@"; cat`)

	tests := []struct {
		name    string
		convert func() ([]byte, error)
		want    string
	}{
		{"pdf", func() ([]byte, error) { return ToPDF(t.Context(), []byte("<svg/>")) }, "--format pdf\n<svg/>"},
		{"png", func() ([]byte, error) { return ToPNG(t.Context(), []byte("<svg/>"), 2) }, "--format png --zoom 2.00\n<svg/>"},
		{"png default scale", func() ([]byte, error) { return ToPNG(t.Context(), []byte("<svg/>"), 0) }, "--zoom 1.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.convert()
			if err != nil {
				t.Fatalf("convert error = %v", err)
			}
			if !strings.Contains(string(out), tt.want) {
				t.Errorf("output = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}

func TestConvertFailure(t *testing.T) {
	fakeConverter(t, `echo "bad svg" >&2; exit 1`)

	_, err := ToPDF(t.Context(), []byte("<svg"))
	if !ferrors.Is(err, ferrors.ErrCodeInternal) || !strings.Contains(err.Error(), "bad svg") {
		t.Errorf("ToPDF() error = %v, want INTERNAL_ERROR with stderr", err)
	}
}
