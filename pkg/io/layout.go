package io

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
)

// Format is a layout description encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", ferrors.New(ferrors.ErrCodeInvalidPath, "cannot infer layout format from %q", path)
}

// Description is a declarative layout: the output size and the root frame.
type Description struct {
	Width  int  `toml:"width" yaml:"width" json:"width"`
	Height int  `toml:"height" yaml:"height" json:"height"`
	Frame  Node `toml:"frame" yaml:"frame" json:"frame"`
}

// Node describes one frame and its children.
type Node struct {
	Geometry string `toml:"geometry,omitempty" yaml:"geometry,omitempty" json:"geometry,omitempty"`
	Surface  uint64 `toml:"surface,omitempty" yaml:"surface,omitempty" json:"surface,omitempty"`
	Pin      int    `toml:"pin,omitempty" yaml:"pin,omitempty" json:"pin,omitempty"`
	Insert   string `toml:"insert,omitempty" yaml:"insert,omitempty" json:"insert,omitempty"`
	Frames   []Node `toml:"frames,omitempty" yaml:"frames,omitempty" json:"frames,omitempty"`
}

// ReadLayout decodes a layout description from r. Unknown keys are errors.
// ReadLayout does not close r.
func ReadLayout(r io.Reader, format Format) (Description, error) {
	var d Description
	var err error
	switch format {
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(&d)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown key %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&d)
		if err == io.EOF {
			err = fmt.Errorf("empty document")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&d)
	default:
		return d, ferrors.New(ferrors.ErrCodeUnsupported, "unsupported layout format %q", format)
	}
	if err != nil {
		return d, ferrors.Wrap(ferrors.ErrCodeInvalidFormat, err, "decode %s layout", format)
	}
	return d, nil
}

// LoadLayout reads the layout description file at path, choosing the
// decoder by extension.
func LoadLayout(path string) (Description, error) {
	if err := ferrors.ValidateLayoutPath(path); err != nil {
		return Description{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Description{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Description{}, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "layout %s", path)
		}
		return Description{}, fmt.Errorf("read %s: %w", path, err)
	}
	d, err := ReadLayout(bytes.NewReader(data), format)
	if err != nil {
		return d, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// WriteLayout encodes d to w. Empty fields are omitted.
func WriteLayout(w io.Writer, d Description, format Format) error {
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(d); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(d)
	default:
		return ferrors.New(ferrors.ErrCodeUnsupported, "unsupported layout format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
