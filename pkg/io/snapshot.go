package io

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/goccy/go-json"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
	"github.com/matzehuels/frametree/pkg/frames"
)

// WriteSnapshot encodes snap as indented JSON and writes it to w.
// The output can be read back with [ReadSnapshot].
func WriteSnapshot(w io.Writer, snap frames.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSnapshot writes snap to a JSON file at path.
func ExportSnapshot(snap frames.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSnapshot(f, snap)
}

// ReadSnapshot decodes a JSON snapshot from r. ReadSnapshot does not close r.
func ReadSnapshot(r io.Reader) (frames.Snapshot, error) {
	var snap frames.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return snap, ferrors.Wrap(ferrors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	return snap, nil
}

// ImportSnapshot reads a JSON snapshot file at path.
func ImportSnapshot(path string) (frames.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return frames.Snapshot{}, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "snapshot %s", path)
		}
		return frames.Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}

// Restore rebuilds a tree from a snapshot of its root. Spatial and temporal
// orders, pins and rectangles are reproduced; a snapshot of a settled tree
// restores to an equal snapshot.
func Restore(snap frames.Snapshot, opts ...frames.Option) (*frames.Tree, error) {
	if snap.Role != frames.RoleRoot {
		return nil, ferrors.New(ferrors.ErrCodeInvalidFormat, "snapshot is a %s, want root", snap.Role)
	}
	opts = append(slices.Clip(opts), frames.WithRootGeometry(snap.Geometry))
	t := frames.New(opts...)
	if err := restoreChildren(t, t.Root(), snap, "root"); err != nil {
		return nil, err
	}
	if err := t.Place(t.Root(), snap.Area); err != nil {
		return nil, err
	}
	t.Flush()
	return t, nil
}

func restoreChildren(t *frames.Tree, parent frames.FrameID, s frames.Snapshot, path string) error {
	if len(s.Children) > 0 && len(s.Temporal) != len(s.Children) {
		return ferrors.New(ferrors.ErrCodeInvalidFormat, "%s: temporal order lists %d of %d children",
			path, len(s.Temporal), len(s.Children))
	}
	ids := make([]frames.FrameID, len(s.Children))
	for i, c := range s.Children {
		at := fmt.Sprintf("%s.children[%d]", path, i)
		switch c.Role {
		case frames.RoleLeaf:
			if len(c.Children) > 0 {
				return ferrors.New(ferrors.ErrCodeInvalidFormat, "%s: leaf with children", at)
			}
			ids[i] = t.NewLeaf(c.Surface, c.Geometry)
		case frames.RoleContainer:
			ids[i] = t.NewContainer(c.Geometry)
			if err := restoreChildren(t, ids[i], c, at); err != nil {
				return err
			}
		default:
			return ferrors.New(ferrors.ErrCodeInvalidFormat, "%s: unexpected %s", at, c.Role)
		}
		if err := t.Append(parent, ids[i]); err != nil {
			return fmt.Errorf("%s: %w", at, err)
		}
		if c.Pinned {
			if err := t.Resize(ids[i], c.Area); err != nil {
				return err
			}
		} else if err := t.Place(ids[i], c.Area); err != nil {
			return err
		}
	}

	// Popping from least to most recent leaves Temporal[0] at the head.
	seen := make(map[int]bool, len(s.Temporal))
	for j := len(s.Temporal) - 1; j >= 0; j-- {
		k := s.Temporal[j]
		if k < 0 || k >= len(ids) || seen[k] {
			return ferrors.New(ferrors.ErrCodeInvalidFormat, "%s: bad temporal index %d", path, k)
		}
		seen[k] = true
		if err := t.Pop(ids[k]); err != nil {
			return err
		}
	}
	return nil
}
