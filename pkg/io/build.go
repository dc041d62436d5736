package io

import (
	"fmt"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
	"github.com/matzehuels/frametree/pkg/frames"
)

// pin is a pinned extent waiting for the tree to be reshaped.
type pin struct {
	id     frames.FrameID
	axis   frames.Geometry
	extent int
}

type builder struct {
	tree     *frames.Tree
	pins     []pin
	surfaces map[frames.SurfaceID]string
}

// Build creates a settled tree from d. The root is reshaped to
// d.Width x d.Height, pins are applied as direct resizes and all pending
// settles are flushed. Nothing is returned on error.
func Build(d Description, opts ...frames.Option) (*frames.Tree, error) {
	if err := ferrors.ValidateExtent("width", d.Width); err != nil {
		return nil, err
	}
	if err := ferrors.ValidateExtent("height", d.Height); err != nil {
		return nil, err
	}
	if d.Frame.Surface != 0 || d.Frame.Pin != 0 || d.Frame.Insert != "" {
		return nil, ferrors.New(ferrors.ErrCodeInvalidFormat, "frame: the root takes only geometry and frames")
	}

	b := &builder{
		tree:     frames.New(opts...),
		surfaces: make(map[frames.SurfaceID]string),
	}
	root := b.tree.Root()
	g, err := geometryOf(d.Frame, frames.Stacked, "frame")
	if err != nil {
		return nil, err
	}
	if err := b.tree.SetGeometry(root, g); err != nil {
		return nil, err
	}
	if err := b.children(root, g, d.Frame.Frames, "frame"); err != nil {
		return nil, err
	}

	if err := b.tree.Reshape(root, frames.NewArea(0, 0, d.Width, d.Height)); err != nil {
		return nil, err
	}
	b.tree.Flush()
	for _, p := range b.pins {
		area, err := b.tree.Area(p.id)
		if err != nil {
			return nil, err
		}
		if p.axis == frames.Vertical {
			area.Size.Height = p.extent
		} else {
			area.Size.Width = p.extent
		}
		if err := b.tree.Resize(p.id, area); err != nil {
			return nil, err
		}
	}
	b.tree.Flush()
	return b.tree, nil
}

func (b *builder) children(parent frames.FrameID, axis frames.Geometry, nodes []Node, path string) error {
	for i, n := range nodes {
		at := fmt.Sprintf("%s.frames[%d]", path, i)
		id, err := b.node(n, at)
		if err != nil {
			return err
		}
		switch n.Insert {
		case "", "append":
			err = b.tree.Append(parent, id)
		case "prepend":
			err = b.tree.Prepend(parent, id)
		default:
			return ferrors.New(ferrors.ErrCodeInvalidFormat, "%s: unknown insert mode %q", at, n.Insert)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", at, err)
		}
		if n.Pin < 0 {
			return ferrors.New(ferrors.ErrCodeInvalidFormat, "%s: negative pin %d", at, n.Pin)
		}
		if n.Pin > 0 {
			if axis == frames.Stacked {
				return ferrors.New(ferrors.ErrCodeInvalidFormat, "%s: pin inside a stacked container", at)
			}
			b.pins = append(b.pins, pin{id: id, axis: axis, extent: n.Pin})
		}
	}
	return nil
}

func (b *builder) node(n Node, path string) (frames.FrameID, error) {
	if n.Surface != 0 {
		if len(n.Frames) > 0 {
			return frames.NoFrame, ferrors.New(ferrors.ErrCodeInvalidFormat, "%s: leaf with children", path)
		}
		sid := frames.SurfaceID(n.Surface)
		if prev, ok := b.surfaces[sid]; ok {
			return frames.NoFrame, ferrors.New(ferrors.ErrCodeInvalidFormat, "%s: surface %d already used by %s", path, sid, prev)
		}
		b.surfaces[sid] = path
		g, err := geometryOf(n, frames.Stacked, path)
		if err != nil {
			return frames.NoFrame, err
		}
		return b.tree.NewLeaf(sid, g), nil
	}

	g, err := geometryOf(n, frames.Vertical, path)
	if err != nil {
		return frames.NoFrame, err
	}
	id := b.tree.NewContainer(g)
	if err := b.children(id, g, n.Frames, path); err != nil {
		return frames.NoFrame, err
	}
	return id, nil
}

func geometryOf(n Node, def frames.Geometry, path string) (frames.Geometry, error) {
	if n.Geometry == "" {
		return def, nil
	}
	g, ok := frames.ParseGeometry(n.Geometry)
	if !ok {
		return def, ferrors.New(ferrors.ErrCodeInvalidFormat, "%s: unknown geometry %q", path, n.Geometry)
	}
	return g, nil
}

// Describe converts a snapshot back into a description of size width x
// height. Pinned frames keep their extent along the parent's axis. Temporal
// order is not part of a description and is lost.
func Describe(snap frames.Snapshot) Description {
	return Description{
		Width:  snap.Area.Size.Width,
		Height: snap.Area.Size.Height,
		Frame:  describe(snap, frames.Stacked),
	}
}

func describe(s frames.Snapshot, axis frames.Geometry) Node {
	n := Node{Geometry: s.Geometry.String()}
	if s.Role == frames.RoleLeaf {
		n.Surface = uint64(s.Surface)
		if s.Geometry == frames.Stacked {
			n.Geometry = ""
		}
	}
	if s.Pinned && axis != frames.Stacked {
		n.Pin = s.Area.Size.Width
		if axis == frames.Vertical {
			n.Pin = s.Area.Size.Height
		}
	}
	for _, c := range s.Children {
		n.Frames = append(n.Frames, describe(c, s.Geometry))
	}
	return n
}
