package frames

import (
	"strings"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
)

// Geometry is the layout mode of a container. A leaf carries one too: it is
// the mode its wrapping container gets when the leaf is ramified.
type Geometry int

const (
	// Stacked children overlap in the container's rectangle. The head of the
	// temporal order is the one on top.
	Stacked Geometry = iota
	// Vertical children are stacked top-to-bottom, each a horizontal band.
	Vertical
	// Horizontal children are placed side-by-side, each a vertical band.
	Horizontal
)

var geometryNames = map[Geometry]string{
	Stacked:    "stacked",
	Vertical:   "vertical",
	Horizontal: "horizontal",
}

// String returns the lower-case geometry name.
func (g Geometry) String() string {
	if s, ok := geometryNames[g]; ok {
		return s
	}
	return "unknown"
}

// ParseGeometry converts a geometry name (case-insensitive) to a Geometry.
func ParseGeometry(s string) (Geometry, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for g, name := range geometryNames {
		if name == s {
			return g, true
		}
	}
	return Stacked, false
}

// Role distinguishes the three kinds of frame.
type Role int

const (
	// RoleRoot is the single top frame of a tree. It owns the output rectangle.
	RoleRoot Role = iota
	// RoleContainer holds children and no surface.
	RoleContainer
	// RoleLeaf holds a surface and no children.
	RoleLeaf
)

// String returns the lower-case role name.
func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RoleContainer:
		return "container"
	case RoleLeaf:
		return "leaf"
	}
	return "unknown"
}

// Direction names a neighbour relative to a frame, for FindAdjacent.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// axis reports the geometry whose major axis runs along d.
func (d Direction) axis() Geometry {
	if d == North || d == South {
		return Vertical
	}
	return Horizontal
}

// forward reports whether d points along increasing coordinates.
func (d Direction) forward() bool { return d == East || d == South }

// MarshalText encodes the geometry by name.
func (g Geometry) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// UnmarshalText decodes a geometry name.
func (g *Geometry) UnmarshalText(b []byte) error {
	v, ok := ParseGeometry(string(b))
	if !ok {
		return ferrors.New(ferrors.ErrCodeInvalidFormat, "unknown geometry %q", b)
	}
	*g = v
	return nil
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText decodes a role name.
func (r *Role) UnmarshalText(b []byte) error {
	for _, v := range []Role{RoleRoot, RoleContainer, RoleLeaf} {
		if v.String() == string(b) {
			*r = v
			return nil
		}
	}
	return ferrors.New(ferrors.ErrCodeInvalidFormat, "unknown role %q", b)
}
