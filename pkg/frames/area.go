package frames

import "fmt"

// Position is a point in output pixels.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is a width/height pair in output pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Area is an on-screen rectangle: the top-left position and the size.
type Area struct {
	Pos  Position `json:"pos" yaml:"pos"`
	Size Size     `json:"size" yaml:"size"`
}

// NewArea creates an Area from its position and dimensions.
func NewArea(x, y, width, height int) Area {
	return Area{Pos: Position{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (a Area) Right() int { return a.Pos.X + a.Size.Width }

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (a Area) Bottom() int { return a.Pos.Y + a.Size.Height }

// IsEmpty reports whether the area has zero or negative extent.
func (a Area) IsEmpty() bool { return a.Size.Width <= 0 || a.Size.Height <= 0 }

// Contains reports whether p lies inside a. Left and top edges are inside,
// right and bottom edges are outside.
func (a Area) Contains(p Position) bool {
	return p.X >= a.Pos.X && p.X < a.Right() && p.Y >= a.Pos.Y && p.Y < a.Bottom()
}

func (a Area) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", a.Size.Width, a.Size.Height, a.Pos.X, a.Pos.Y)
}

// major returns the extent of a along g's layout axis.
// Stacked has no axis; its major extent is reported as the width.
func (a Area) major(g Geometry) int {
	if g == Vertical {
		return a.Size.Height
	}
	return a.Size.Width
}

// band returns the sub-rectangle of a that starts offset pixels along g's
// axis and spans extent pixels, covering the full minor axis.
func (a Area) band(g Geometry, offset, extent int) Area {
	if g == Vertical {
		return NewArea(a.Pos.X, a.Pos.Y+offset, a.Size.Width, extent)
	}
	return NewArea(a.Pos.X+offset, a.Pos.Y, extent, a.Size.Height)
}
