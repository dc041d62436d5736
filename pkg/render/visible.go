package render

import "github.com/matzehuels/frametree/pkg/frames"

// Visible returns the leaves of snap that are on screen, in spatial order.
// Inside a Stacked container (or root) only the top child is descended into.
func Visible(snap frames.Snapshot) []frames.Snapshot {
	var out []frames.Snapshot
	var walk func(s frames.Snapshot)
	walk = func(s frames.Snapshot) {
		if s.Role == frames.RoleLeaf {
			out = append(out, s)
			return
		}
		if s.Geometry == frames.Stacked {
			if top := s.Top(); top >= 0 {
				walk(s.Children[top])
			}
			return
		}
		for _, c := range s.Children {
			walk(c)
		}
	}
	walk(snap)
	return out
}

// Hidden returns the leaves of snap that are covered by a sibling inside a
// Stacked container.
func Hidden(snap frames.Snapshot) []frames.Snapshot {
	visible := make(map[frames.SurfaceID]bool)
	for _, v := range Visible(snap) {
		visible[v.Surface] = true
	}
	var out []frames.Snapshot
	var walk func(s frames.Snapshot)
	walk = func(s frames.Snapshot) {
		if s.Role == frames.RoleLeaf {
			if !visible[s.Surface] {
				out = append(out, s)
			}
			return
		}
		for _, c := range s.Children {
			walk(c)
		}
	}
	walk(snap)
	return out
}
