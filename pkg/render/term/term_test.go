package term

import (
	"strings"
	"testing"

	"github.com/matzehuels/frametree/pkg/frames"
)

func twoLeaves() frames.Snapshot {
	return frames.Snapshot{
		Role:     frames.RoleRoot,
		Geometry: frames.Horizontal,
		Area:     frames.NewArea(0, 0, 200, 40),
		Children: []frames.Snapshot{
			{Role: frames.RoleLeaf, Surface: 1, Area: frames.NewArea(0, 0, 100, 40)},
			{Role: frames.RoleLeaf, Surface: 2, Area: frames.NewArea(100, 0, 100, 40)},
		},
		Temporal: []int{1, 0},
	}
}

func TestRender(t *testing.T) {
	got := Render(twoLeaves(), 20, 4, Options{})
	want := strings.Join([]string{
		"╭────────╮╭────────╮",
		"│1       ││2       │",
		"│        ││        │",
		"╰────────╯╰────────╯",
	}, "\n")
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderStackedShowsTop(t *testing.T) {
	snap := twoLeaves()
	snap.Geometry = frames.Stacked
	snap.Children[0].Area = snap.Area
	snap.Children[1].Area = snap.Area

	got := Render(snap, 10, 3, Options{Label: func(s frames.SurfaceID) string {
		return map[frames.SurfaceID]string{1: "editor", 2: "shell"}[s]
	}})
	want := strings.Join([]string{
		"╭────────╮",
		"│shell   │",
		"╰────────╯",
	}, "\n")
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTiny(t *testing.T) {
	got := Render(twoLeaves(), 4, 1, Options{})
	if got != "░░░░" {
		t.Errorf("Render() = %q, want shading", got)
	}
	if got := Render(twoLeaves(), 0, 5, Options{}); got != "" {
		t.Errorf("Render(0 cols) = %q", got)
	}
}

func TestRenderLabelTruncated(t *testing.T) {
	got := Render(twoLeaves(), 10, 3, Options{Label: func(frames.SurfaceID) string { return "terminal" }})
	first := strings.Split(got, "\n")[1]
	if first != "│ter││ter│" {
		t.Errorf("label row = %q", first)
	}
}

func TestRenderColorKeepsText(t *testing.T) {
	got := Render(twoLeaves(), 20, 4, Options{Color: true, Focus: 2})
	for _, want := range []string{"1", "2", "╭"} {
		if !strings.Contains(got, want) {
			t.Errorf("colored output missing %q", want)
		}
	}
	if n := strings.Count(got, "\n"); n != 3 {
		t.Errorf("colored output has %d newlines, want 3", n)
	}
}
