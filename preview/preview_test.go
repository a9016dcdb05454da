package preview

import (
	"strings"
	"testing"

	"inkling/core"
)

func TestRenderEmpty(t *testing.T) {
	if out := Render(nil); out != "" {
		t.Errorf("empty diagram should render to empty string, got %q", out)
	}
	deleted := []core.Element{{ID: "a", Kind: core.KindRectangle, IsDeleted: true}}
	if out := Render(deleted); out != "" {
		t.Errorf("all-deleted diagram should render to empty string, got %q", out)
	}
}

func TestRenderBoxWithLabel(t *testing.T) {
	elements := []core.Element{
		{ID: "s1", Kind: core.KindRectangle, X: 0, Y: 0, Width: 160, Height: 80},
		{ID: "t1", Kind: core.KindText, Text: "Start", ContainerID: "s1"},
	}
	out := Render(elements)

	for _, want := range []string{"┌", "┘", "Start"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderShapeKinds(t *testing.T) {
	elements := []core.Element{
		{ID: "e1", Kind: core.KindEllipse, X: 0, Y: 0, Width: 120, Height: 60},
		{ID: "d1", Kind: core.KindDiamond, X: 300, Y: 0, Width: 120, Height: 60},
	}
	out := Render(elements)

	if !strings.Contains(out, "╭") {
		t.Errorf("ellipse should use rounded corners:\n%s", out)
	}
	if !strings.Contains(out, "<") || !strings.Contains(out, ">") {
		t.Errorf("diamond should carry angle markers:\n%s", out)
	}
}

func TestRenderArrow(t *testing.T) {
	elements := []core.Element{
		{ID: "s1", Kind: core.KindRectangle, X: 0, Y: 0, Width: 100, Height: 60},
		{ID: "s2", Kind: core.KindRectangle, X: 0, Y: 300, Width: 100, Height: 60},
		{
			ID: "a1", Kind: core.KindArrow, X: 50, Y: 60,
			Points: [][2]float64{{0, 0}, {0, 230}},
		},
	}
	out := Render(elements)

	if !strings.Contains(out, "│") {
		t.Errorf("vertical arrow missing line:\n%s", out)
	}
	if !strings.Contains(out, "v") {
		t.Errorf("downward arrow missing head:\n%s", out)
	}
}

func TestRenderTruncatesLongLabels(t *testing.T) {
	elements := []core.Element{
		{ID: "s1", Kind: core.KindRectangle, X: 0, Y: 0, Width: 80, Height: 60},
		{ID: "t1", Kind: core.KindText, Text: strings.Repeat("long", 20), ContainerID: "s1"},
	}
	out := Render(elements)

	if !strings.Contains(out, "…") {
		t.Errorf("oversized label should be truncated:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 12 {
			t.Errorf("label overflowed the grid: %q", line)
		}
	}
}
