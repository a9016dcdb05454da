package selection

import (
	"strings"
	"testing"

	"inkling/core"
)

func testElements() []core.Element {
	return []core.Element{
		{ID: "s1", Kind: core.KindRectangle, X: 100, Y: 100, Width: 150, Height: 60},
		{ID: "t1", Kind: core.KindText, X: 120, Y: 120, Width: 80, Height: 28, Text: "Start", ContainerID: "s1"},
		{ID: "s2", Kind: core.KindDiamond, X: 100, Y: 300, Width: 150, Height: 60},
		{ID: "t2", Kind: core.KindText, X: 120, Y: 320, Width: 80, Height: 28, Text: "Check", ContainerID: "s2"},
		{
			ID: "a1", Kind: core.KindArrow, X: 175, Y: 160,
			Points:       [][2]float64{{0, 0}, {0, 140}},
			StartBinding: &core.Binding{ElementID: "s1"},
			EndBinding:   &core.Binding{ElementID: "s2"},
		},
	}
}

func TestBuildEmptySelection(t *testing.T) {
	ctx := Build(nil, testElements())
	if ctx == nil {
		t.Fatal("expected a context, not nil")
	}
	if ctx.Description != "no elements selected" {
		t.Errorf("wrong description: %q", ctx.Description)
	}
	if ctx.Bounds != nil {
		t.Error("empty selection should have nil bounds")
	}
	if len(ctx.Nodes) != 0 {
		t.Errorf("expected no nodes, got %d", len(ctx.Nodes))
	}
}

func TestBuildResolvesLabelsAndBounds(t *testing.T) {
	ctx := Build([]string{"s1", "s2"}, testElements())

	if len(ctx.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(ctx.Nodes))
	}
	if ctx.Nodes[0].Label != "Start" || ctx.Nodes[1].Label != "Check" {
		t.Errorf("wrong labels: %q, %q", ctx.Nodes[0].Label, ctx.Nodes[1].Label)
	}
	if ctx.Nodes[1].Type != "decision" {
		t.Errorf("diamond should default to decision, got %q", ctx.Nodes[1].Type)
	}

	if ctx.Bounds == nil {
		t.Fatal("expected bounds")
	}
	if ctx.Bounds.MinX != 100 || ctx.Bounds.MinY != 100 || ctx.Bounds.MaxX != 250 || ctx.Bounds.MaxY != 360 {
		t.Errorf("wrong bounds: %+v", *ctx.Bounds)
	}

	if !strings.Contains(ctx.Description, "2 elements selected") {
		t.Errorf("description missing count: %q", ctx.Description)
	}
	if !strings.Contains(ctx.Description, `"Start"`) {
		t.Errorf("description missing label: %q", ctx.Description)
	}
}

func TestBuildRelatedEdges(t *testing.T) {
	ctx := Build([]string{"s1"}, testElements())

	if len(ctx.RelatedEdges) != 1 {
		t.Fatalf("expected 1 related edge, got %d", len(ctx.RelatedEdges))
	}
	edge := ctx.RelatedEdges[0]
	if edge.SourceNodeID != "s1" || edge.TargetNodeID != "s2" {
		t.Errorf("wrong endpoints: %s -> %s", edge.SourceNodeID, edge.TargetNodeID)
	}
}

func TestBuildSkipsDeletedAndUnknown(t *testing.T) {
	elements := testElements()
	elements[0].IsDeleted = true

	ctx := Build([]string{"s1", "nope", "s2"}, elements)
	if len(ctx.ElementIDs) != 1 || ctx.ElementIDs[0] != "s2" {
		t.Errorf("expected only s2, got %v", ctx.ElementIDs)
	}
}

func TestBuildLabelFallback(t *testing.T) {
	elements := []core.Element{
		{ID: "s1", Kind: core.KindRectangle, X: 0, Y: 0, Width: 10, Height: 10},
	}
	ctx := Build([]string{"s1"}, elements)
	if len(ctx.Nodes) != 1 {
		t.Fatal("expected 1 node")
	}
	if ctx.Nodes[0].Label != "node" {
		t.Errorf("expected placeholder label 'node', got %q", ctx.Nodes[0].Label)
	}
}

func TestDescriptionDeterministic(t *testing.T) {
	a := Build([]string{"s1", "s2"}, testElements())
	b := Build([]string{"s1", "s2"}, testElements())
	if a.Description != b.Description {
		t.Errorf("description not deterministic: %q vs %q", a.Description, b.Description)
	}
}
