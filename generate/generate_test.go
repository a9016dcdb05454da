package generate

import (
	"testing"

	"inkling/core"
	"inkling/logger"
	"inkling/protocol"
)

func flowDoc() *protocol.GeneratedDiagram {
	return &protocol.GeneratedDiagram{
		Title: "Login Flow",
		Nodes: []protocol.NodeSpec{
			{ID: "n1", Type: "start", Label: "Begin", Row: 0, Column: 0},
			{ID: "n2", Type: "process", Label: "Validate", Row: 1, Column: 0},
			{ID: "n3", Type: "decision", Label: "OK?", Row: 1, Column: 1},
		},
		Edges: []protocol.EdgeSpec{
			{Source: "n1", Target: "n2"},
			{Source: "n2", Target: "n3", Label: "check"},
		},
	}
}

func shapeByNode(t *testing.T, elements []core.Element, nodeID string) *core.Element {
	t.Helper()
	for i := range elements {
		if elements[i].Kind.IsShape() && elements[i].NodeID() == nodeID {
			return &elements[i]
		}
	}
	t.Fatalf("no shape for node %s", nodeID)
	return nil
}

func TestDiagramGridPositions(t *testing.T) {
	res := Diagram(flowDoc(), "", logger.Discard())

	tests := []struct {
		node string
		x, y float64
	}{
		{"n1", StartX, StartY},
		{"n2", StartX, StartY + NodeHeight + VSpacing},
		{"n3", StartX + NodeWidth + HSpacing, StartY + NodeHeight + VSpacing},
	}
	for _, tt := range tests {
		shape := shapeByNode(t, res.Elements, tt.node)
		if shape.X != tt.x || shape.Y != tt.y {
			t.Errorf("%s at (%v, %v), want (%v, %v)", tt.node, shape.X, shape.Y, tt.x, tt.y)
		}
		if shape.Width != NodeWidth || shape.Height != NodeHeight {
			t.Errorf("%s sized %v x %v", tt.node, shape.Width, shape.Height)
		}
	}
}

func TestDiagramShapeAndLabelPairing(t *testing.T) {
	res := Diagram(flowDoc(), "auth", logger.Discard())

	shape := shapeByNode(t, res.Elements, "n2")
	if len(shape.GroupIDs) != 1 {
		t.Fatalf("shape should carry one group id, got %v", shape.GroupIDs)
	}

	label := core.BoundLabel(shape, res.Elements)
	if label == nil {
		t.Fatal("no label bound to n2's shape")
	}
	if label.Text != "Validate" {
		t.Errorf("label text = %q", label.Text)
	}
	if label.ContainerID != shape.ID {
		t.Errorf("label container = %q, want %q", label.ContainerID, shape.ID)
	}
	if len(label.GroupIDs) != 1 || label.GroupIDs[0] != shape.GroupIDs[0] {
		t.Error("label should share the shape's group")
	}
	if !shape.HasBound(label.ID, "text") {
		t.Error("shape missing boundElements ref to its label")
	}

	if got, _ := shape.CustomData["moduleId"].(string); got != "auth" {
		t.Errorf("moduleId = %q, want auth", got)
	}
	if got, _ := shape.CustomData["nodeType"].(string); got != "process" {
		t.Errorf("nodeType = %q", got)
	}
}

func TestDiagramTypeStyles(t *testing.T) {
	res := Diagram(flowDoc(), "", logger.Discard())

	if shapeByNode(t, res.Elements, "n1").Kind != core.KindEllipse {
		t.Error("start node should be an ellipse")
	}
	if shapeByNode(t, res.Elements, "n3").Kind != core.KindDiamond {
		t.Error("decision node should be a diamond")
	}

	kind, stroke, fill := StyleFor("no-such-type")
	dk, ds, df := StyleFor("")
	if kind != dk || stroke != ds || fill != df {
		t.Error("unknown type should fall back to the default style")
	}
}

func TestDiagramEdges(t *testing.T) {
	res := Diagram(flowDoc(), "", logger.Discard())

	var arrows []*core.Element
	for i := range res.Elements {
		if res.Elements[i].Kind == core.KindArrow {
			arrows = append(arrows, &res.Elements[i])
		}
	}
	if len(arrows) != 2 {
		t.Fatalf("expected 2 arrows, got %d", len(arrows))
	}

	n1 := shapeByNode(t, res.Elements, "n1")
	n2 := shapeByNode(t, res.Elements, "n2")
	first := arrows[0]
	if first.StartBinding.ElementID != n1.ID || first.EndBinding.ElementID != n2.ID {
		t.Error("first arrow bound to wrong shapes")
	}
	// Vertical stack: the arrow leaves the source's bottom edge.
	if first.Y != n1.Y+n1.Height {
		t.Errorf("arrow starts at y=%v, want bottom of source %v", first.Y, n1.Y+n1.Height)
	}
	if !n1.HasBound(first.ID, "arrow") || !n2.HasBound(first.ID, "arrow") {
		t.Error("endpoints missing boundElements refs")
	}

	// The labeled edge gets a bound text element.
	second := arrows[1]
	label := core.BoundLabel(second, res.Elements)
	if label == nil || label.Text != "check" {
		t.Errorf("labeled edge missing its label: %+v", label)
	}

	if len(res.ShadowEdges) != 2 {
		t.Errorf("expected 2 shadow edges, got %d", len(res.ShadowEdges))
	}
	if res.ShadowEdges[0].SourceNodeID != "n1" || res.ShadowEdges[0].TargetNodeID != "n2" {
		t.Errorf("wrong shadow edge endpoints: %+v", res.ShadowEdges[0])
	}
}

func TestDiagramSkipsUnknownEndpoints(t *testing.T) {
	doc := &protocol.GeneratedDiagram{
		Nodes: []protocol.NodeSpec{{ID: "n1", Type: "process", Label: "A"}},
		Edges: []protocol.EdgeSpec{{Source: "n1", Target: "ghost"}},
	}
	res := Diagram(doc, "", logger.Discard())

	for _, el := range res.Elements {
		if el.Kind == core.KindArrow {
			t.Error("edge with unknown endpoint should be skipped")
		}
	}
	if len(res.ShadowEdges) != 0 {
		t.Errorf("expected no shadow edges, got %d", len(res.ShadowEdges))
	}
}

func TestDiagramShadowNodes(t *testing.T) {
	res := Diagram(flowDoc(), "", logger.Discard())

	if len(res.ShadowNodes) != 3 {
		t.Fatalf("expected 3 shadow nodes, got %d", len(res.ShadowNodes))
	}
	sn := res.ShadowNodes[2]
	if sn.ID != "n3" || sn.Label != "OK?" {
		t.Errorf("wrong shadow node: %+v", sn)
	}
	if sn.LogicalPosition.Row != 1 || sn.LogicalPosition.Column != 1 {
		t.Errorf("wrong logical position: %+v", sn.LogicalPosition)
	}
	if len(sn.ElementIDs) != 2 {
		t.Errorf("shadow node should track shape and label ids, got %v", sn.ElementIDs)
	}
	if sn.Position == nil || sn.Position.MinX != StartX+NodeWidth+HSpacing {
		t.Errorf("wrong shadow position: %+v", sn.Position)
	}
}

func TestDiagramNilDoc(t *testing.T) {
	res := Diagram(nil, "", logger.Discard())
	if res == nil || len(res.Elements) != 0 {
		t.Errorf("nil doc should yield an empty result, got %+v", res)
	}
}

func TestConnectLabelSizing(t *testing.T) {
	src := core.Element{ID: "a", Kind: core.KindRectangle, X: 0, Y: 0, Width: 100, Height: 50}
	tgt := core.Element{ID: "b", Kind: core.KindRectangle, X: 300, Y: 0, Width: 100, Height: 50}

	out := Connect(&src, &tgt, "日本語ラベル")
	if len(out) != 2 {
		t.Fatalf("labeled connect should yield arrow and label, got %d", len(out))
	}
	label := out[1]

	w, h := core.EstimateTextSize("日本語ラベル", DefaultFontSize*0.8)
	if label.Width != w || label.Height != h {
		t.Errorf("label sized %v x %v, want %v x %v", label.Width, label.Height, w, h)
	}
	// Double-width runes count a full em each; byte counting would
	// inflate this far beyond six characters.
	if asciiW, _ := core.EstimateTextSize("labels", DefaultFontSize*0.8); label.Width <= asciiW {
		t.Errorf("wide-rune label width %v should exceed the ASCII width %v", label.Width, asciiW)
	}
	if cx := label.X + label.Width/2; cx != 200 {
		t.Errorf("label should center on the arrow midpoint, center x = %v", cx)
	}
}

func TestConnectHorizontal(t *testing.T) {
	src := core.Element{ID: "a", Kind: core.KindRectangle, X: 0, Y: 0, Width: 100, Height: 50}
	tgt := core.Element{ID: "b", Kind: core.KindRectangle, X: 300, Y: 0, Width: 100, Height: 50}

	out := Connect(&src, &tgt, "")
	if len(out) != 1 {
		t.Fatalf("unlabeled connect should yield one element, got %d", len(out))
	}
	arrow := out[0]
	if arrow.X != 100 || arrow.Y != 25 {
		t.Errorf("arrow should leave the source's right edge, got (%v, %v)", arrow.X, arrow.Y)
	}
	if dx := arrow.Points[1][0]; dx != 200 {
		t.Errorf("arrow span = %v, want 200", dx)
	}
}
