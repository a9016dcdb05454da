package core

import "testing"

// shapeWithLabel builds a shape and a text label bound by the given
// convention.
func shapeWithLabel(binding string) (Element, Element) {
	shape := Element{
		ID:      "shape-1",
		Kind:    KindRectangle,
		X:       100, Y: 100, Width: 150, Height: 60,
		Version: 1,
	}
	label := Element{
		ID:      "text-1",
		Kind:    KindText,
		X:       120, Y: 120, Width: 80, Height: 28,
		Version: 1,
		Text:    "Start",
	}

	switch binding {
	case "container":
		label.ContainerID = shape.ID
	case "boundElements":
		shape.BoundElements = []BoundRef{{ID: label.ID, Type: "text"}}
	case "group":
		shape.GroupIDs = []string{"group-1"}
		label.GroupIDs = []string{"group-1"}
	}
	return shape, label
}

func TestBoundLabelRoundTrip(t *testing.T) {
	// The same label must be recoverable regardless of which binding
	// convention attached it.
	for _, binding := range []string{"container", "boundElements", "group"} {
		t.Run(binding, func(t *testing.T) {
			shape, label := shapeWithLabel(binding)
			all := []Element{shape, label}

			found := BoundLabel(&all[0], all)
			if found == nil {
				t.Fatalf("label not found via %s binding", binding)
			}
			if found.ID != label.ID {
				t.Errorf("expected label %s, got %s", label.ID, found.ID)
			}
			if got := LabelText(&all[0], all); got != "Start" {
				t.Errorf("expected label text 'Start', got %q", got)
			}
		})
	}
}

func TestBoundLabelPriorityOrder(t *testing.T) {
	// When several conventions match, containerId wins.
	shape := Element{ID: "s", Kind: KindRectangle, GroupIDs: []string{"g"}}
	byContainer := Element{ID: "t1", Kind: KindText, ContainerID: "s", Text: "container"}
	byGroup := Element{ID: "t2", Kind: KindText, GroupIDs: []string{"g"}, Text: "group"}
	all := []Element{shape, byGroup, byContainer}

	found := BoundLabel(&all[0], all)
	if found == nil {
		t.Fatal("expected a label")
	}
	if found.Text != "container" {
		t.Errorf("expected containerId binding to win, got %q", found.Text)
	}
}

func TestBoundLabelIgnoresDeleted(t *testing.T) {
	shape, label := shapeWithLabel("container")
	label.IsDeleted = true
	all := []Element{shape, label}

	if found := BoundLabel(&all[0], all); found != nil {
		t.Errorf("deleted label should not be found, got %s", found.ID)
	}
}

func TestLabelTextFallback(t *testing.T) {
	shape := Element{ID: "s", Kind: KindRectangle}
	all := []Element{shape}

	if got := LabelText(&all[0], all); got != "node" {
		t.Errorf("expected fallback label 'node', got %q", got)
	}

	// customData label is preferred over the generic fallback.
	shape.CustomData = map[string]any{"label": "Review"}
	all = []Element{shape}
	if got := LabelText(&all[0], all); got != "Review" {
		t.Errorf("expected customData label 'Review', got %q", got)
	}
}
