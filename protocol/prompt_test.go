package protocol

import (
	"strings"
	"testing"

	"inkling/core"
	"inkling/selection"
)

func promptContext() *selection.Context {
	elements := []core.Element{
		{ID: "s1", Kind: core.KindRectangle, X: 0, Y: 0, Width: 100, Height: 50},
		{ID: "t1", Kind: core.KindText, Text: "Start", ContainerID: "s1"},
		{ID: "s2", Kind: core.KindRectangle, X: 0, Y: 200, Width: 100, Height: 50},
		{ID: "t2", Kind: core.KindText, Text: "Finish", ContainerID: "s2"},
		{
			ID: "a1", Kind: core.KindArrow,
			StartBinding: &core.Binding{ElementID: "s1"},
			EndBinding:   &core.Binding{ElementID: "s2"},
		},
	}
	return selection.Build([]string{"s1", "s2"}, elements)
}

func TestBuildPromptSections(t *testing.T) {
	prompt := BuildPrompt(promptContext(), "swap the labels")

	for _, want := range []string{"Nodes:", "Connections:", "swap the labels", `"Start"`, `"Finish"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	// Connections carry the arrow id (for edge updates and deletes)
	// with endpoints rendered as labels.
	if !strings.Contains(prompt, "id=a1") {
		t.Errorf("prompt missing the arrow id:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"Start" -> "Finish"`) {
		t.Errorf("edge endpoints should render as labels:\n%s", prompt)
	}
}

func TestBuildPromptOmitsEmptyEdgeSection(t *testing.T) {
	elements := []core.Element{
		{ID: "s1", Kind: core.KindRectangle, X: 0, Y: 0, Width: 100, Height: 50},
	}
	ctx := selection.Build([]string{"s1"}, elements)

	prompt := BuildPrompt(ctx, "rename it")
	if strings.Contains(prompt, "Connections:") {
		t.Errorf("edge section should be omitted when empty:\n%s", prompt)
	}
}

func TestBuildPromptEmptyContext(t *testing.T) {
	prompt := BuildPrompt(nil, "add a node")
	if !strings.Contains(prompt, "no elements selected") {
		t.Errorf("nil context should read as empty selection:\n%s", prompt)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	ctx := promptContext()
	if BuildPrompt(ctx, "x") != BuildPrompt(ctx, "x") {
		t.Error("prompt construction must be deterministic")
	}
}
