package export

import (
	"encoding/json"
	"strings"
	"testing"

	"inkling/core"
)

func exportElements() []core.Element {
	return []core.Element{
		{ID: "s1", Kind: core.KindEllipse, X: 100, Y: 100, Width: 150, Height: 60},
		{ID: "t1", Kind: core.KindText, Text: "Start", ContainerID: "s1"},
		{ID: "s2", Kind: core.KindDiamond, X: 100, Y: 300, Width: 150, Height: 60},
		{ID: "t2", Kind: core.KindText, Text: "Valid?", ContainerID: "s2"},
		{ID: "s3", Kind: core.KindRectangle, X: 400, Y: 300, Width: 150, Height: 60},
		{ID: "t3", Kind: core.KindText, Text: "Retry", ContainerID: "s3"},
		{
			ID: "a1", Kind: core.KindArrow,
			StartBinding: &core.Binding{ElementID: "s1"},
			EndBinding:   &core.Binding{ElementID: "s2"},
		},
		{
			ID: "a2", Kind: core.KindArrow,
			StartBinding:  &core.Binding{ElementID: "s2"},
			EndBinding:    &core.Binding{ElementID: "s3"},
			BoundElements: []core.BoundRef{{ID: "ta2", Type: "text"}},
		},
		{ID: "ta2", Kind: core.KindText, Text: "no", ContainerID: "a2"},
		{ID: "gone", Kind: core.KindRectangle, IsDeleted: true},
	}
}

func TestForFormat(t *testing.T) {
	if _, err := ForFormat("json"); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := ForFormat("mermaid"); err != nil {
		t.Errorf("mermaid: %v", err)
	}
	if _, err := ForFormat("svg"); err == nil {
		t.Error("unknown format should error")
	}
}

func TestJSONExport(t *testing.T) {
	e := NewJSONExporter()
	out, err := e.Export(exportElements())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var parsed []core.Element
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, el := range parsed {
		if el.ID == "gone" {
			t.Error("deleted elements must not be exported")
		}
	}
	if e.GetFileExtension() != ".json" {
		t.Errorf("extension = %q", e.GetFileExtension())
	}
}

func TestMermaidExport(t *testing.T) {
	e := NewMermaidExporter()
	out, err := e.Export(exportElements())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if !strings.HasPrefix(out, "flowchart TD\n") {
		t.Errorf("missing header:\n%s", out)
	}
	for _, want := range []string{
		"N0([Start])",      // ellipse
		"N1{Valid?}",       // diamond
		"N2[Retry]",        // rectangle
		"N0 --> N1",        // unlabeled edge
		"N1 -->|no| N2",    // labeled edge
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "gone") {
		t.Error("deleted elements leaked into output")
	}
	if e.GetFileExtension() != ".mmd" {
		t.Errorf("extension = %q", e.GetFileExtension())
	}
}

func TestMermaidExportEmpty(t *testing.T) {
	e := NewMermaidExporter()
	if _, err := e.Export(nil); err == nil {
		t.Error("empty diagram should error")
	}
}

func TestEscapeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"two\nlines", "two lines"},
		{`say "hi"`, "say 'hi'"},
		{"a [b] {c} (d) |e|", "a  b   c   d   e"},
	}
	for _, tt := range tests {
		if got := escapeLabel(tt.in); got != tt.want {
			t.Errorf("escapeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
