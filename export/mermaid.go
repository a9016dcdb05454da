package export

import (
	"fmt"
	"strings"

	"inkling/core"
)

// MermaidExporter exports element lists as Mermaid flowchart syntax.
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter.
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the diagram's shapes and arrows to a top-down
// Mermaid flowchart. Shape kinds map to Mermaid node brackets.
func (e *MermaidExporter) Export(elements []core.Element) (string, error) {
	shapes := core.Shapes(elements)
	if len(shapes) == 0 {
		return "", fmt.Errorf("diagram has no shapes")
	}

	var sb strings.Builder
	sb.WriteString("flowchart TD\n")

	// Stable short identifiers in list order.
	names := make(map[string]string, len(shapes))
	for i, shape := range shapes {
		name := fmt.Sprintf("N%d", i)
		names[shape.ID] = name
		label := escapeLabel(core.LabelText(&shapes[i], elements))
		switch shape.Kind {
		case core.KindDiamond:
			fmt.Fprintf(&sb, "    %s{%s}\n", name, label)
		case core.KindEllipse:
			fmt.Fprintf(&sb, "    %s([%s])\n", name, label)
		default:
			fmt.Fprintf(&sb, "    %s[%s]\n", name, label)
		}
	}

	for i := range elements {
		el := &elements[i]
		if el.IsDeleted || el.Kind != core.KindArrow {
			continue
		}
		if el.StartBinding == nil || el.EndBinding == nil {
			continue
		}
		from, okF := names[el.StartBinding.ElementID]
		to, okT := names[el.EndBinding.ElementID]
		if !okF || !okT {
			continue
		}
		if label := core.BoundLabel(el, elements); label != nil && label.Text != "" {
			fmt.Fprintf(&sb, "    %s -->|%s| %s\n", from, escapeLabel(label.Text), to)
		} else {
			fmt.Fprintf(&sb, "    %s --> %s\n", from, to)
		}
	}

	return sb.String(), nil
}

// escapeLabel keeps labels from breaking Mermaid syntax.
func escapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\n", " ")
	label = strings.ReplaceAll(label, "\"", "'")
	for _, c := range []string{"[", "]", "{", "}", "(", ")", "|"} {
		label = strings.ReplaceAll(label, c, " ")
	}
	return strings.TrimSpace(label)
}

// GetFileExtension returns the file extension for Mermaid.
func (e *MermaidExporter) GetFileExtension() string {
	return ".mmd"
}

// GetFormatName returns the format name.
func (e *MermaidExporter) GetFormatName() string {
	return "Mermaid"
}
