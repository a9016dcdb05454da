package protocol

import (
	"fmt"
	"strings"

	"inkling/selection"
)

// EditSystemPrompt instructs the model to reply with a structured diff.
const EditSystemPrompt = `You are a diagram editing assistant. The user will describe a change to
make to the selected part of a diagram. Reply with a single JSON object
inside a ` + "```json" + ` fenced block, using this schema:

{
  "explanation": "what you changed",
  "nodesToAdd":    [{"id": "n1", "type": "process", "label": "...", "row": 0, "column": 0}],
  "nodesToUpdate": [{"id": "...", "changes": {"label": "...", "type": "..."}}],
  "nodesToDelete": ["..."],
  "edgesToAdd":    [{"source": "...", "target": "...", "label": "..."}],
  "edgesToUpdate": [{"id": "...", "changes": {"label": "..."}}],
  "edgesToDelete": ["..."]
}

Omit arrays you do not need. Refer to nodes and connections by the ids
listed in the prompt. Node types: process, decision, start, end, data.`

// GenerateSystemPrompt instructs the model to lay out a whole diagram.
const GenerateSystemPrompt = `You are a diagram layout assistant. The user will describe a diagram.
Reply with a single JSON object inside a ` + "```json" + ` fenced block:

{
  "title": "...",
  "nodes": [{"id": "n1", "type": "process", "label": "...", "row": 0, "column": 0}],
  "edges": [{"source": "n1", "target": "n2", "label": "..."}]
}

Rows and columns are grid coordinates starting at 0; flow goes top to
bottom. Node types: process, decision, start, end, data.`

// BuildPrompt serializes a selection context plus the user's
// instruction into the user message for an incremental edit request.
// The output is deterministic for a given context and instruction.
func BuildPrompt(ctx *selection.Context, instruction string) string {
	var sb strings.Builder

	sb.WriteString("Current selection: ")
	if ctx == nil || ctx.Description == "" {
		sb.WriteString("no elements selected")
	} else {
		sb.WriteString(ctx.Description)
	}
	sb.WriteString("\n")

	if ctx != nil && len(ctx.Nodes) > 0 {
		sb.WriteString("\nNodes:\n")
		for i, node := range ctx.Nodes {
			fmt.Fprintf(&sb, "%d. id=%s type=%s label=%q", i+1, node.ID, node.Type, node.Label)
			if node.LogicalPosition.Row != 0 || node.LogicalPosition.Column != 0 {
				fmt.Fprintf(&sb, " at (row %d, col %d)", node.LogicalPosition.Row, node.LogicalPosition.Column)
			}
			sb.WriteString("\n")
		}
	}

	// The edge section is omitted entirely when there are no related
	// edges; an empty header would only waste tokens. Each connection
	// carries its id so edge updates and deletes can reference it.
	if ctx != nil && len(ctx.RelatedEdges) > 0 {
		labels := nodeLabelIndex(ctx)
		sb.WriteString("\nConnections:\n")
		for _, edge := range ctx.RelatedEdges {
			fmt.Fprintf(&sb, "- id=%s %s -> %s", edge.ID, endpointLabel(labels, edge.SourceNodeID), endpointLabel(labels, edge.TargetNodeID))
			if edge.Label != "" {
				fmt.Fprintf(&sb, " (%q)", edge.Label)
			}
			sb.WriteString("\n")
		}
	}

	fmt.Fprintf(&sb, "\nInstruction: %s\n", instruction)
	return sb.String()
}

// nodeLabelIndex maps node element ids to their labels for edge
// endpoint resolution in the prompt.
func nodeLabelIndex(ctx *selection.Context) map[string]string {
	labels := make(map[string]string, len(ctx.Nodes))
	for _, node := range ctx.Nodes {
		labels[node.ID] = node.Label
	}
	return labels
}

// endpointLabel renders an edge endpoint as its node label when known,
// keeping raw ids out of the prompt where possible.
func endpointLabel(labels map[string]string, id string) string {
	if label, ok := labels[id]; ok && label != "" {
		return fmt.Sprintf("%q", label)
	}
	if id == "" {
		return "(unbound)"
	}
	return id
}

// BuildGeneratePrompt wraps a free-text diagram description for
// from-scratch generation mode.
func BuildGeneratePrompt(description string) string {
	return fmt.Sprintf("Create a diagram for the following description:\n\n%s\n", description)
}
