// Package selection builds a bounded, serializable description of the
// currently selected diagram elements for prompt construction.
package selection

import (
	"fmt"
	"strings"
	"time"

	"inkling/core"
)

// maxDescribedLabels caps how many labels the free-text description
// enumerates before summarizing the remainder.
const maxDescribedLabels = 5

// Context is an ephemeral snapshot of a selection, rebuilt on every
// selection change and never persisted.
type Context struct {
	ElementIDs   []string
	Nodes        []core.ShadowNode
	RelatedEdges []core.ShadowEdge
	Bounds       *core.Bounds
	Description  string
	Timestamp    time.Time
}

// IsEmpty reports whether the context describes no elements.
func (c *Context) IsEmpty() bool {
	return c == nil || len(c.ElementIDs) == 0
}

// AnchorShapeID returns the id of the first selected shape, or "".
// Used as the attachment point when new nodes are added near a
// selection.
func (c *Context) AnchorShapeID() string {
	if c == nil || len(c.Nodes) == 0 {
		return ""
	}
	return c.Nodes[0].ID
}

// Build resolves the selected element ids into a Context. Deleted
// elements and unknown ids are ignored. An empty selection yields a
// well-formed context describing zero elements, not an error.
func Build(selectedIDs []string, all []core.Element) *Context {
	ctx := &Context{
		ElementIDs: []string{},
		Nodes:      []core.ShadowNode{},
		Timestamp:  time.Now(),
	}

	selected := make([]core.Element, 0, len(selectedIDs))
	selectedSet := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		el := core.AliveByID(all, id)
		if el == nil {
			continue
		}
		selected = append(selected, *el)
		selectedSet[id] = true
		ctx.ElementIDs = append(ctx.ElementIDs, id)
	}

	if len(selected) == 0 {
		ctx.Description = "no elements selected"
		return ctx
	}

	now := time.Now()
	for _, el := range selected {
		if !el.Kind.IsShape() {
			continue
		}
		node := core.ShadowNode{
			ID:         el.ID,
			Type:       nodeType(el),
			Label:      core.LabelText(&el, all),
			ElementIDs: []string{el.ID},
			Position: &core.Bounds{
				MinX: el.X, MinY: el.Y,
				MaxX: el.X + el.Width, MaxY: el.Y + el.Height,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if label := core.BoundLabel(&el, all); label != nil {
			node.ElementIDs = append(node.ElementIDs, label.ID)
		}
		ctx.Nodes = append(ctx.Nodes, node)
	}

	ctx.RelatedEdges = relatedEdges(selectedSet, all)
	ctx.Bounds = core.BoundsOf(selected)
	ctx.Description = describe(selected, ctx.Nodes)
	return ctx
}

// nodeType recovers the logical node type from customData, defaulting
// by shape kind.
func nodeType(el core.Element) string {
	if el.CustomData != nil {
		if t, ok := el.CustomData["nodeType"].(string); ok && t != "" {
			return t
		}
	}
	switch el.Kind {
	case core.KindDiamond:
		return "decision"
	case core.KindEllipse:
		return "start"
	default:
		return "process"
	}
}

// relatedEdges collects arrows with at least one endpoint bound to a
// selected element, resolved into shadow edges.
func relatedEdges(selected map[string]bool, all []core.Element) []core.ShadowEdge {
	var edges []core.ShadowEdge
	for i := range all {
		el := &all[i]
		if el.IsDeleted || el.Kind != core.KindArrow {
			continue
		}
		var source, target string
		if el.StartBinding != nil {
			source = el.StartBinding.ElementID
		}
		if el.EndBinding != nil {
			target = el.EndBinding.ElementID
		}
		if !selected[el.ID] && !selected[source] && !selected[target] {
			continue
		}
		edge := core.ShadowEdge{
			ID:           el.ID,
			Type:         "arrow",
			SourceNodeID: source,
			TargetNodeID: target,
			ElementID:    el.ID,
		}
		if label := core.BoundLabel(el, all); label != nil {
			edge.Label = label.Text
		}
		edges = append(edges, edge)
	}
	return edges
}

// describe builds a deterministic one-line summary of the selection.
func describe(selected []core.Element, nodes []core.ShadowNode) string {
	var sb strings.Builder
	noun := "elements"
	if len(selected) == 1 {
		noun = "element"
	}
	fmt.Fprintf(&sb, "%d %s selected", len(selected), noun)

	if len(nodes) > 0 {
		labels := make([]string, 0, maxDescribedLabels)
		for i, node := range nodes {
			if i >= maxDescribedLabels {
				break
			}
			labels = append(labels, fmt.Sprintf("%q", node.Label))
		}
		sb.WriteString(": ")
		sb.WriteString(strings.Join(labels, ", "))
		if extra := len(nodes) - maxDescribedLabels; extra > 0 {
			fmt.Fprintf(&sb, " and %d more", extra)
		}
	}
	return sb.String()
}
