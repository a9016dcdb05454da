// Package compress shrinks a diagram into a short symbolic notation
// for cheaper prompts. The notation is lossy by design (labels are
// truncated) and must never be the sole source of truth for
// reconciliation; the short-id assignment, however, is a strict
// bijection for the lifetime of one compression.
package compress

import (
	"fmt"
	"strings"
)

// maxLabelRunes is the label truncation threshold.
const maxLabelRunes = 15

// Node is the minimal view of a logical node the compressor needs.
type Node struct {
	ID    string
	Type  string
	Label string
}

// Edge is the minimal view of a logical edge the compressor needs.
type Edge struct {
	SourceNodeID string
	TargetNodeID string
	Label        string
}

// Compressed holds the symbolic rendering plus the invertible id maps.
type Compressed struct {
	Text       string
	IDMap      map[string]string // node id -> short id
	ReverseMap map[string]string // short id -> node id
}

// Expand translates a short id back to the original node id. Unknown
// short ids pass through unchanged, since the model may also answer
// with real ids.
func (c *Compressed) Expand(shortID string) string {
	if id, ok := c.ReverseMap[shortID]; ok {
		return id
	}
	return shortID
}

// shortID produces the nth short id: A..Z for the first 26 nodes, then
// A1, A2, ... beyond that.
func shortID(n int) string {
	if n < 26 {
		return string(rune('A' + n))
	}
	return fmt.Sprintf("A%d", n-25)
}

// brackets returns the bracket pair encoding a node type.
func brackets(nodeType string) (string, string) {
	switch nodeType {
	case "decision":
		return "<", ">"
	case "start", "end":
		return "(", ")"
	case "data":
		return "{", "}"
	default:
		return "[", "]"
	}
}

// truncate shortens a label to maxLabelRunes runes with an ellipsis.
func truncate(label string) string {
	runes := []rune(label)
	if len(runes) <= maxLabelRunes {
		return label
	}
	return string(runes[:maxLabelRunes]) + "…"
}

// Compress renders nodes and edges into the symbolic notation,
// assigning short ids in stable input order.
func Compress(nodes []Node, edges []Edge) *Compressed {
	c := &Compressed{
		IDMap:      make(map[string]string, len(nodes)),
		ReverseMap: make(map[string]string, len(nodes)),
	}

	var sb strings.Builder
	for i, node := range nodes {
		sid := shortID(i)
		c.IDMap[node.ID] = sid
		c.ReverseMap[sid] = node.ID

		if i > 0 {
			sb.WriteString(" ")
		}
		ob, cb := brackets(node.Type)
		sb.WriteString(sid)
		sb.WriteString(ob)
		sb.WriteString(truncate(node.Label))
		sb.WriteString(cb)
	}

	wroteEdge := false
	for _, edge := range edges {
		src, okS := c.IDMap[edge.SourceNodeID]
		dst, okT := c.IDMap[edge.TargetNodeID]
		if !okS || !okT {
			continue
		}
		if !wroteEdge {
			sb.WriteString("\n")
			wroteEdge = true
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(src)
		sb.WriteString("->")
		sb.WriteString(dst)
		if edge.Label != "" {
			sb.WriteString(":")
			sb.WriteString(truncate(edge.Label))
		}
	}

	c.Text = sb.String()
	return c
}
