// Package protocol defines the wire format exchanged with the model:
// prompt construction from a selection context and parsing of the
// model's JSON reply into a typed diff.
package protocol

// NodeSpec describes a node the model wants added, or a node in a
// generated diagram. Row and Column are logical grid coordinates.
type NodeSpec struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Label  string `json:"label"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

// NodeChanges carries the mutable node fields of an update. Nil fields
// were not mentioned by the model.
type NodeChanges struct {
	Label *string `json:"label,omitempty"`
	Type  *string `json:"type,omitempty"`
}

// NodeUpdate pairs a node reference with the requested changes. The ID
// may be a real element id or a placeholder the model invented.
type NodeUpdate struct {
	ID      string      `json:"id"`
	Changes NodeChanges `json:"changes"`
}

// EdgeSpec describes an edge the model wants added. Source and Target
// may be real element ids or placeholder references.
type EdgeSpec struct {
	ID     string `json:"id,omitempty"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// EdgeChanges carries the mutable edge fields of an update.
type EdgeChanges struct {
	Label *string `json:"label,omitempty"`
}

// EdgeUpdate pairs an edge reference with the requested changes.
type EdgeUpdate struct {
	ID      string      `json:"id"`
	Changes EdgeChanges `json:"changes"`
}

// EditDiff is the structured add/update/delete instruction set parsed
// from a model response. It is consumed exactly once by the apply
// engine.
type EditDiff struct {
	Explanation   string       `json:"explanation"`
	NodesToAdd    []NodeSpec   `json:"nodesToAdd"`
	NodesToUpdate []NodeUpdate `json:"nodesToUpdate"`
	NodesToDelete []string     `json:"nodesToDelete"`
	EdgesToAdd    []EdgeSpec   `json:"edgesToAdd"`
	EdgesToUpdate []EdgeUpdate `json:"edgesToUpdate"`
	EdgesToDelete []string     `json:"edgesToDelete"`
	Success       bool         `json:"success"`
	Error         string       `json:"error,omitempty"`
}

// IsEmpty reports whether the diff requests no changes at all.
func (d *EditDiff) IsEmpty() bool {
	return len(d.NodesToAdd) == 0 && len(d.NodesToUpdate) == 0 && len(d.NodesToDelete) == 0 &&
		len(d.EdgesToAdd) == 0 && len(d.EdgesToUpdate) == 0 && len(d.EdgesToDelete) == 0
}

// Failed builds an unsuccessful diff carrying a human-readable error.
// Used by callers when transport or parsing fails; a raw exception is
// never surfaced to the rendering layer.
func Failed(msg string) *EditDiff {
	return &EditDiff{
		Explanation:   msg,
		NodesToAdd:    []NodeSpec{},
		NodesToUpdate: []NodeUpdate{},
		NodesToDelete: []string{},
		EdgesToAdd:    []EdgeSpec{},
		EdgesToUpdate: []EdgeUpdate{},
		EdgesToDelete: []string{},
		Success:       false,
		Error:         msg,
	}
}

// GeneratedDiagram is the model's reply in from-scratch generation
// mode: a complete node and edge listing with grid positions.
type GeneratedDiagram struct {
	Title string     `json:"title,omitempty"`
	Nodes []NodeSpec `json:"nodes"`
	Edges []EdgeSpec `json:"edges"`
}
