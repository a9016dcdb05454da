package core

import "time"

// GridPos is a logical grid coordinate, independent of pixels.
type GridPos struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// ShadowNode is the AI-facing abstraction over one or more visual
// elements forming a semantic diagram node.
type ShadowNode struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	Label           string         `json:"label"`
	ElementIDs      []string       `json:"elementIds"`
	LogicalPosition GridPos        `json:"logicalPosition"`
	Position        *Bounds        `json:"position,omitempty"`
	Properties      map[string]any `json:"properties,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// ShadowEdge is the AI-facing abstraction over an arrow connecting two
// shadow nodes.
type ShadowEdge struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Label        string `json:"label,omitempty"`
	SourceNodeID string `json:"sourceNodeId"`
	TargetNodeID string `json:"targetNodeId"`
	ElementID    string `json:"elementId"`
}
