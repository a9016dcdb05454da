package protocol

import (
	"encoding/json"
	"strings"
)

// defaultExplanation is substituted when the model omits one.
const defaultExplanation = "operation complete"

// extractJSON pulls the payload out of a model reply: the body of the
// first ```json fenced block if present, otherwise the first generic
// fenced block, otherwise the whole text.
func extractJSON(text string) string {
	for _, marker := range []string{"```json", "```"} {
		start := strings.Index(text, marker)
		if start < 0 {
			continue
		}
		rest := text[start+len(marker):]
		end := strings.Index(rest, "```")
		if end < 0 {
			return strings.TrimSpace(rest)
		}
		return strings.TrimSpace(rest[:end])
	}
	return strings.TrimSpace(text)
}

// ParseResponse parses a model reply into an EditDiff. Missing arrays
// default to empty and a missing explanation defaults to a generic
// message. Returns nil when the payload is not valid JSON; the caller
// is expected to synthesize a failed diff rather than throw.
func ParseResponse(text string) *EditDiff {
	payload := extractJSON(text)
	var diff EditDiff
	if err := json.Unmarshal([]byte(payload), &diff); err != nil {
		return nil
	}

	if diff.NodesToAdd == nil {
		diff.NodesToAdd = []NodeSpec{}
	}
	if diff.NodesToUpdate == nil {
		diff.NodesToUpdate = []NodeUpdate{}
	}
	if diff.NodesToDelete == nil {
		diff.NodesToDelete = []string{}
	}
	if diff.EdgesToAdd == nil {
		diff.EdgesToAdd = []EdgeSpec{}
	}
	if diff.EdgesToUpdate == nil {
		diff.EdgesToUpdate = []EdgeUpdate{}
	}
	if diff.EdgesToDelete == nil {
		diff.EdgesToDelete = []string{}
	}
	if diff.Explanation == "" {
		diff.Explanation = defaultExplanation
	}
	diff.Success = true
	diff.Error = ""
	return &diff
}

// ParseGeneration parses a model reply in from-scratch generation mode.
// Returns nil on invalid JSON or an empty node list.
func ParseGeneration(text string) *GeneratedDiagram {
	payload := extractJSON(text)
	var doc GeneratedDiagram
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil
	}
	if len(doc.Nodes) == 0 {
		return nil
	}
	if doc.Edges == nil {
		doc.Edges = []EdgeSpec{}
	}
	return &doc
}
