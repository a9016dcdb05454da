// Package editor orchestrates the edit loop: selection context in,
// prompt out, model reply parsed and applied back onto the scene.
package editor

import (
	"context"
	"fmt"
	"sync"

	"inkling/apply"
	"inkling/compress"
	"inkling/core"
	"inkling/generate"
	"inkling/llm"
	"inkling/logger"
	"inkling/protocol"
	"inkling/scene"
	"inkling/selection"
)

// Session drives AI edits against one scene. Edits are serialized: a
// second request started before the first completes waits and then
// operates on the list that already reflects the first diff. Transport
// and parse failures never escape as errors; they surface as failed
// diffs.
type Session struct {
	mu      sync.Mutex
	scene   scene.Scene
	client  llm.Client
	engine  *apply.Engine
	history *History
	log     *logger.Logger

	// UseCompression adds a compact whole-diagram overview to edit
	// prompts and expands the model's short ids back before applying.
	UseCompression bool
}

// NewSession creates an edit session over a scene.
func NewSession(sc scene.Scene, client llm.Client, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Discard()
	}
	return &Session{
		scene:   sc,
		client:  client,
		engine:  apply.New(log),
		history: NewHistory(0),
		log:     log,
	}
}

// History exposes the bounded diff history.
func (s *Session) History() *History {
	return s.history
}

// Edit runs one incremental edit: the instruction is applied to the
// elements identified by selectedIDs. An empty selection edits the
// whole diagram.
func (s *Session) Edit(ctx context.Context, instruction string, selectedIDs []string) *protocol.EditDiff {
	return s.edit(ctx, instruction, selectedIDs, nil)
}

// EditStream is Edit with streaming progress: text fragments from the
// model are delivered to onToken as they arrive. Token delivery is
// best-effort; correctness never depends on receiving every token.
func (s *Session) EditStream(ctx context.Context, instruction string, selectedIDs []string, onToken llm.TokenFunc) *protocol.EditDiff {
	return s.edit(ctx, instruction, selectedIDs, onToken)
}

func (s *Session) edit(ctx context.Context, instruction string, selectedIDs []string, onToken llm.TokenFunc) *protocol.EditDiff {
	s.mu.Lock()
	defer s.mu.Unlock()

	elements := s.scene.GetElements()
	global := len(selectedIDs) == 0
	if global {
		for _, el := range core.Shapes(elements) {
			selectedIDs = append(selectedIDs, el.ID)
		}
	}
	sel := selection.Build(selectedIDs, elements)

	prompt := protocol.BuildPrompt(sel, instruction)
	var comp *compress.Compressed
	if s.UseCompression {
		comp = compressContext(sel)
		prompt = fmt.Sprintf("%s\nDiagram overview: %s\n", prompt, comp.Text)
	}

	resp, err := s.complete(ctx, protocol.EditSystemPrompt, prompt, onToken)
	if err != nil {
		s.log.Error("edit request failed: %v", err)
		return protocol.Failed(fmt.Sprintf("the model request failed: %v", err))
	}
	s.log.Tokens(resp.InputTokens, resp.OutputTokens)

	diff := protocol.ParseResponse(resp.Content)
	if diff == nil {
		s.log.Warn("could not parse model response (%d bytes)", len(resp.Content))
		return protocol.Failed("could not parse the model response")
	}
	if comp != nil {
		expandDiffIDs(diff, comp)
	}

	// In global mode deletes resolve per id; in selection mode the
	// selection itself is the delete set.
	var result []core.Element
	if global {
		result = s.engine.ApplyGlobal(diff, elements)
	} else {
		result = s.engine.Apply(diff, elements, sel)
	}
	s.scene.UpdateScene(result)
	if err := s.history.Record(diff, elements); err != nil {
		s.log.Warn("failed to record history entry: %v", err)
	}
	return diff
}

// Generate replaces the scene with a diagram generated from a
// free-text description.
func (s *Session) Generate(ctx context.Context, description string) *protocol.EditDiff {
	s.mu.Lock()
	defer s.mu.Unlock()

	prompt := protocol.BuildGeneratePrompt(description)
	resp, err := s.complete(ctx, protocol.GenerateSystemPrompt, prompt, nil)
	if err != nil {
		s.log.Error("generate request failed: %v", err)
		return protocol.Failed(fmt.Sprintf("the model request failed: %v", err))
	}
	s.log.Tokens(resp.InputTokens, resp.OutputTokens)

	doc := protocol.ParseGeneration(resp.Content)
	if doc == nil {
		return protocol.Failed("could not parse the model response")
	}

	before := s.scene.GetElements()
	res := generate.Diagram(doc, "", s.log)
	s.scene.UpdateScene(res.Elements)

	diff := &protocol.EditDiff{
		Explanation: fmt.Sprintf("generated %d nodes and %d edges", len(res.ShadowNodes), len(res.ShadowEdges)),
		NodesToAdd:  doc.Nodes,
		EdgesToAdd:  doc.Edges,
		Success:     true,
	}
	if err := s.history.Record(diff, before); err != nil {
		s.log.Warn("failed to record history entry: %v", err)
	}
	return diff
}

// Undo restores the scene to the snapshot taken before the most
// recent diff. Reports whether anything was undone.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elements, err := s.history.Pop()
	if err != nil {
		s.log.Error("undo failed: %v", err)
		return false
	}
	if elements == nil {
		return false
	}
	s.scene.UpdateScene(elements)
	return true
}

func (s *Session) complete(ctx context.Context, system, prompt string, onToken llm.TokenFunc) (*llm.Response, error) {
	messages := []llm.Message{{Role: "user", Content: prompt}}
	if onToken != nil {
		return s.client.Stream(ctx, system, messages, onToken)
	}
	return s.client.Complete(ctx, system, messages)
}

// compressContext renders the selection's logical view in the short
// symbolic notation.
func compressContext(sel *selection.Context) *compress.Compressed {
	nodes := make([]compress.Node, len(sel.Nodes))
	for i, n := range sel.Nodes {
		nodes[i] = compress.Node{ID: n.ID, Type: n.Type, Label: n.Label}
	}
	edges := make([]compress.Edge, len(sel.RelatedEdges))
	for i, e := range sel.RelatedEdges {
		edges[i] = compress.Edge{SourceNodeID: e.SourceNodeID, TargetNodeID: e.TargetNodeID, Label: e.Label}
	}
	return compress.Compress(nodes, edges)
}

// expandDiffIDs maps short ids in the diff back to real element ids.
// Ids the compressor never assigned pass through for the engine's own
// placeholder resolution.
func expandDiffIDs(diff *protocol.EditDiff, comp *compress.Compressed) {
	for i := range diff.NodesToUpdate {
		diff.NodesToUpdate[i].ID = comp.Expand(diff.NodesToUpdate[i].ID)
	}
	for i := range diff.NodesToDelete {
		diff.NodesToDelete[i] = comp.Expand(diff.NodesToDelete[i])
	}
	for i := range diff.EdgesToAdd {
		diff.EdgesToAdd[i].Source = comp.Expand(diff.EdgesToAdd[i].Source)
		diff.EdgesToAdd[i].Target = comp.Expand(diff.EdgesToAdd[i].Target)
	}
	for i := range diff.EdgesToUpdate {
		diff.EdgesToUpdate[i].ID = comp.Expand(diff.EdgesToUpdate[i].ID)
	}
	for i := range diff.EdgesToDelete {
		diff.EdgesToDelete[i] = comp.Expand(diff.EdgesToDelete[i])
	}
}
