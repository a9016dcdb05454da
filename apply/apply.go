// Package apply turns a parsed edit diff into a new visual element
// list. All functions are pure transformations: the input list is
// never mutated, untouched elements are carried over as-is, and every
// changed element is a copy with a bumped version.
package apply

import (
	"inkling/core"
	"inkling/generate"
	"inkling/logger"
	"inkling/protocol"
	"inkling/selection"
)

// Engine applies edit diffs to element lists. It holds no state
// between calls beyond its logger.
type Engine struct {
	log *logger.Logger
}

// New creates an apply engine.
func New(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{log: log}
}

// txn is a copy-on-write view over an element list. Elements are
// cloned (and their version bumped) on first edit; untouched entries
// share the input's backing data.
type txn struct {
	els     []core.Element
	touched map[int]bool
}

func newTxn(elements []core.Element) *txn {
	els := make([]core.Element, len(elements))
	copy(els, elements)
	return &txn{els: els, touched: make(map[int]bool)}
}

// aliveIndex returns the index of the non-deleted element with the
// given id, or -1.
func (t *txn) aliveIndex(id string) int {
	for i := range t.els {
		if t.els[i].ID == id && !t.els[i].IsDeleted {
			return i
		}
	}
	return -1
}

// edit returns a mutable pointer to the element at index i, cloning it
// and bumping its version on first touch.
func (t *txn) edit(i int) *core.Element {
	if !t.touched[i] {
		t.els[i] = t.els[i].Clone()
		t.els[i].Version++
		t.touched[i] = true
	}
	return &t.els[i]
}

// add appends a freshly created element.
func (t *txn) add(el core.Element) {
	t.els = append(t.els, el)
	t.touched[len(t.els)-1] = true
}

// Apply executes a diff against the element list using the selection
// that produced it as the candidate pool and positional anchor.
// Reference-resolution misses skip the single item and processing
// continues; the function never fails.
func (e *Engine) Apply(diff *protocol.EditDiff, elements []core.Element, sel *selection.Context) []core.Element {
	candidates := selectionShapes(sel, elements)
	return e.run(diff, elements, sel, candidates)
}

// ApplyGlobal executes a diff with every non-deleted shape as a
// candidate, for flows that edit the whole diagram rather than a
// selection.
func (e *Engine) ApplyGlobal(diff *protocol.EditDiff, elements []core.Element) []core.Element {
	var candidates []string
	for _, el := range core.Shapes(elements) {
		candidates = append(candidates, el.ID)
	}
	return e.run(diff, elements, nil, candidates)
}

// selectionShapes lists the selected shape ids in original selection
// order.
func selectionShapes(sel *selection.Context, elements []core.Element) []string {
	if sel == nil {
		return nil
	}
	var ids []string
	for _, node := range sel.Nodes {
		if core.AliveByID(elements, node.ID) != nil {
			ids = append(ids, node.ID)
		}
	}
	return ids
}

// run is the shared application pipeline. Order matters: updates see
// the pre-delete list, deletes see applied updates, node adds anchor
// against the (possibly shrunk) selection bounds, and edge adds only
// run when no nodes were added in the same diff.
func (e *Engine) run(diff *protocol.EditDiff, elements []core.Element, sel *selection.Context, candidates []string) []core.Element {
	if diff == nil {
		return elements
	}
	t := newTxn(elements)
	p := newPool(candidates)

	e.applyNodeUpdates(t, p, diff.NodesToUpdate)
	e.applyNodeDeletes(t, p, diff.NodesToDelete, sel)
	e.applyNodeAdds(t, diff, sel)
	if len(diff.NodesToAdd) == 0 {
		e.applyEdgeAdds(t, p, diff.EdgesToAdd)
	}
	e.applyEdgeUpdates(t, diff.EdgesToUpdate)
	e.applyEdgeDeletes(t, diff.EdgesToDelete)

	return t.els
}

// applyNodeUpdates resolves each update's target and applies label and
// type changes. Targets resolve by exact id first, then uppercase
// letter placeholders positionally, then diff-array order; each match
// consumes its candidate.
func (e *Engine) applyNodeUpdates(t *txn, p *pool, updates []protocol.NodeUpdate) {
	for _, upd := range updates {
		idx := e.resolveUpdateTarget(t, p, upd.ID)
		if idx < 0 {
			e.log.Warn("update target %q could not be resolved, skipping", upd.ID)
			continue
		}
		e.applyNodeChanges(t, idx, upd.Changes)
	}
}

func (e *Engine) resolveUpdateTarget(t *txn, p *pool, id string) int {
	if idx := t.aliveIndex(id); idx >= 0 {
		p.claim(id)
		return idx
	}
	var cid string
	if isLetterPlaceholder(id) {
		cid = p.takeLetter(rune(id[0]))
	} else {
		cid = p.takeNext()
	}
	if cid == "" {
		return -1
	}
	return t.aliveIndex(cid)
}

// resolveDeleteTarget resolves a delete id to an element index. Unlike
// updates, deletes never fall back to the next unused candidate: a
// hallucinated id must not take out an unrelated shape. Only exact ids
// and positional letter placeholders resolve.
func (e *Engine) resolveDeleteTarget(t *txn, p *pool, id string) int {
	if idx := t.aliveIndex(id); idx >= 0 {
		p.claim(id)
		return idx
	}
	if isLetterPlaceholder(id) {
		if cid := p.at(int(id[0] - 'A')); cid != "" {
			p.claim(cid)
			return t.aliveIndex(cid)
		}
	}
	return -1
}

func (e *Engine) applyNodeChanges(t *txn, idx int, changes protocol.NodeChanges) {
	target := t.els[idx]

	if changes.Label != nil {
		if target.Kind == core.KindText {
			resizeLabel(t.edit(idx), *changes.Label)
		} else {
			e.relabelShape(t, idx, *changes.Label)
		}
	}

	if changes.Type != nil {
		kind, ok := legalKinds[*changes.Type]
		if ok && t.els[idx].Kind.IsShape() {
			el := t.edit(idx)
			el.Kind = kind
			if el.CustomData != nil {
				el.CustomData["nodeType"] = *changes.Type
			}
		}
		// Remaps outside the table are silently ignored.
	}
}

// relabelShape updates the text bound to a shape, growing the shape
// about its center when the new label needs more room. When no label
// is bound by any convention, a fresh container-bound one is created.
func (e *Engine) relabelShape(t *txn, idx int, text string) {
	shape := &t.els[idx]
	label := core.BoundLabel(shape, t.els)
	if label == nil {
		e.log.Debug("shape %s has no bound label, creating one", shape.ID)
		e.createLabel(t, idx, text)
		return
	}

	li := t.aliveIndex(label.ID)
	if li < 0 {
		return
	}
	resizeLabel(t.edit(li), text)

	w, h := EstimateTextSize(text, t.els[li].FontSize)
	if t.els[idx].Width < w+containerPad || t.els[idx].Height < h+containerPad {
		growContainer(t.edit(idx), w, h)
	}
	if t.els[idx].CustomData != nil {
		t.edit(idx).CustomData["label"] = text
	}
}

// createLabel synthesizes a container-bound text element centered on
// the shape.
func (e *Engine) createLabel(t *txn, idx int, text string) {
	w, h := EstimateTextSize(text, generate.DefaultFontSize)
	textID := core.NewID("text")
	shape := t.edit(idx)
	shape.BoundElements = append(shape.BoundElements, core.BoundRef{ID: textID, Type: "text"})
	cx, cy := shape.CenterX(), shape.CenterY()
	groups := append([]string(nil), shape.GroupIDs...)
	t.add(core.Element{
		ID:           textID,
		Kind:         core.KindText,
		X:            cx - w/2,
		Y:            cy - h/2,
		Width:        w,
		Height:       h,
		GroupIDs:     groups,
		Version:      1,
		Text:         text,
		OriginalText: text,
		ContainerID:  t.els[idx].ID,
		FontSize:     generate.DefaultFontSize,
		FontFamily:   generate.DefaultFont,
	})
	// The append above may have moved the backing array; re-fetch.
	growContainer(t.edit(idx), w, h)
}

// applyNodeDeletes removes elements. In selection mode the delete set
// is the selection itself; the ids in the diff are informational. In
// global mode (no selection) each id resolves by exact id or letter
// placeholder only; misses are skipped. Bound arrows and labels
// cascade.
func (e *Engine) applyNodeDeletes(t *txn, p *pool, ids []string, sel *selection.Context) {
	if len(ids) == 0 {
		return
	}

	removed := make(map[string]bool)
	if sel != nil && len(sel.ElementIDs) > 0 {
		for _, id := range sel.ElementIDs {
			removed[id] = true
		}
	} else {
		for _, id := range ids {
			idx := e.resolveDeleteTarget(t, p, id)
			if idx < 0 {
				e.log.Warn("delete target %q could not be resolved, skipping", id)
				continue
			}
			removed[t.els[idx].ID] = true
		}
	}
	if len(removed) == 0 {
		return
	}
	e.cascadeDelete(t, removed)
}

// cascadeDelete soft-deletes the given elements plus every arrow bound
// to them and every label bound to anything removed, then strips stale
// boundElements references from survivors.
func (e *Engine) cascadeDelete(t *txn, removed map[string]bool) {
	// Arrows whose endpoints land in the removed set go too.
	for i := range t.els {
		el := &t.els[i]
		if el.IsDeleted || el.Kind != core.KindArrow || removed[el.ID] {
			continue
		}
		if el.StartBinding != nil && removed[el.StartBinding.ElementID] {
			removed[el.ID] = true
		} else if el.EndBinding != nil && removed[el.EndBinding.ElementID] {
			removed[el.ID] = true
		}
	}

	// Labels of every removed shape or arrow, by any binding
	// convention.
	labels := make(map[string]bool)
	for i := range t.els {
		el := &t.els[i]
		if el.IsDeleted || !removed[el.ID] || el.Kind == core.KindText {
			continue
		}
		if label := core.BoundLabel(el, t.els); label != nil {
			labels[label.ID] = true
		}
	}
	for id := range labels {
		removed[id] = true
	}

	for i := range t.els {
		if removed[t.els[i].ID] && !t.els[i].IsDeleted {
			t.edit(i).IsDeleted = true
		}
	}

	// Survivors must not keep back-references to removed elements.
	for i := range t.els {
		el := &t.els[i]
		if el.IsDeleted {
			continue
		}
		stale := false
		for _, ref := range el.BoundElements {
			if removed[ref.ID] {
				stale = true
				break
			}
		}
		if !stale {
			continue
		}
		edited := t.edit(i)
		kept := edited.BoundElements[:0]
		for _, ref := range edited.BoundElements {
			if !removed[ref.ID] {
				kept = append(kept, ref)
			}
		}
		edited.BoundElements = kept
	}
}

// applyNodeAdds delegates to the generator and translates the result
// to sit below the selection bounds. With no edges in the diff, new
// nodes are chained sequentially and attached to the anchor shape.
func (e *Engine) applyNodeAdds(t *txn, diff *protocol.EditDiff, sel *selection.Context) {
	if len(diff.NodesToAdd) == 0 {
		return
	}

	newIDs := make(map[string]bool, len(diff.NodesToAdd))
	for _, spec := range diff.NodesToAdd {
		newIDs[spec.ID] = true
	}

	doc := &protocol.GeneratedDiagram{Nodes: diff.NodesToAdd}
	for _, edge := range diff.EdgesToAdd {
		if newIDs[edge.Source] && newIDs[edge.Target] {
			doc.Edges = append(doc.Edges, edge)
		}
	}
	autoChain := len(diff.EdgesToAdd) == 0
	if autoChain && len(diff.NodesToAdd) > 1 {
		for i := 0; i < len(diff.NodesToAdd)-1; i++ {
			doc.Edges = append(doc.Edges, protocol.EdgeSpec{
				Source: diff.NodesToAdd[i].ID,
				Target: diff.NodesToAdd[i+1].ID,
			})
		}
	}

	res := generate.Diagram(doc, anchorModule(t, sel), e.log)

	// Translate the grid-laid elements so they start below the anchor
	// bounds, or at the page default when nothing was selected.
	var dx, dy float64
	if sel != nil && sel.Bounds != nil {
		dx = sel.Bounds.MinX - generate.StartX
		dy = sel.Bounds.MaxY + generate.VSpacing - generate.StartY
	}
	base := len(t.els)
	for _, el := range res.Elements {
		el.X += dx
		el.Y += dy
		t.add(el)
	}

	if autoChain && sel != nil {
		e.attachToAnchor(t, sel, base, diff.NodesToAdd[0].ID)
	}
}

// anchorModule recovers the module id from the anchor shape, so added
// nodes stay in the same logical module as the selection.
func anchorModule(t *txn, sel *selection.Context) string {
	if sel == nil {
		return ""
	}
	idx := t.aliveIndex(sel.AnchorShapeID())
	if idx < 0 || t.els[idx].CustomData == nil {
		return ""
	}
	if m, ok := t.els[idx].CustomData["moduleId"].(string); ok {
		return m
	}
	return ""
}

// attachToAnchor synthesizes one arrow from the selection's anchor
// shape to the first newly added node.
func (e *Engine) attachToAnchor(t *txn, sel *selection.Context, base int, firstNodeID string) {
	anchorIdx := t.aliveIndex(sel.AnchorShapeID())
	if anchorIdx < 0 {
		return
	}
	targetIdx := -1
	for i := base; i < len(t.els); i++ {
		if t.els[i].Kind.IsShape() && t.els[i].NodeID() == firstNodeID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return
	}
	t.edit(anchorIdx)
	arrows := generate.Connect(&t.els[anchorIdx], &t.els[targetIdx], "")
	for _, el := range arrows {
		t.add(el)
	}
}

// applyEdgeAdds creates arrows between existing elements. Both
// endpoints must resolve and be present; otherwise the edge is skipped
// silently. Created arrows register in both endpoints' boundElements.
func (e *Engine) applyEdgeAdds(t *txn, p *pool, edges []protocol.EdgeSpec) {
	for _, spec := range edges {
		srcID := resolveEndpoint(spec.Source, p, t.els)
		tgtID := resolveEndpoint(spec.Target, p, t.els)
		if srcID == "" || tgtID == "" {
			e.log.Warn("skipping edge %s -> %s: endpoint not resolved", spec.Source, spec.Target)
			continue
		}
		si := t.aliveIndex(srcID)
		ti := t.aliveIndex(tgtID)
		if si < 0 || ti < 0 || si == ti {
			e.log.Warn("skipping edge %s -> %s: endpoint missing", spec.Source, spec.Target)
			continue
		}
		t.edit(si)
		t.edit(ti)
		for _, el := range generate.Connect(&t.els[si], &t.els[ti], spec.Label) {
			t.add(el)
		}
	}
}

// applyEdgeUpdates relabels arrows, reusing the same multi-strategy
// label lookup as shapes.
func (e *Engine) applyEdgeUpdates(t *txn, updates []protocol.EdgeUpdate) {
	for _, upd := range updates {
		idx := t.aliveIndex(upd.ID)
		if idx < 0 || !t.els[idx].Kind.IsLinear() {
			e.log.Warn("edge update target %q could not be resolved, skipping", upd.ID)
			continue
		}
		if upd.Changes.Label == nil {
			continue
		}
		if label := core.BoundLabel(&t.els[idx], t.els); label != nil {
			if li := t.aliveIndex(label.ID); li >= 0 {
				resizeLabel(t.edit(li), *upd.Changes.Label)
			}
			continue
		}
		e.createEdgeLabel(t, idx, *upd.Changes.Label)
	}
}

// createEdgeLabel synthesizes a label text at the arrow's midpoint.
func (e *Engine) createEdgeLabel(t *txn, idx int, text string) {
	arrow := t.edit(idx)
	textID := core.NewID("text")
	arrow.BoundElements = append(arrow.BoundElements, core.BoundRef{ID: textID, Type: "text"})
	fontSize := generate.DefaultFontSize * 0.8
	w, h := EstimateTextSize(text, fontSize)
	t.add(core.Element{
		ID:           textID,
		Kind:         core.KindText,
		X:            arrow.CenterX() - w/2,
		Y:            arrow.CenterY() - h/2,
		Width:        w,
		Height:       h,
		Version:      1,
		Text:         text,
		OriginalText: text,
		ContainerID:  arrow.ID,
		FontSize:     fontSize,
		FontFamily:   generate.DefaultFont,
	})
}

// applyEdgeDeletes removes arrows by id, cascading to their labels and
// stripping endpoint back-references.
func (e *Engine) applyEdgeDeletes(t *txn, ids []string) {
	removed := make(map[string]bool)
	for _, id := range ids {
		idx := t.aliveIndex(id)
		if idx < 0 || !t.els[idx].Kind.IsLinear() {
			e.log.Warn("edge delete target %q could not be resolved, skipping", id)
			continue
		}
		removed[id] = true
	}
	if len(removed) > 0 {
		e.cascadeDelete(t, removed)
	}
}
