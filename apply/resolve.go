package apply

import (
	"strconv"
	"strings"

	"inkling/core"
)

// isLetterPlaceholder reports whether the model referenced a node by a
// single uppercase letter instead of a real id.
func isLetterPlaceholder(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}

// pool tracks candidate shapes for positional placeholder resolution.
// Each successful match consumes its candidate so no two diff entries
// bind to the same shape.
type pool struct {
	ids  []string
	used []bool
}

func newPool(ids []string) *pool {
	return &pool{ids: ids, used: make([]bool, len(ids))}
}

// claim marks the candidate with the given id as used, if present.
func (p *pool) claim(id string) {
	for i, cid := range p.ids {
		if cid == id {
			p.used[i] = true
			return
		}
	}
}

// takeLetter resolves an uppercase-letter placeholder to the candidate
// at its alphabetical position in the original list, falling back to
// the first unused candidate when that position is taken or out of
// range. Returns "" when the pool is exhausted.
func (p *pool) takeLetter(r rune) string {
	idx := int(r - 'A')
	if idx >= 0 && idx < len(p.ids) && !p.used[idx] {
		p.used[idx] = true
		return p.ids[idx]
	}
	return p.takeNext()
}

// takeNext consumes the first unused candidate, or returns "".
func (p *pool) takeNext() string {
	for i := range p.ids {
		if !p.used[i] {
			p.used[i] = true
			return p.ids[i]
		}
	}
	return ""
}

// at returns the candidate at a positional index without consuming it.
// Edge endpoints resolve positionally but do not claim candidates:
// several edges may legitimately reference the same shape.
func (p *pool) at(idx int) string {
	if idx < 0 || idx >= len(p.ids) {
		return ""
	}
	return p.ids[idx]
}

// resolveEndpoint maps an edge endpoint reference to an element id.
// It tries, in order: "selected-N" and "selected" tokens, a single
// uppercase letter as a positional index, "node-N" numeric indexing,
// a literal element id, and finally a logical node id stashed in
// customData. Returns "" when nothing matches.
func resolveEndpoint(token string, candidates *pool, elements []core.Element) string {
	if n, ok := strings.CutPrefix(token, "selected-"); ok {
		if idx, err := strconv.Atoi(n); err == nil {
			return candidates.at(idx)
		}
		return ""
	}
	if token == "selected" {
		return candidates.at(0)
	}
	if isLetterPlaceholder(token) {
		return candidates.at(int(token[0] - 'A'))
	}
	if n, ok := strings.CutPrefix(token, "node-"); ok {
		if idx, err := strconv.Atoi(n); err == nil {
			return candidates.at(idx)
		}
		return ""
	}
	if el := core.AliveByID(elements, token); el != nil {
		return el.ID
	}
	for i := range elements {
		if !elements[i].IsDeleted && elements[i].NodeID() == token {
			return elements[i].ID
		}
	}
	return ""
}

// legalKinds is the type remap table for node type changes. Targets
// outside this table, or mappings to non-shape kinds, are ignored.
var legalKinds = map[string]core.Kind{
	"process":   core.KindRectangle,
	"decision":  core.KindDiamond,
	"start":     core.KindEllipse,
	"end":       core.KindEllipse,
	"data":      core.KindRectangle,
	"rectangle": core.KindRectangle,
	"ellipse":   core.KindEllipse,
	"diamond":   core.KindDiamond,
}
