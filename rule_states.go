package cssenhance

import (
	"fmt"
	"strings"
)

// statePass generates interaction-state suggestions. Literal values
// inside pseudo-state blocks are covered by the other passes (with their
// exact-only discipline for colors); this pass proposes missing state
// blocks: when a base rule uses a color token that has a state-suffixed
// sibling (token-hover, token-focus, ...) and no corresponding state rule
// exists yet, an advisory insertion candidate is produced. Insertions are
// advisory by construction: the engine never invents styling above the
// advisory bucket.
type statePass struct{}

func (statePass) Name() string { return "state-variation-generator" }

var stateSuffixes = []struct{ state, suffix string }{
	{":hover", "-hover"},
	{":focus", "-focus"},
	{":active", "-active"},
}

func (statePass) Apply(unit *SourceUnit, sheet *stylesheet, reg *Registry, _ *Context) []Candidate {
	var cands []Candidate
	seen := make(map[string]bool)

	for _, r := range sheet.rules {
		if len(r.pseudoStates) > 0 || r.selector == "" {
			continue
		}
		for _, d := range r.decls {
			cat, ok := propertyCategory(d.prop)
			if !ok || cat != CategoryColors {
				continue
			}
			base := tokenNameFor(reg, d.value)
			if base == "" {
				continue
			}
			for _, sv := range stateSuffixes {
				state, suffix := sv.state, sv.suffix
				variant := base + suffix
				if !reg.hasToken(variant) || hasStateRule(sheet, r.selector, state) || seen[r.selector+state] {
					continue
				}
				seen[r.selector+state] = true
				block := fmt.Sprintf("\n%s%s { %s: %s; }", r.selector, state, d.prop, varRef(variant))
				cands = append(cands, Candidate{
					Type:       TypeStateVariation,
					Location:   locationAt(unit, r.bodyEnd),
					Before:     "",
					After:      block,
					Confidence: confAdvise,
					BasedOn:    variant,
					start:      r.bodyEnd + 1,
					end:        r.bodyEnd + 1,
					property:   d.prop,
				})
			}
		}
	}
	return cands
}

// tokenNameFor resolves a declaration value to a color token name,
// whether it is already a var reference or an exact literal.
func tokenNameFor(reg *Registry, value string) string {
	if name, ok := varTokenName(value); ok {
		if _, exists := reg.ValueOf(CategoryColors, name); exists {
			return name
		}
		return ""
	}
	if hex, ok := normalizeColor(value); ok {
		if name, ok := reg.ExactMatch(CategoryColors, hex); ok {
			return name
		}
	}
	return ""
}

func hasStateRule(sheet *stylesheet, selector, state string) bool {
	want := selector + state
	for _, r := range sheet.rules {
		if strings.HasPrefix(r.selector, want) {
			return true
		}
	}
	return false
}
