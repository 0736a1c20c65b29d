package cssenhance

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// nearColorDistance is the CIE-Lab distance under which a non-exact color
// is close enough to surface as an advisory.
const nearColorDistance = 0.02

// colorPass replaces literal hex/rgb colors with color token references.
// Only exact registry matches are auto-apply material; near colors become
// advisories, and inside pseudo-state blocks no heuristic substitution is
// attempted at all. A value matching several token names is ambiguous and
// surfaces as a single advisory.
type colorPass struct{}

func (colorPass) Name() string { return "color-tokenizer" }

func (colorPass) Apply(unit *SourceUnit, sheet *stylesheet, reg *Registry, _ *Context) []Candidate {
	var cands []Candidate

	for _, r := range sheet.rules {
		for _, d := range r.decls {
			if !tokenizable(d) {
				continue
			}
			cat, ok := propertyCategory(d.prop)
			if !ok || cat != CategoryColors {
				continue
			}
			hex, ok := normalizeColor(d.value)
			if !ok {
				// Compound values (background shorthands with images,
				// multiple borders) are out of scope for this pass.
				continue
			}

			if name, ok := reg.ExactMatch(CategoryColors, hex); ok {
				cands = append(cands, valueCandidate(unit, r, d, TypeColor, varRef(name), name, confExact, true))
				continue
			}

			if alts := reg.AmbiguousMatches(CategoryColors, hex); len(alts) > 0 {
				c := valueCandidate(unit, r, d, TypeColor, varRef(alts[0]), strings.Join(alts, ", "), confAmbiguous, false)
				c.Ambiguous = true
				c.Alternatives = alts
				cands = append(cands, c)
				continue
			}

			// Semantic-state colors get no approximate rewrites.
			if len(r.pseudoStates) > 0 {
				continue
			}
			if name, dist, ok := nearestColor(reg, hex); ok && dist <= nearColorDistance {
				cands = append(cands, valueCandidate(unit, r, d, TypeColor, varRef(name), name, confAdvise, false))
			}
		}
	}
	return cands
}

// nearestColor finds the perceptually closest color token by Lab distance.
func nearestColor(reg *Registry, hex string) (string, float64, bool) {
	target, err := colorful.Hex(hex)
	if err != nil {
		return "", 0, false
	}
	best, bestDist := "", -1.0
	for _, entry := range reg.colorEntries() {
		c, err := colorful.Hex(entry[0])
		if err != nil {
			continue
		}
		d := target.DistanceLab(c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = entry[1], d
		}
	}
	if best == "" {
		return "", 0, false
	}
	return best, bestDist, true
}
