package cssenhance

// radiusPass normalizes border-radius onto the radius scale with the same
// nearest-token strategy as spacing, and matches box-shadow values against
// elevation tokens by exact string only; composite shadow syntax is too
// fragile to approximate.
type radiusPass struct{}

func (radiusPass) Name() string { return "radius-elevation-normalizer" }

func (radiusPass) Apply(unit *SourceUnit, sheet *stylesheet, reg *Registry, _ *Context) []Candidate {
	var cands []Candidate

	for _, r := range sheet.rules {
		for _, d := range r.decls {
			if !tokenizable(d) {
				continue
			}
			cat, ok := propertyCategory(d.prop)
			if !ok {
				continue
			}
			switch cat {
			case CategoryRadii:
				if c, ok := resolveScaleShorthand(unit, r, d, reg, CategoryRadii, TypeRadius, 2); ok {
					cands = append(cands, c)
				}
			case CategoryElevation:
				if name, ok := reg.ExactMatch(CategoryElevation, d.value); ok {
					cands = append(cands, valueCandidate(unit, r, d, TypeElevation, varRef(name), name, confExact, true))
				} else if alts := reg.AmbiguousMatches(CategoryElevation, d.value); len(alts) > 0 {
					c := valueCandidate(unit, r, d, TypeElevation, varRef(alts[0]), alts[0], confAmbiguous, false)
					c.Ambiguous = true
					c.Alternatives = alts
					cands = append(cands, c)
				}
			}
		}
	}
	return cands
}
