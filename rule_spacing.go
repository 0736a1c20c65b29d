package cssenhance

import "strings"

// spacingPass converts px/rem spacing values to the nearest spacing token
// within the tolerance. Only one- and two-component shorthands are
// handled; three or more components are left untouched, and if any single
// component fails to resolve the whole declaration is skipped; there are
// no partial rewrites.
type spacingPass struct{}

func (spacingPass) Name() string { return "spacing-normalizer" }

func (spacingPass) Apply(unit *SourceUnit, sheet *stylesheet, reg *Registry, _ *Context) []Candidate {
	var cands []Candidate

	for _, r := range sheet.rules {
		for _, d := range r.decls {
			if !tokenizable(d) {
				continue
			}
			cat, ok := propertyCategory(d.prop)
			if !ok || cat != CategorySpacing {
				continue
			}
			if c, ok := resolveScaleShorthand(unit, r, d, reg, CategorySpacing, TypeSpacing, 2); ok {
				cands = append(cands, c)
			}
		}
	}
	return cands
}

// resolveScaleShorthand maps every component of a 1..maxComponents value
// onto the category scale, all or nothing.
func resolveScaleShorthand(unit *SourceUnit, r *cssRule, d *decl, reg *Registry, category, typ string, maxComponents int) (Candidate, bool) {
	comps := splitComponents(d.value)
	if len(comps) == 0 || len(comps) > maxComponents {
		return Candidate{}, false
	}

	refs := make([]string, 0, len(comps))
	names := make([]string, 0, len(comps))
	worst := 0.0
	for _, comp := range comps {
		if _, ok := parseLength(comp); !ok {
			return Candidate{}, false
		}
		name, dist, ok := reg.nearest(category, comp, DefaultTolerance)
		if !ok {
			return Candidate{}, false
		}
		refs = append(refs, varRef(name))
		names = append(names, name)
		if dist > worst {
			worst = dist
		}
	}

	conf, exact := confExact, true
	switch {
	case worst == 0:
	case worst <= 0.02:
		conf, exact = confNear, false
	default:
		conf, exact = confLoose, false
	}

	c := valueCandidate(unit, r, d, typ, strings.Join(refs, " "), strings.Join(names, ", "), conf, exact)
	return c, true
}
