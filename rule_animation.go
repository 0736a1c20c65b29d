package cssenhance

import "strings"

// animationPass maps duration literals onto the nearest duration token
// (5% tolerance) and easing functions onto exact-match easing tokens. In
// transition/animation shorthands, time components are rewritten only
// when every one of them resolves exactly; other components are left in
// place.
type animationPass struct{}

func (animationPass) Name() string { return "animation-token-mapper" }

func (animationPass) Apply(unit *SourceUnit, sheet *stylesheet, reg *Registry, _ *Context) []Candidate {
	var cands []Candidate

	for _, r := range sheet.rules {
		for _, d := range r.decls {
			if !tokenizable(d) {
				continue
			}
			switch d.prop {
			case "transition-duration", "animation-duration", "transition-delay", "animation-delay":
				if _, ok := parseDuration(d.value); !ok {
					continue
				}
				name, dist, ok := reg.nearest(CategoryAnimation, d.value, DefaultTolerance)
				if !ok {
					continue
				}
				conf, exact := confExact, true
				if dist > 0 {
					conf, exact = confLoose, false
				}
				cands = append(cands, valueCandidate(unit, r, d, TypeAnimation, varRef(name), name, conf, exact))

			case "transition-timing-function", "animation-timing-function":
				if name, ok := reg.ExactMatch(CategoryAnimation, d.value); ok {
					cands = append(cands, valueCandidate(unit, r, d, TypeAnimation, varRef(name), name, confExact, true))
				}

			case "transition", "animation":
				if c, ok := rewriteTimingShorthand(unit, r, d, reg); ok {
					cands = append(cands, c)
				}
			}
		}
	}
	return cands
}

// rewriteTimingShorthand substitutes exact duration and easing tokens
// inside a shorthand value.
func rewriteTimingShorthand(unit *SourceUnit, r *cssRule, d *decl, reg *Registry) (Candidate, bool) {
	comps := splitComponents(d.value)
	out := make([]string, len(comps))
	var names []string
	durations, resolved := 0, 0

	for i, comp := range comps {
		out[i] = comp
		if _, ok := parseDuration(comp); ok {
			durations++
			if name, dist, ok := reg.nearest(CategoryAnimation, comp, DefaultTolerance); ok && dist == 0 {
				out[i] = varRef(name)
				names = append(names, name)
				resolved++
			}
			continue
		}
		if name, ok := reg.ExactMatch(CategoryAnimation, comp); ok {
			out[i] = varRef(name)
			names = append(names, name)
		}
	}

	if len(names) == 0 || durations != resolved {
		return Candidate{}, false
	}
	c := valueCandidate(unit, r, d, TypeAnimation, strings.Join(out, " "), strings.Join(names, ", "), confNear, false)
	return c, true
}
