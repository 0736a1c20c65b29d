package cssenhance

import "fmt"

// typographyPass fits font-size literals onto the nearest type scale
// step. When sibling components of the same type already use the chosen
// token, the candidate records patternMatch metadata supporting the
// choice.
type typographyPass struct{}

func (typographyPass) Name() string { return "typography-scale-fitter" }

func (typographyPass) Apply(unit *SourceUnit, sheet *stylesheet, reg *Registry, pctx *Context) []Candidate {
	var cands []Candidate

	for _, r := range sheet.rules {
		for _, d := range r.decls {
			if !tokenizable(d) || d.prop != "font-size" {
				continue
			}
			if _, ok := parseLength(d.value); !ok {
				continue
			}
			name, dist, ok := reg.nearest(CategoryTypography, d.value, DefaultTolerance)
			if !ok {
				continue
			}

			conf, exact := confExact, true
			if dist > 0 {
				conf, exact = confLoose, false
			}
			c := valueCandidate(unit, r, d, TypeTypography, varRef(name), name, conf, exact)

			if n := pctx.usageCount(name); n > 0 {
				c.PatternMatch = fmt.Sprintf("%s used %d times by sibling %s components", name, n, pctx.ComponentType)
			}
			cands = append(cands, c)
		}
	}
	return cands
}
