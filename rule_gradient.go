package cssenhance

import "strings"

// gradientPass normalizes gradient stop sets: color literals inside
// linear-/radial-gradient() are replaced with color token references.
// When the full stop set resolves exactly the candidate is auto-apply
// material; a partially matching stop set is advisory; an ambiguous stop
// makes the whole candidate ambiguous.
type gradientPass struct{}

func (gradientPass) Name() string { return "gradient-normalizer" }

func (gradientPass) Apply(unit *SourceUnit, sheet *stylesheet, reg *Registry, _ *Context) []Candidate {
	var cands []Candidate

	for _, r := range sheet.rules {
		for _, d := range r.decls {
			if !tokenizable(d) || !gradientProperties[d.prop] {
				continue
			}
			v := strings.TrimSpace(d.value)
			if !strings.HasPrefix(v, "linear-gradient(") && !strings.HasPrefix(v, "radial-gradient(") {
				continue
			}
			if c, ok := rewriteGradient(unit, r, d, reg); ok {
				cands = append(cands, c)
			}
		}
	}
	return cands
}

func rewriteGradient(unit *SourceUnit, r *cssRule, d *decl, reg *Registry) (Candidate, bool) {
	open := strings.Index(d.value, "(")
	if open < 0 || !strings.HasSuffix(d.value, ")") {
		return Candidate{}, false
	}
	head := d.value[:open+1]
	args := splitArgs(d.value[open+1 : len(d.value)-1])

	var names []string
	ambiguous := false
	colors, matched := 0, 0

	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = arg
		// A stop is "<color> [position]"; only the color part is mapped.
		comps := splitComponents(strings.TrimSpace(arg))
		if len(comps) == 0 {
			continue
		}
		hex, ok := normalizeColor(comps[0])
		if !ok {
			continue
		}
		colors++
		if name, ok := reg.ExactMatch(CategoryColors, hex); ok {
			comps[0] = varRef(name)
			out[i] = strings.Join(comps, " ")
			names = append(names, name)
			matched++
			continue
		}
		if alts := reg.AmbiguousMatches(CategoryColors, hex); len(alts) > 0 {
			ambiguous = true
		}
	}

	if matched == 0 || colors == 0 {
		return Candidate{}, false
	}

	after := head + strings.Join(out, ", ") + ")"
	conf, exact := confNear, true
	if matched < colors {
		conf, exact = confAdvise, false
	}
	c := valueCandidate(unit, r, d, TypeGradient, after, strings.Join(names, ", "), conf, exact)
	if ambiguous {
		c.Ambiguous = true
		c.Confidence = confAmbiguous
		c.exact = false
	}
	return c, true
}

// splitArgs splits a gradient argument list on top-level commas.
func splitArgs(s string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
			current.WriteRune(r)
		case r == ')':
			depth--
			current.WriteRune(r)
		case r == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}
