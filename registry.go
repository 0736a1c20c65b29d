package cssenhance

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Token registry categories.
const (
	CategoryColors     = "colors"
	CategorySpacing    = "spacing"
	CategoryRadii      = "radii"
	CategoryElevation  = "elevation"
	CategoryTypography = "typography"
	CategoryAnimation  = "animation"
)

// DefaultTolerance is the relative distance allowed by nearest-match
// lookups (5%).
const DefaultTolerance = 0.05

// TokenSet is the raw brand-pack token export: category → token name →
// literal CSS value.
type TokenSet map[string]map[string]string

// RegistryError reports a token set that cannot be loaded.
type RegistryError struct {
	Category string
	Token    string
	Reason   string
}

func (e *RegistryError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("registry: category %q token %q: %s", e.Category, e.Token, e.Reason)
	}
	return fmt.Sprintf("registry: category %q: %s", e.Category, e.Reason)
}

// scaleEntry is one numeric token in a tolerance-searchable table.
// Base is pixels for length categories and milliseconds for durations.
type scaleEntry struct {
	base float64
	name string
	raw  string
}

type regCategory struct {
	exact     map[string]string   // normalized value → token name
	ambiguous map[string][]string // normalized value → ≥2 token names
	values    map[string]string   // token name → raw value
	scale     []scaleEntry
}

// Registry is the normalized, fast-lookup form of a brand's design
// tokens. Registries are immutable after load.
type Registry struct {
	Version string
	cats    map[string]*regCategory
}

// LoadRegistry normalizes a token set into lookup structures. Within a
// category, two distinct token names mapping to the same normalized value
// make that value ambiguous: it is excluded from exact-match lookup but
// stays eligible for tolerance search. Empty names, empty values, and a
// name reused across categories are rejected with a RegistryError: token
// names share the one flat var(--name) namespace.
func LoadRegistry(ts TokenSet, version string) (*Registry, error) {
	reg := &Registry{Version: version, cats: make(map[string]*regCategory, len(ts))}
	seenNames := make(map[string]string)

	categories := make([]string, 0, len(ts))
	for cat := range ts {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		rc := &regCategory{
			exact:     make(map[string]string),
			ambiguous: make(map[string][]string),
			values:    make(map[string]string),
		}

		names := make([]string, 0, len(ts[cat]))
		for name := range ts[cat] {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			raw := ts[cat][name]
			if strings.TrimSpace(name) == "" {
				return nil, &RegistryError{Category: cat, Reason: "empty token name"}
			}
			if strings.TrimSpace(raw) == "" {
				return nil, &RegistryError{Category: cat, Token: name, Reason: "empty value"}
			}
			if prev, ok := seenNames[name]; ok {
				return nil, &RegistryError{Category: cat, Token: name, Reason: "name already defined in category " + prev}
			}
			seenNames[name] = cat

			rc.values[name] = raw
			norm := normalizeTokenValue(cat, raw)

			switch {
			case len(rc.ambiguous[norm]) > 0:
				rc.ambiguous[norm] = append(rc.ambiguous[norm], name)
			case rc.exact[norm] != "":
				// Second name for the same value: demote to ambiguous.
				rc.ambiguous[norm] = []string{rc.exact[norm], name}
				delete(rc.exact, norm)
			default:
				rc.exact[norm] = name
			}

			if base, ok := baseValue(cat, raw); ok {
				rc.scale = append(rc.scale, scaleEntry{base: base, name: name, raw: raw})
			}
		}

		sort.Slice(rc.scale, func(i, j int) bool {
			if rc.scale[i].base != rc.scale[j].base {
				return rc.scale[i].base < rc.scale[j].base
			}
			return rc.scale[i].name < rc.scale[j].name
		})

		reg.cats[cat] = rc
	}

	return reg, nil
}

// ExactMatch returns the token name for a literal value, or false when the
// value is unknown or ambiguous.
func (r *Registry) ExactMatch(category, value string) (string, bool) {
	rc := r.cats[category]
	if rc == nil {
		return "", false
	}
	name, ok := rc.exact[normalizeTokenValue(category, value)]
	return name, ok
}

// AmbiguousMatches returns every token name sharing the given value, or
// nil when the value matches at most one token.
func (r *Registry) AmbiguousMatches(category, value string) []string {
	rc := r.cats[category]
	if rc == nil {
		return nil
	}
	return rc.ambiguous[normalizeTokenValue(category, value)]
}

// NearestMatch converts the value to a common base unit (pixels, with
// rem = 16px; milliseconds for durations) and returns the closest token
// within the relative tolerance.
func (r *Registry) NearestMatch(category, value string, tolerance float64) (string, bool) {
	name, _, ok := r.nearest(category, value, tolerance)
	return name, ok
}

// nearest also reports the relative distance of the winning token.
func (r *Registry) nearest(category, value string, tolerance float64) (string, float64, bool) {
	rc := r.cats[category]
	if rc == nil {
		return "", 0, false
	}
	q, ok := baseValue(category, value)
	if !ok {
		return "", 0, false
	}

	best, bestDist := "", math.MaxFloat64
	for _, e := range rc.scale {
		var dist float64
		switch {
		case e.base == 0 && q == 0:
			dist = 0
		case e.base == 0:
			continue
		default:
			dist = math.Abs(q-e.base) / e.base
		}
		if dist < bestDist {
			best, bestDist = e.name, dist
		}
	}
	if best == "" || bestDist > tolerance {
		return "", 0, false
	}
	return best, bestDist, true
}

// ValueOf resolves a token name back to its raw value.
func (r *Registry) ValueOf(category, name string) (string, bool) {
	rc := r.cats[category]
	if rc == nil {
		return "", false
	}
	v, ok := rc.values[name]
	return v, ok
}

// resolveVar maps a var(--name) reference back to its raw value, searching
// every category. Used by the structural metrics to evaluate rewritten
// code.
func (r *Registry) resolveVar(value string) (string, bool) {
	name, ok := varTokenName(value)
	if !ok {
		return "", false
	}
	for _, rc := range r.cats {
		if v, ok := rc.values[name]; ok {
			return v, true
		}
	}
	return "", false
}

// colorEntries lists (hex, name) pairs for every parseable color token.
func (r *Registry) colorEntries() [][2]string {
	rc := r.cats[CategoryColors]
	if rc == nil {
		return nil
	}
	out := make([][2]string, 0, len(rc.values))
	names := make([]string, 0, len(rc.values))
	for name := range rc.values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if hex, ok := normalizeColor(rc.values[name]); ok {
			out = append(out, [2]string{hex, name})
		}
	}
	return out
}

// hasToken reports whether any category declares the given token name.
func (r *Registry) hasToken(name string) bool {
	for _, rc := range r.cats {
		if _, ok := rc.values[name]; ok {
			return true
		}
	}
	return false
}

// normalizeTokenValue produces the canonical, case-insensitive form used
// for exact matching.
func normalizeTokenValue(category, raw string) string {
	if category == CategoryColors {
		if hex, ok := normalizeColor(raw); ok {
			return hex
		}
	}
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// baseValue converts a literal to the category's base unit.
func baseValue(category, raw string) (float64, bool) {
	switch category {
	case CategoryAnimation:
		return parseDuration(raw)
	case CategorySpacing, CategoryRadii, CategoryTypography:
		return parseLength(raw)
	default:
		return 0, false
	}
}

// parseLength converts px/rem/em literals to pixels (rem = em = 16px).
// Bare "0" is accepted.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "0":
		return 0, true
	case strings.HasSuffix(s, "px"):
		return parseFloatSuffix(s, "px", 1)
	case strings.HasSuffix(s, "rem"):
		return parseFloatSuffix(s, "rem", 16)
	case strings.HasSuffix(s, "em"):
		return parseFloatSuffix(s, "em", 16)
	default:
		return 0, false
	}
}

// parseDuration converts ms/s literals to milliseconds.
func parseDuration(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasSuffix(s, "ms"):
		return parseFloatSuffix(s, "ms", 1)
	case strings.HasSuffix(s, "s"):
		return parseFloatSuffix(s, "s", 1000)
	default:
		return 0, false
	}
}

func parseFloatSuffix(s, suffix string, factor float64) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, suffix), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f * factor, true
}

// normalizeColor canonicalizes hex and rgb()/rgba() literals to lowercase
// six-digit hex. Translucent colors are not normalized; they never match
// solid color tokens.
func normalizeColor(s string) (string, bool) {
	s = strings.TrimSpace(strings.ToLower(s))

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return "", false
		}
		return c.Hex(), true
	}

	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		open := strings.Index(s, "(")
		if !strings.HasSuffix(s, ")") {
			return "", false
		}
		body := s[open+1 : len(s)-1]
		body = strings.ReplaceAll(body, "/", ",")
		parts := strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' })
		if len(parts) < 3 {
			return "", false
		}
		if len(parts) >= 4 {
			alpha, err := strconv.ParseFloat(strings.TrimSuffix(parts[3], "%"), 64)
			if err != nil || (alpha != 1 && alpha != 100) {
				return "", false
			}
		}
		var ch [3]float64
		for i := 0; i < 3; i++ {
			p := parts[i]
			if strings.HasSuffix(p, "%") {
				f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
				if err != nil {
					return "", false
				}
				ch[i] = f / 100 * 255
			} else {
				f, err := strconv.ParseFloat(p, 64)
				if err != nil {
					return "", false
				}
				ch[i] = f
			}
			if ch[i] < 0 || ch[i] > 255 {
				return "", false
			}
		}
		c := colorful.Color{R: ch[0] / 255, G: ch[1] / 255, B: ch[2] / 255}
		return c.Hex(), true
	}

	return "", false
}

// varTokenName extracts the token name from a var(--name) reference.
func varTokenName(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if !strings.HasPrefix(v, "var(--") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	name := v[len("var(--") : len(v)-1]
	if name == "" || strings.ContainsAny(name, "(), ") {
		return "", false
	}
	return name, true
}

// varRef renders a token name as a CSS custom-property reference.
func varRef(name string) string {
	return "var(--" + name + ")"
}
