package cssenhance

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// maxContrast is the WCAG ceiling (white on black).
const maxContrast = 21.0

// metricEpsilon absorbs float noise in non-regression comparisons.
const metricEpsilon = 1e-9

// Metrics are the cheap structural measurements recomputed between
// progressive-apply batches.
type Metrics struct {
	// TokenAdherence: share of tokenizable declarations that reference a
	// custom property.
	TokenAdherence float64 `json:"tokenAdherence"`
	// SpacingConsistency: share of spacing declarations whose components
	// sit on the spacing scale (or are token references).
	SpacingConsistency float64 `json:"spacingConsistency"`
	// MinContrast: worst foreground/background contrast ratio across
	// rules declaring both.
	MinContrast float64 `json:"minContrast"`
	// Declarations counted.
	Declarations int `json:"declarations"`
}

// MetricsDelta pairs the measurements before and after enhancement.
type MetricsDelta struct {
	Before Metrics `json:"before"`
	After  Metrics `json:"after"`
}

// computeUnitMetrics parses and measures a source unit. Unparseable code
// yields zero metrics; the caller treats that as malformed elsewhere.
func computeUnitMetrics(unit *SourceUnit, reg *Registry) Metrics {
	sheet, err := parseUnit(unit)
	if err != nil {
		return Metrics{MinContrast: maxContrast}
	}
	return computeMetrics(sheet, reg)
}

func computeMetrics(sheet *stylesheet, reg *Registry) Metrics {
	m := Metrics{MinContrast: maxContrast}

	tokenizableDecls, tokenized := 0, 0
	spacingDecls, consistent := 0, 0

	for _, r := range sheet.rules {
		for _, d := range r.decls {
			if d.custom || isVendorProperty(d.prop) {
				continue
			}
			m.Declarations++
			cat, ok := propertyCategory(d.prop)
			if !ok {
				continue
			}
			tokenizableDecls++
			if isTokenValue(d.value) {
				tokenized++
			}
			if cat == CategorySpacing {
				spacingDecls++
				if spacingAligned(d.value, reg) {
					consistent++
				}
			}
		}

		if ratio, ok := ruleContrast(r, reg); ok && ratio < m.MinContrast {
			m.MinContrast = ratio
		}
	}

	m.TokenAdherence = share(tokenized, tokenizableDecls)
	m.SpacingConsistency = share(consistent, spacingDecls)
	return m
}

func share(n, total int) float64 {
	if total == 0 {
		return 1
	}
	return float64(n) / float64(total)
}

// spacingAligned reports whether every component of a spacing value is a
// token reference or sits on the spacing scale within tolerance.
func spacingAligned(value string, reg *Registry) bool {
	for _, comp := range splitComponents(value) {
		if isTokenValue(comp) {
			continue
		}
		if _, ok := parseLength(comp); !ok {
			return false
		}
		if _, ok := reg.NearestMatch(CategorySpacing, comp, DefaultTolerance); !ok {
			return false
		}
	}
	return true
}

// ruleContrast computes the contrast ratio between a rule's color and
// background-color, resolving token references through the registry.
func ruleContrast(r *cssRule, reg *Registry) (float64, bool) {
	var fg, bg string
	for _, d := range r.decls {
		switch d.prop {
		case "color":
			fg = d.value
		case "background-color", "background":
			bg = d.value
		}
	}
	if fg == "" || bg == "" {
		return 0, false
	}
	fgc, ok := resolveColor(fg, reg)
	if !ok {
		return 0, false
	}
	bgc, ok := resolveColor(bg, reg)
	if !ok {
		return 0, false
	}
	return contrastRatio(fgc, bgc), true
}

// resolveColor parses a literal color or resolves a var reference via the
// registry.
func resolveColor(value string, reg *Registry) (colorful.Color, bool) {
	raw := value
	if reg != nil {
		if resolved, ok := reg.resolveVar(value); ok {
			raw = resolved
		}
	}
	hex, ok := normalizeColor(raw)
	if !ok {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// contrastRatio implements the WCAG 2.x formula.
func contrastRatio(a, b colorful.Color) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func relativeLuminance(c colorful.Color) float64 {
	lin := func(v float64) float64 {
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// regressed reports whether any structural metric got worse.
func regressed(after, before Metrics) bool {
	return after.TokenAdherence < before.TokenAdherence-metricEpsilon ||
		after.SpacingConsistency < before.SpacingConsistency-metricEpsilon ||
		after.MinContrast < before.MinContrast-metricEpsilon
}

// contrastDelta measures how an in-place color substitution moves the
// rule's contrast ratio: the candidate's before/after values are compared
// against the rule's paired color. Zero when no pairing exists.
func contrastDelta(c Candidate, r *cssRule, reg *Registry) float64 {
	if c.Type != TypeColor && c.Type != TypeGradient {
		return 0
	}
	var other string
	for _, d := range r.decls {
		if d.prop == c.property {
			continue
		}
		if d.prop == "color" || d.prop == "background-color" || d.prop == "background" {
			other = d.value
			break
		}
	}
	if other == "" {
		return 0
	}
	oc, ok := resolveColor(other, reg)
	if !ok {
		return 0
	}
	beforeC, ok := resolveColor(c.Before, reg)
	if !ok {
		return 0
	}
	afterC, ok := resolveColor(c.After, reg)
	if !ok {
		return 0
	}
	return contrastRatio(afterC, oc) - contrastRatio(beforeC, oc)
}
