package cssenhance

import "strings"

// enhancementCategory maps CSS property names to the token category that
// governs their values. Properties absent from this table never produce
// candidates.
var enhancementCategory = map[string]string{
	// Color-bearing properties
	"color":                 CategoryColors,
	"background":            CategoryColors,
	"background-color":      CategoryColors,
	"border-color":          CategoryColors,
	"border-top-color":      CategoryColors,
	"border-right-color":    CategoryColors,
	"border-bottom-color":   CategoryColors,
	"border-left-color":     CategoryColors,
	"outline-color":         CategoryColors,
	"caret-color":           CategoryColors,
	"accent-color":          CategoryColors,
	"text-decoration-color": CategoryColors,
	"fill":                  CategoryColors,
	"stroke":                CategoryColors,

	// Spacing
	"padding":        CategorySpacing,
	"padding-top":    CategorySpacing,
	"padding-right":  CategorySpacing,
	"padding-bottom": CategorySpacing,
	"padding-left":   CategorySpacing,
	"margin":         CategorySpacing,
	"margin-top":     CategorySpacing,
	"margin-right":   CategorySpacing,
	"margin-bottom":  CategorySpacing,
	"margin-left":    CategorySpacing,
	"gap":            CategorySpacing,
	"row-gap":        CategorySpacing,
	"column-gap":     CategorySpacing,

	// Radii and elevation
	"border-radius": CategoryRadii,
	"box-shadow":    CategoryElevation,

	// Typography scale
	"font-size": CategoryTypography,

	// Animation timing
	"transition":                 CategoryAnimation,
	"transition-duration":        CategoryAnimation,
	"transition-timing-function": CategoryAnimation,
	"animation":                  CategoryAnimation,
	"animation-duration":         CategoryAnimation,
	"animation-timing-function":  CategoryAnimation,
}

// propertyCategory resolves the token category for a property, following
// prefix conventions for the long-hand families.
func propertyCategory(name string) (string, bool) {
	if cat, ok := enhancementCategory[name]; ok {
		return cat, true
	}
	switch {
	case strings.HasSuffix(name, "-color"):
		return CategoryColors, true
	case strings.HasPrefix(name, "padding-") || strings.HasPrefix(name, "margin-"):
		return CategorySpacing, true
	case strings.HasPrefix(name, "border-") && strings.HasSuffix(name, "-radius"):
		return CategoryRadii, true
	}
	return "", false
}

// isVendorProperty reports -webkit-/-moz-/-ms-/-o- prefixed properties;
// those are left alone.
func isVendorProperty(name string) bool {
	return strings.HasPrefix(name, "-webkit-") ||
		strings.HasPrefix(name, "-moz-") ||
		strings.HasPrefix(name, "-ms-") ||
		strings.HasPrefix(name, "-o-")
}

// isTokenValue reports whether a value already references a custom
// property; tokenized values are never candidates again, which is what
// makes the engine idempotent.
func isTokenValue(value string) bool {
	return strings.Contains(value, "var(")
}

// gradientProperties can carry gradient values.
var gradientProperties = map[string]bool{
	"background":       true,
	"background-image": true,
}

// fragileValue flags value shapes known to break layouts when nudged:
// calc() compositions and negative lengths.
func fragileValue(value string) bool {
	if strings.Contains(value, "calc(") {
		return true
	}
	for _, comp := range splitComponents(value) {
		if strings.HasPrefix(comp, "-") {
			if _, ok := parseLength(strings.TrimPrefix(comp, "-")); ok {
				return true
			}
		}
	}
	return false
}

// splitComponents splits a value on top-level whitespace, keeping
// function calls intact.
func splitComponents(value string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	for _, r := range value {
		switch {
		case r == '(':
			depth++
			current.WriteRune(r)
		case r == ')':
			depth--
			current.WriteRune(r)
		case (r == ' ' || r == '\t' || r == '\n') && depth == 0:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
