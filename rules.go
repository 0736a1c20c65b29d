package cssenhance

// rulePass turns literal design values in a declaration tree into token
// reference candidates. Passes are pure: they never mutate the unit or
// the sheet, only describe rewrites.
type rulePass interface {
	Name() string
	Apply(unit *SourceUnit, sheet *stylesheet, reg *Registry, pctx *Context) []Candidate
}

// tokenizingPasses run before the optimizer, in declaration order.
func tokenizingPasses() []rulePass {
	return []rulePass{
		colorPass{},
		spacingPass{},
		radiusPass{},
		typographyPass{},
		animationPass{},
		gradientPass{},
		statePass{},
	}
}

// typePrecedence resolves overlapping candidates: lower wins. Tokenizing
// categories outrank the optimizer; color outranks typography.
var typePrecedence = map[string]int{
	TypeColor:          0,
	TypeTypography:     1,
	TypeGradient:       2,
	TypeSpacing:        3,
	TypeRadius:         4,
	TypeElevation:      5,
	TypeAnimation:      6,
	TypeStateVariation: 7,
	TypeOptimize:       8,
}

// Confidence seeds assigned by passes before scoring.
const (
	confExact     = 0.95
	confNear      = 0.92
	confLoose     = 0.88
	confAdvise    = 0.85
	confAmbiguous = 0.5
)

// valueCandidate builds a candidate replacing one declaration value.
func valueCandidate(unit *SourceUnit, r *cssRule, d *decl, typ, after, basedOn string, conf float64, exact bool) Candidate {
	return Candidate{
		Type:       typ,
		Location:   locationAt(unit, d.valStart),
		Before:     d.value,
		After:      after,
		Confidence: conf,
		BasedOn:    basedOn,
		start:      d.valStart,
		end:        d.valEnd,
		property:   d.prop,
		exact:      exact,
		stateScoped: len(r.pseudoStates) > 0,
		fragile:    fragileValue(d.value),
	}
}

// tokenizable reports whether a declaration is eligible for any pass at
// all: non-custom, non-vendor, and not already a token reference.
func tokenizable(d *decl) bool {
	return !d.custom && !isVendorProperty(d.prop) && !isTokenValue(d.value)
}
