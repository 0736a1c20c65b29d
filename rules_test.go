package cssenhance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applyPass parses a CSS unit and runs one pass over it.
func applyPass(t *testing.T, pass rulePass, reg *Registry, code string) []Candidate {
	t.Helper()
	unit := &SourceUnit{Code: code, Language: LangCSS}
	sheet, err := parseUnit(unit)
	require.NoError(t, err)
	return pass.Apply(unit, sheet, reg, nil)
}

func TestColorPass_ExactMatch(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())
	code := ".btn { background: #1f2937; }"

	cands := applyPass(t, colorPass{}, reg, code)
	require.Len(t, cands, 1)

	c := cands[0]
	assert.Equal(t, TypeColor, c.Type)
	assert.Equal(t, "#1f2937", c.Before)
	assert.Equal(t, "var(--color-primary)", c.After)
	assert.Equal(t, "color-primary", c.BasedOn)
	assert.InDelta(t, confExact, c.Confidence, 1e-9)
	assert.True(t, c.exact)
	assert.False(t, c.Ambiguous)
}

func TestColorPass_AmbiguousValue(t *testing.T) {
	ts := testTokens()
	ts[CategoryColors]["color-dark"] = "#1f2937"
	reg := mustLoadRegistry(t, ts)

	cands := applyPass(t, colorPass{}, reg, ".btn { color: #1f2937; }")
	require.Len(t, cands, 1)

	c := cands[0]
	assert.True(t, c.Ambiguous)
	assert.Equal(t, []string{"color-dark", "color-primary"}, c.Alternatives)
	assert.InDelta(t, confAmbiguous, c.Confidence, 1e-9)
}

func TestColorPass_NearColorIsAdvisoryOnly(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	// #1f2936 is perceptually adjacent to #1f2937
	cands := applyPass(t, colorPass{}, reg, ".btn { color: #1f2936; }")
	require.Len(t, cands, 1)
	assert.InDelta(t, confAdvise, cands[0].Confidence, 1e-9)
	assert.False(t, cands[0].exact)
}

func TestColorPass_NoHeuristicsInPseudoStates(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	// Exact matches still fire inside state blocks
	cands := applyPass(t, colorPass{}, reg, ".btn:hover { color: #1f2937; }")
	require.Len(t, cands, 1)
	assert.True(t, cands[0].exact)
	assert.True(t, cands[0].stateScoped)

	// Near matches do not
	cands = applyPass(t, colorPass{}, reg, ".btn:hover { color: #1f2936; }")
	assert.Empty(t, cands)
}

func TestColorPass_SkipsTokenizedValues(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())
	cands := applyPass(t, colorPass{}, reg, ".btn { color: var(--color-primary); }")
	assert.Empty(t, cands)
}

func TestSpacingPass_Shorthand(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	tests := []struct {
		name      string
		code      string
		wantAfter string
		wantLen   int
	}{
		{
			name:      "single component",
			code:      ".a { padding: 14px; }",
			wantAfter: "var(--spacing-md)",
			wantLen:   1,
		},
		{
			name:      "two components",
			code:      ".a { padding: 14px 18px; }",
			wantAfter: "var(--spacing-md) var(--spacing-lg)",
			wantLen:   1,
		},
		{
			name:    "three components unsupported",
			code:    ".a { padding: 14px 18px 14px; }",
			wantLen: 0,
		},
		{
			name:    "one component off scale blocks all",
			code:    ".a { padding: 14px 23px; }",
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands := applyPass(t, spacingPass{}, reg, tt.code)
			require.Len(t, cands, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantAfter, cands[0].After)
			}
		})
	}
}

func TestSpacingPass_ToleranceConfidenceTiers(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	// Exact: 14px == 0.875rem
	cands := applyPass(t, spacingPass{}, reg, ".a { margin: 14px; }")
	require.Len(t, cands, 1)
	assert.InDelta(t, confExact, cands[0].Confidence, 1e-9)
	assert.True(t, cands[0].exact)

	// Within 2%: 14.2px
	cands = applyPass(t, spacingPass{}, reg, ".a { margin: 14.2px; }")
	require.Len(t, cands, 1)
	assert.InDelta(t, confNear, cands[0].Confidence, 1e-9)

	// Within 5%: 14.6px
	cands = applyPass(t, spacingPass{}, reg, ".a { margin: 14.6px; }")
	require.Len(t, cands, 1)
	assert.InDelta(t, confLoose, cands[0].Confidence, 1e-9)
}

func TestSpacingPass_FragileValues(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	cands := applyPass(t, spacingPass{}, reg, ".a { margin: calc(14px + 1px); }")
	assert.Empty(t, cands)

	// Negative lengths are never rewritten
	cands = applyPass(t, spacingPass{}, reg, ".a { margin-top: -14px; }")
	assert.Empty(t, cands)
}

func TestRadiusPass(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	cands := applyPass(t, radiusPass{}, reg, ".a { border-radius: 10px; }")
	require.Len(t, cands, 1)
	assert.Equal(t, TypeRadius, cands[0].Type)
	assert.Equal(t, "var(--radius-md)", cands[0].After)
}

func TestRadiusPass_ElevationExactOnly(t *testing.T) {
	ts := testTokens()
	ts[CategoryElevation] = map[string]string{
		"shadow-low": "0 1px 2px rgba(0, 0, 0, 0.05)",
	}
	reg := mustLoadRegistry(t, ts)

	cands := applyPass(t, radiusPass{}, reg, ".a { box-shadow: 0 1px 2px rgba(0, 0, 0, 0.05); }")
	require.Len(t, cands, 1)
	assert.Equal(t, TypeElevation, cands[0].Type)
	assert.Equal(t, "var(--shadow-low)", cands[0].After)

	cands = applyPass(t, radiusPass{}, reg, ".a { box-shadow: 0 1px 3px rgba(0, 0, 0, 0.05); }")
	assert.Empty(t, cands)
}

func TestTypographyPass(t *testing.T) {
	ts := testTokens()
	ts[CategoryTypography] = map[string]string{
		"text-sm":   "14px",
		"text-base": "16px",
	}
	reg := mustLoadRegistry(t, ts)

	cands := applyPass(t, typographyPass{}, reg, ".a { font-size: 16px; }")
	require.Len(t, cands, 1)
	assert.Equal(t, TypeTypography, cands[0].Type)
	assert.Equal(t, "var(--text-base)", cands[0].After)
	assert.Empty(t, cands[0].PatternMatch)
}

func TestTypographyPass_PatternMatchMetadata(t *testing.T) {
	ts := testTokens()
	ts[CategoryTypography] = map[string]string{"text-base": "16px"}
	reg := mustLoadRegistry(t, ts)

	unit := &SourceUnit{Code: ".a { font-size: 16px; }", Language: LangCSS}
	sheet, err := parseUnit(unit)
	require.NoError(t, err)

	pctx := &Context{
		ComponentType: "button",
		Usage:         map[string]int{"text-base": 4},
	}
	cands := typographyPass{}.Apply(unit, sheet, reg, pctx)
	require.Len(t, cands, 1)
	assert.Equal(t, "text-base used 4 times by sibling button components", cands[0].PatternMatch)
}

func TestAnimationPass_Durations(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	cands := applyPass(t, animationPass{}, reg, ".a { transition-duration: 150ms; }")
	require.Len(t, cands, 1)
	assert.Equal(t, "var(--duration-fast)", cands[0].After)
	assert.True(t, cands[0].exact)

	// 5% tolerance
	cands = applyPass(t, animationPass{}, reg, ".a { animation-duration: 155ms; }")
	require.Len(t, cands, 1)
	assert.InDelta(t, confLoose, cands[0].Confidence, 1e-9)
}

func TestAnimationPass_EasingExactOnly(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	cands := applyPass(t, animationPass{}, reg, ".a { transition-timing-function: cubic-bezier(0.4, 0, 0.2, 1); }")
	require.Len(t, cands, 1)
	assert.Equal(t, "var(--ease-standard)", cands[0].After)

	cands = applyPass(t, animationPass{}, reg, ".a { transition-timing-function: cubic-bezier(0.3, 0, 0.2, 1); }")
	assert.Empty(t, cands)
}

func TestAnimationPass_Shorthand(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	cands := applyPass(t, animationPass{}, reg, ".a { transition: opacity 150ms ease-in; }")
	require.Len(t, cands, 1)
	assert.Equal(t, "opacity var(--duration-fast) ease-in", cands[0].After)

	// A duration that only resolves approximately blocks the shorthand
	cands = applyPass(t, animationPass{}, reg, ".a { transition: opacity 155ms ease-in; }")
	assert.Empty(t, cands)
}

func TestGradientPass(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	// All stops exact
	cands := applyPass(t, gradientPass{}, reg,
		".a { background: linear-gradient(to right, #1f2937, #ffffff); }")
	require.Len(t, cands, 1)
	assert.Equal(t, TypeGradient, cands[0].Type)
	assert.Equal(t, "linear-gradient(to right, var(--color-primary), var(--color-surface))", cands[0].After)
	assert.True(t, cands[0].exact)
	assert.InDelta(t, confNear, cands[0].Confidence, 1e-9)

	// Partial match is advisory material
	cands = applyPass(t, gradientPass{}, reg,
		".a { background: linear-gradient(#1f2937 0%, #123456 100%); }")
	require.Len(t, cands, 1)
	assert.False(t, cands[0].exact)
	assert.InDelta(t, confAdvise, cands[0].Confidence, 1e-9)
	assert.Equal(t, "linear-gradient(var(--color-primary) 0%, #123456 100%)", cands[0].After)
}

func TestStatePass_SuggestsMissingHoverBlock(t *testing.T) {
	ts := testTokens()
	ts[CategoryColors]["color-primary-hover"] = "#111827"
	reg := mustLoadRegistry(t, ts)

	code := ".btn { background: var(--color-primary); }"
	cands := applyPass(t, statePass{}, reg, code)
	require.Len(t, cands, 1)

	c := cands[0]
	assert.Equal(t, TypeStateVariation, c.Type)
	assert.Equal(t, "", c.Before)
	assert.Equal(t, "\n.btn:hover { background: var(--color-primary-hover); }", c.After)
	assert.Equal(t, c.start, c.end)
	assert.InDelta(t, confAdvise, c.Confidence, 1e-9)
}

func TestStatePass_ExistingStateRuleSuppresses(t *testing.T) {
	ts := testTokens()
	ts[CategoryColors]["color-primary-hover"] = "#111827"
	reg := mustLoadRegistry(t, ts)

	code := ".btn { background: var(--color-primary); }\n.btn:hover { background: var(--color-primary-hover); }"
	cands := applyPass(t, statePass{}, reg, code)
	assert.Empty(t, cands)
}

func TestOptimizerPass(t *testing.T) {
	reg := mustLoadRegistry(t, testTokens())

	code := ".a { color: red; color: blue; }\n.empty {  }\n"
	cands := applyPass(t, optimizerPass{}, reg, code)
	require.Len(t, cands, 2)

	shadowed := cands[0]
	assert.Equal(t, TypeOptimize, shadowed.Type)
	assert.Equal(t, " color: red;", shadowed.Before)
	assert.Equal(t, "", shadowed.After)

	empty := cands[1]
	assert.Equal(t, ".empty {  }", empty.Before)
}

func TestResolveOverlaps_PrecedenceWins(t *testing.T) {
	color := Candidate{Type: TypeColor, start: 10, end: 20}
	opt := Candidate{Type: TypeOptimize, start: 5, end: 25}
	insertion := Candidate{Type: TypeStateVariation, start: 12, end: 12}

	kept := resolveOverlaps([]Candidate{opt, color, insertion})
	require.Len(t, kept, 2)
	assert.Equal(t, TypeColor, kept[0].Type)
	assert.Equal(t, TypeStateVariation, kept[1].Type)
}
