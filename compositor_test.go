package cssenhance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buttonTokens() TokenSet {
	return TokenSet{
		CategoryColors: {
			"color-primary": "#1f2937",
		},
		CategorySpacing: {
			"spacing-md": "0.875rem",
			"spacing-lg": "1.125rem",
		},
		CategoryRadii: {
			"radius-md": "10px",
		},
	}
}

func TestEnhance_ButtonScenario(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	unit := SourceUnit{
		Code:     ".btn{background:#1f2937;padding:14px 18px;border-radius:10px}",
		Language: LangCSS,
	}
	res, err := eng.Enhance(unit, reg, nil)
	require.NoError(t, err)

	assert.Equal(t,
		".btn{background:var(--color-primary);padding:var(--spacing-md) var(--spacing-lg);border-radius:var(--radius-md)}",
		res.Code)
	assert.Len(t, res.Changes, 3)
	assert.False(t, res.Malformed)
	assert.False(t, res.Excluded)

	assert.Greater(t, res.MetricsDelta.After.TokenAdherence, res.MetricsDelta.Before.TokenAdherence)
}

func TestEnhance_AmbiguousColorStaysAdvisory(t *testing.T) {
	ts := buttonTokens()
	ts[CategoryColors]["color-dark"] = "#1f2937"
	reg := mustLoadRegistry(t, ts)
	eng := New(Options{})

	unit := SourceUnit{
		Code:     ".btn{background:#1f2937;padding:14px 18px;border-radius:10px}",
		Language: LangCSS,
	}
	res, err := eng.Enhance(unit, reg, nil)
	require.NoError(t, err)

	// Spacing and radius still apply; the color is surfaced exactly once
	// as an advisory with its alternatives.
	require.Len(t, res.Changes, 2)
	for _, change := range res.Changes {
		assert.NotEqual(t, TypeColor, change.Type)
	}

	var colorAdvisories []Candidate
	for _, c := range res.Advisory {
		if c.Type == TypeColor {
			colorAdvisories = append(colorAdvisories, c)
		}
	}
	require.Len(t, colorAdvisories, 1)
	assert.True(t, colorAdvisories[0].Ambiguous)
	assert.Equal(t, []string{"color-dark", "color-primary"}, colorAdvisories[0].Alternatives)
	assert.LessOrEqual(t, colorAdvisories[0].Confidence, 0.5)
}

func TestEnhance_FileMarkerDisablesEverything(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	unit := SourceUnit{
		Code:     "/* cssenhance:disable-file */\n.btn{background:#1f2937;padding:14px 18px}",
		Language: LangCSS,
	}
	res, err := eng.Enhance(unit, reg, nil)
	require.NoError(t, err)

	assert.True(t, res.Excluded)
	assert.Empty(t, res.Changes)
	assert.Empty(t, res.Advisory)
	assert.Equal(t, unit.Code, res.Code)
}

func TestEnhance_Idempotent(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	unit := SourceUnit{
		Code:     ".btn{background:#1f2937;padding:14px 18px;border-radius:10px}",
		Language: LangCSS,
	}
	first, err := eng.Enhance(unit, reg, nil)
	require.NoError(t, err)
	require.NotEmpty(t, first.Changes)

	second, err := eng.Enhance(SourceUnit{Code: first.Code, Language: LangCSS}, reg, nil)
	require.NoError(t, err)
	assert.Empty(t, second.Changes)
	assert.Equal(t, first.Code, second.Code)
}

func TestEnhance_ChangeCapWithPositionalRanking(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	code := `.c1 { color: #1f2937; }
.c2 { color: #1f2937; }
.c3 { color: #1f2937; }
.c4 { color: #1f2937; }
.c5 { color: #1f2937; }
.c6 { color: #1f2937; }
.c7 { color: #1f2937; }`
	res, err := eng.Enhance(SourceUnit{Code: code, Language: LangCSS}, reg, nil)
	require.NoError(t, err)

	require.Len(t, res.Changes, 5)
	require.Len(t, res.Advisory, 2)
	for i, change := range res.Changes {
		assert.Equal(t, i+1, change.AppliedOrder)
		assert.Equal(t, i+1, change.Location.Line)
	}
	assert.Equal(t, 6, res.Advisory[0].Location.Line)
	assert.Equal(t, 7, res.Advisory[1].Location.Line)
}

func TestEnhance_ExcludedPath(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	unit := SourceUnit{
		Code:     ".btn{background:#1f2937}",
		Language: LangCSS,
		FilePath: "node_modules/lib/button.css",
	}
	res, err := eng.Enhance(unit, reg, nil)
	require.NoError(t, err)
	assert.True(t, res.Excluded)
	assert.Empty(t, res.Changes)
}

func TestEnhance_MalformedReturnsOriginal(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	unit := SourceUnit{Code: ".btn { color: #1f2937;", Language: LangCSS}
	res, err := eng.Enhance(unit, reg, nil)
	require.NoError(t, err)

	assert.True(t, res.Malformed)
	assert.Equal(t, unit.Code, res.Code)
	assert.Empty(t, res.Changes)
}

func TestEnhance_ContrastGuardrail(t *testing.T) {
	// #7a7a7a is a near (not exact) match for the literal #777777, and
	// lighter, so the rewrite would lower contrast against the white
	// background.
	ts := TokenSet{
		CategoryColors: {
			"color-muted": "#7a7a7a",
		},
	}
	reg := mustLoadRegistry(t, ts)
	unit := SourceUnit{
		Code:     ".a { color: #777777; background: #ffffff; }",
		Language: LangCSS,
	}

	res, err := New(Options{}).Enhance(unit, reg, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Changes)
	assert.Empty(t, res.Advisory)
	assert.Equal(t, unit.Code, res.Code)

	_, err = New(Options{Strict: true}).Enhance(unit, reg, nil)
	var ge *GuardrailError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "contrast regression", ge.Reason)
}

func TestEnhance_ContrastImprovementAllowed(t *testing.T) {
	// Against a black background the lighter near-match raises contrast,
	// so the candidate survives as an advisory.
	ts := TokenSet{
		CategoryColors: {
			"color-muted": "#7a7a7a",
		},
	}
	reg := mustLoadRegistry(t, ts)
	unit := SourceUnit{
		Code:     ".a { color: #777777; background: #000000; }",
		Language: LangCSS,
	}

	res, err := New(Options{}).Enhance(unit, reg, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Changes)
	require.Len(t, res.Advisory, 1)
	assert.Equal(t, "var(--color-muted)", res.Advisory[0].After)
}

func TestEnhance_AutoApplyOff(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{AutoApply: AutoApplyOff})

	unit := SourceUnit{
		Code:     ".btn{background:#1f2937;padding:14px 18px}",
		Language: LangCSS,
	}
	res, err := eng.Enhance(unit, reg, nil)
	require.NoError(t, err)

	assert.Empty(t, res.Changes)
	assert.Len(t, res.Advisory, 2)
	assert.Equal(t, unit.Code, res.Code)
}

func TestEnhance_OverrideSuppresses(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	pctx := &Context{Overrides: map[string]string{"background": "#1f2937"}}
	unit := SourceUnit{Code: ".btn{background:#1f2937}", Language: LangCSS}

	res, err := eng.Enhance(unit, reg, pctx)
	require.NoError(t, err)
	assert.Empty(t, res.Changes)
	assert.Empty(t, res.Advisory)
	assert.Equal(t, unit.Code, res.Code)
}

func TestEnhance_StateInsertionNeverAutoApplied(t *testing.T) {
	// Usage and history signals push the insertion's score past the
	// auto-apply gate; invented blocks must still land in the advisory
	// bucket in every mode.
	ts := TokenSet{
		CategoryColors: {
			"color-primary":       "#1f2937",
			"color-primary-hover": "#111827",
		},
	}
	reg := mustLoadRegistry(t, ts)
	pctx := &Context{
		ComponentType: "button",
		Usage:         map[string]int{"color-primary-hover": 3},
		History:       map[string]FeedbackStats{"state-variation/button": {Accepted: 10}},
	}
	unit := SourceUnit{Code: ".btn { color: #1f2937; }", Language: LangCSS}

	for _, mode := range []AutoApplyMode{AutoApplySafe, AutoApplyAll} {
		res, err := New(Options{AutoApply: mode}).Enhance(unit, reg, pctx)
		require.NoError(t, err)

		require.Len(t, res.Changes, 1)
		assert.Equal(t, TypeColor, res.Changes[0].Type)
		assert.Equal(t, ".btn { color: var(--color-primary); }", res.Code)

		require.Len(t, res.Advisory, 1)
		insertion := res.Advisory[0]
		assert.Equal(t, TypeStateVariation, insertion.Type)
		assert.GreaterOrEqual(t, insertion.Confidence, 0.9)
		assert.NotContains(t, res.Code, ":hover")
	}
}

func TestEnhance_MarkerSuppressesOptimizer(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	code := ".a { color: #1f2937; }\n/* cssenhance:disable-next-line */\n.empty { }\n"
	res, err := eng.Enhance(SourceUnit{Code: code, Language: LangCSS}, reg, nil)
	require.NoError(t, err)

	require.Len(t, res.Changes, 1)
	assert.Equal(t, TypeColor, res.Changes[0].Type)
	assert.Contains(t, res.Code, ".empty { }")
}

func TestEnhance_HTMLUnit(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	code := `<html>
<head>
<style>
.btn { background: #1f2937; border-radius: 10px; }
</style>
</head>
<body>
<div style="padding: 14px 18px">hi</div>
</body>
</html>`
	res, err := eng.Enhance(SourceUnit{Code: code, Language: LangHTML}, reg, nil)
	require.NoError(t, err)

	require.Len(t, res.Changes, 3)
	want := strings.NewReplacer(
		"#1f2937", "var(--color-primary)",
		"10px", "var(--radius-md)",
		"14px 18px", "var(--spacing-md) var(--spacing-lg)",
	).Replace(code)
	assert.Equal(t, want, res.Code)

	// Locations are absolute within the HTML document, not
	// fragment-relative.
	assert.Equal(t, 4, res.Changes[0].Location.Line)
	assert.Equal(t, 4, res.Changes[1].Location.Line)
	assert.Equal(t, 8, res.Changes[2].Location.Line)
}

func TestEnhance_OptimizerRunsAfterTokenizing(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	code := ".a { color: #1f2937; }\n.empty { }\n"
	res, err := eng.Enhance(SourceUnit{Code: code, Language: LangCSS}, reg, nil)
	require.NoError(t, err)

	require.Len(t, res.Changes, 2)
	assert.Equal(t, TypeColor, res.Changes[0].Type)
	assert.Equal(t, TypeOptimize, res.Changes[1].Type)
	assert.NotContains(t, res.Code, ".empty")
}

func TestAnalyze_ReportsWithoutMutating(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	unit := SourceUnit{
		Code:     ".btn{background:#1f2937;padding:14px 18px}",
		Language: LangCSS,
		FilePath: "button.css",
	}
	a, err := eng.Analyze(unit, reg, nil)
	require.NoError(t, err)

	assert.Len(t, a.Opportunities, 2)
	assert.Len(t, a.Issues, 2)
	assert.Equal(t, "button.css", a.Issues[0].Pos.Filename)
	assert.Equal(t, SeverityWarning, a.Issues[0].Severity)
	assert.InDelta(t, 0.0, a.Metrics.TokenAdherence, 1e-9)
}

func TestAnalyze_MalformedIssue(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())
	eng := New(Options{})

	a, err := eng.Analyze(SourceUnit{Code: ".x {", Language: LangCSS}, reg, nil)
	require.NoError(t, err)
	assert.True(t, a.Malformed)
	require.Len(t, a.Issues, 1)
	assert.Equal(t, IssueMalformed, a.Issues[0].Text)
}

func TestPackageLevelHelpers(t *testing.T) {
	reg := mustLoadRegistry(t, buttonTokens())

	res, err := Enhance(".btn{background:#1f2937}", LangCSS, reg, nil, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Changes, 1)

	a, err := Analyze(".btn{background:#1f2937}", LangCSS, reg, nil, Options{})
	require.NoError(t, err)
	assert.Len(t, a.Opportunities, 1)
}
