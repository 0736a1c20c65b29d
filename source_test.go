package cssenhance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit_HTMLStyleBlock(t *testing.T) {
	code := "<html>\n<style>\n.btn { color: #fff; }\n</style>\n<body></body>\n</html>"
	unit := &SourceUnit{Code: code, Language: LangHTML}

	sheet, err := parseUnit(unit)
	require.NoError(t, err)
	require.Len(t, sheet.rules, 1)

	d := sheet.rules[0].decls[0]
	assert.Equal(t, "#fff", d.value)
	// Offsets are absolute within the HTML document
	assert.Equal(t, d.value, code[d.valStart:d.valEnd])
	assert.Equal(t, 3, d.line)
}

func TestParseUnit_HTMLStyleAttribute(t *testing.T) {
	code := `<div style="margin: 8px; color: #1f2937">text</div>`
	unit := &SourceUnit{Code: code, Language: LangHTML}

	sheet, err := parseUnit(unit)
	require.NoError(t, err)
	require.Len(t, sheet.rules, 1)
	require.Len(t, sheet.rules[0].decls, 2)

	d := sheet.rules[0].decls[1]
	assert.Equal(t, "#1f2937", d.value)
	assert.Equal(t, d.value, code[d.valStart:d.valEnd])
}

func TestParseUnit_JSXTemplateLiteral(t *testing.T) {
	code := "const Button = styled.button`nope`;\nconst styles = css`padding: 16px; color: #fff`;\n"
	unit := &SourceUnit{Code: code, Language: LangJSX}

	sheet, err := parseUnit(unit)
	require.NoError(t, err)
	require.Len(t, sheet.rules, 1)
	require.Len(t, sheet.rules[0].decls, 2)
	assert.Equal(t, "16px", sheet.rules[0].decls[0].value)
}

func TestExtractFragments_SkipsInterpolatedTemplates(t *testing.T) {
	code := "const s = css`color: ${theme.fg}; margin: 4px`;"
	frags := extractFragments(code, LangJSX)
	assert.Empty(t, frags)
}

func TestExtractFragments_SkipsJSXObjectStyles(t *testing.T) {
	code := `<div style={{ margin: 8 }}>x</div>`
	frags := extractFragments(code, LangJSX)
	assert.Empty(t, frags)
}

func TestParseUnit_MalformedFragmentFailsWholeUnit(t *testing.T) {
	code := "<style>.a { color: red;</style>"
	unit := &SourceUnit{Code: code, Language: LangHTML}

	_, err := parseUnit(unit)
	assert.ErrorIs(t, err, errMalformed)
}

func TestStyleBlocks_Multiple(t *testing.T) {
	code := "<style>.a{color:red}</style><p/><style>.b{color:blue}</style>"
	frags := styleBlocks(code)
	require.Len(t, frags, 2)
	assert.Equal(t, ".a{color:red}", frags[0].css)
	assert.Equal(t, ".b{color:blue}", frags[1].css)
}
