package cssenhance

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// decl is one property:value declaration with the exact byte range of its
// value, so candidates can be applied as targeted text replacements.
type decl struct {
	prop     string
	value    string
	valStart int // absolute offset of the first value byte
	valEnd   int // absolute offset just past the last value byte
	line     int // 1-based line of the property name
	custom   bool
}

// cssRule is a selector with its declaration block.
type cssRule struct {
	selector     string
	pseudoStates []string // ":hover", ":focus", ... on the last selector
	decls        []*decl
	line         int
	start        int    // offset of the first selector byte
	bodyEnd      int    // offset of the closing brace
	atContext    string // enclosing grouping at-rule, "" at top level
}

type stylesheet struct {
	rules []*cssRule
}

// cssToken is a materialized lexer token with position info.
type cssToken struct {
	tt   css.TokenType
	data string
	off  int // absolute byte offset
	line int // 1-based
}

// groupingAtRules have blocks containing rules rather than declarations.
var groupingAtRules = map[string]bool{
	"@media":     true,
	"@supports":  true,
	"@layer":     true,
	"@container": true,
	"@scope":     true,
	"@keyframes": true,
}

// lexCSS materializes the token stream with offsets. The lexer emits
// whitespace and comment tokens, so tokens cover the input contiguously.
func lexCSS(src string, baseOffset, baseLine int) []cssToken {
	lexer := css.NewLexer(parse.NewInputString(src))

	var tokens []cssToken
	off, line := 0, baseLine
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		text := string(data)
		tokens = append(tokens, cssToken{tt: tt, data: text, off: baseOffset + off, line: line})
		off += len(text)
		line += strings.Count(text, "\n")
	}
	return tokens
}

// parseStylesheet builds a declaration tree from a CSS fragment located at
// baseOffset/baseLine within the source unit. Unbalanced braces make the
// fragment malformed.
func parseStylesheet(src string, baseOffset, baseLine int) (*stylesheet, error) {
	tokens := lexCSS(src, baseOffset, baseLine)
	sheet := &stylesheet{}

	p := &cssParser{src: src, base: baseOffset, tokens: tokens, sheet: sheet}
	if err := p.parseRules("", len(tokens)); err != nil {
		return nil, err
	}
	if p.i < len(tokens) {
		return nil, errMalformed
	}
	return sheet, nil
}

// parseDeclarations parses a bare declaration list (inline style
// attributes have no selector or braces). The synthetic rule carries an
// empty selector.
func parseDeclarations(src string, baseOffset, baseLine int) (*stylesheet, error) {
	tokens := lexCSS(src, baseOffset, baseLine)
	sheet := &stylesheet{}
	r := &cssRule{selector: "", line: baseLine, start: baseOffset, bodyEnd: baseOffset + len(src)}
	p := &cssParser{src: src, base: baseOffset, tokens: tokens, sheet: sheet}
	if err := p.parseBody(r, len(tokens)); err != nil {
		return nil, err
	}
	if len(r.decls) > 0 {
		sheet.rules = append(sheet.rules, r)
	}
	return sheet, nil
}

type errString string

func (e errString) Error() string { return string(e) }

// errMalformed marks source fragments that cannot be parsed; the engine
// degrades to returning the caller's code unchanged.
const errMalformed = errString("malformed source fragment")

type cssParser struct {
	src    string
	base   int
	tokens []cssToken
	sheet  *stylesheet
	i      int
}

func (p *cssParser) peek() (cssToken, bool) {
	if p.i >= len(p.tokens) {
		return cssToken{}, false
	}
	return p.tokens[p.i], true
}

// parseRules consumes rules until limit (or a closing brace when nested).
func (p *cssParser) parseRules(atContext string, limit int) error {
	var prelude []cssToken

	for p.i < limit {
		tok := p.tokens[p.i]

		switch tok.tt {
		case css.WhitespaceToken, css.CommentToken, css.CDOToken, css.CDCToken:
			if len(prelude) > 0 {
				prelude = append(prelude, tok)
			}
			p.i++

		case css.SemicolonToken:
			// Block-less at-rules (@import, @charset, @layer a, b;).
			prelude = nil
			p.i++

		case css.RightBraceToken:
			if atContext == "" {
				return errMalformed
			}
			p.i++
			return nil

		case css.LeftBraceToken:
			p.i++
			name, grouping := preludeAtRule(prelude)
			if grouping {
				ctx := name
				if atContext != "" {
					ctx = atContext + " " + name
				}
				if err := p.parseRules(ctx, limit); err != nil {
					return err
				}
			} else {
				r := p.newRule(prelude, atContext)
				if err := p.parseBody(r, limit); err != nil {
					return err
				}
				if r != nil {
					p.sheet.rules = append(p.sheet.rules, r)
				}
			}
			prelude = nil

		default:
			prelude = append(prelude, tok)
			p.i++
		}
	}

	if atContext != "" {
		return errMalformed
	}
	if preludeHasContent(prelude) {
		return errMalformed
	}
	return nil
}

// newRule builds a rule header from the selector prelude.
func (p *cssParser) newRule(prelude []cssToken, atContext string) *cssRule {
	if !preludeHasContent(prelude) {
		return &cssRule{selector: "", atContext: atContext}
	}
	first := prelude[0]
	var sel strings.Builder
	for _, t := range prelude {
		sel.WriteString(t.data)
	}
	selector := strings.TrimSpace(sel.String())
	return &cssRule{
		selector:     selector,
		pseudoStates: selectorPseudoStates(selector),
		line:         first.line,
		start:        first.off,
		atContext:    atContext,
	}
}

// parseBody consumes declarations until the rule's closing brace.
func (p *cssParser) parseBody(r *cssRule, limit int) error {
	for p.i < limit {
		tok := p.tokens[p.i]

		switch tok.tt {
		case css.WhitespaceToken, css.CommentToken, css.SemicolonToken:
			p.i++

		case css.RightBraceToken:
			r.bodyEnd = tok.off
			p.i++
			return nil

		case css.IdentToken, css.CustomPropertyNameToken:
			if err := p.parseDecl(r, limit); err != nil {
				return err
			}

		default:
			return errMalformed
		}
	}
	// A bare declaration list ends at the token limit.
	if r.selector == "" && r.atContext == "" {
		return nil
	}
	return errMalformed
}

// parseDecl consumes one property:value declaration.
func (p *cssParser) parseDecl(r *cssRule, limit int) error {
	prop := p.tokens[p.i]
	d := &decl{
		prop:   strings.ToLower(prop.data),
		line:   prop.line,
		custom: prop.tt == css.CustomPropertyNameToken,
	}
	p.i++

	// Skip to the colon.
	for p.i < limit && p.tokens[p.i].tt == css.WhitespaceToken {
		p.i++
	}
	if p.i >= limit || p.tokens[p.i].tt != css.ColonToken {
		return errMalformed
	}
	p.i++

	// Accumulate value tokens up to ; or } at paren depth zero.
	depth := 0
	started := false
	for p.i < limit {
		tok := p.tokens[p.i]
		if depth == 0 && (tok.tt == css.SemicolonToken || tok.tt == css.RightBraceToken) {
			break
		}
		switch tok.tt {
		case css.LeftParenthesisToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth < 0 {
				return errMalformed
			}
		case css.LeftBraceToken:
			return errMalformed
		}
		if tok.tt != css.WhitespaceToken && tok.tt != css.CommentToken {
			if !started {
				d.valStart = tok.off
				started = true
			}
			d.valEnd = tok.off + len(tok.data)
		}
		p.i++
	}

	if !started {
		return errMalformed
	}
	d.value = p.sliceAbs(d.valStart, d.valEnd)
	r.decls = append(r.decls, d)
	return nil
}

// sliceAbs slices the fragment source by absolute offsets.
func (p *cssParser) sliceAbs(start, end int) string {
	return p.src[start-p.base : end-p.base]
}

func preludeHasContent(prelude []cssToken) bool {
	for _, t := range prelude {
		if t.tt != css.WhitespaceToken && t.tt != css.CommentToken {
			return true
		}
	}
	return false
}

// preludeAtRule reports whether the prelude opens a grouping at-rule block.
func preludeAtRule(prelude []cssToken) (string, bool) {
	for _, t := range prelude {
		switch t.tt {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.AtKeywordToken:
			kw := strings.ToLower(t.data)
			return kw, groupingAtRules[kw]
		default:
			return "", false
		}
	}
	return "", false
}

// interactionStates are the pseudo-classes treated as semantic state
// variants.
var interactionStates = []string{":hover", ":focus-visible", ":focus-within", ":focus", ":active", ":disabled", ":visited"}

// selectorPseudoStates extracts interaction pseudo-classes from a selector.
func selectorPseudoStates(selector string) []string {
	var states []string
	rest := selector
	for rest != "" {
		matched := false
		for _, ps := range interactionStates {
			idx := strings.Index(rest, ps)
			if idx < 0 {
				continue
			}
			if !contains(states, ps) {
				states = append(states, ps)
			}
			rest = rest[idx+len(ps):]
			matched = true
			break
		}
		if !matched {
			break
		}
	}
	return states
}

func contains(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}
