package cssenhance

import (
	"strings"
)

// Supported source languages.
const (
	LangCSS  = "css"
	LangHTML = "html"
	LangJSX  = "jsx"
)

// SourceUnit is one immutable input fragment. The engine never mutates it
// in place; rewritten code is always a new string.
type SourceUnit struct {
	Code     string
	Language string // css | html | jsx
	FilePath string
}

// parseUnit builds the combined declaration tree for a unit. For HTML and
// JSX the embedded CSS fragments are located first and each is parsed at
// its absolute offset, so every candidate carries offsets into the
// original unit.
func parseUnit(unit *SourceUnit) (*stylesheet, error) {
	switch unit.Language {
	case LangHTML, LangJSX:
		return parseEmbedded(unit)
	default:
		return parseStylesheet(unit.Code, 0, 1)
	}
}

type fragment struct {
	css    string
	offset int
	line   int
	inline bool // style attribute: bare declaration list
}

func parseEmbedded(unit *SourceUnit) (*stylesheet, error) {
	merged := &stylesheet{}
	for _, frag := range extractFragments(unit.Code, unit.Language) {
		var (
			sheet *stylesheet
			err   error
		)
		if frag.inline {
			sheet, err = parseDeclarations(frag.css, frag.offset, frag.line)
		} else {
			sheet, err = parseStylesheet(frag.css, frag.offset, frag.line)
		}
		if err != nil {
			return nil, err
		}
		merged.rules = append(merged.rules, sheet.rules...)
	}
	return merged, nil
}

// extractFragments finds embedded CSS in HTML/JSX source: <style> blocks,
// style="..." attributes, and (for JSX) css`...` template literals.
// Structure, logic and props are never touched; only the CSS text inside
// these islands is eligible for rewriting.
func extractFragments(code, language string) []fragment {
	var frags []fragment
	frags = append(frags, styleBlocks(code)...)
	frags = append(frags, styleAttributes(code)...)
	if language == LangJSX {
		frags = append(frags, cssTemplates(code)...)
	}
	return frags
}

// styleBlocks extracts <style ...> ... </style> contents.
func styleBlocks(code string) []fragment {
	var frags []fragment
	lower := strings.ToLower(code)
	pos := 0
	for {
		open := strings.Index(lower[pos:], "<style")
		if open < 0 {
			break
		}
		open += pos
		gt := strings.Index(code[open:], ">")
		if gt < 0 {
			break
		}
		start := open + gt + 1
		end := strings.Index(lower[start:], "</style")
		if end < 0 {
			break
		}
		end += start
		line, _ := lineCol(code, start)
		frags = append(frags, fragment{css: code[start:end], offset: start, line: line})
		pos = end
	}
	return frags
}

// styleAttributes extracts style="..." and style='...' attribute values.
// JSX object-literal styles (style={{...}}) are JS expressions, not CSS
// text, and are skipped.
func styleAttributes(code string) []fragment {
	var frags []fragment
	pos := 0
	for {
		idx := strings.Index(code[pos:], "style=")
		if idx < 0 {
			break
		}
		idx += pos
		rest := idx + len("style=")
		if rest >= len(code) {
			break
		}
		quote := code[rest]
		if quote != '"' && quote != '\'' {
			pos = rest
			continue
		}
		end := strings.IndexByte(code[rest+1:], quote)
		if end < 0 {
			break
		}
		start := rest + 1
		end += start
		line, _ := lineCol(code, start)
		frags = append(frags, fragment{css: code[start:end], offset: start, line: line, inline: true})
		pos = end + 1
	}
	return frags
}

// cssTemplates extracts css`...` tagged template literals (styled
// component blocks). Templates containing ${} interpolation are skipped;
// rewriting around expressions is not safe.
func cssTemplates(code string) []fragment {
	var frags []fragment
	pos := 0
	for {
		idx := strings.Index(code[pos:], "css`")
		if idx < 0 {
			break
		}
		idx += pos
		start := idx + len("css`")
		end := strings.IndexByte(code[start:], '`')
		if end < 0 {
			break
		}
		end += start
		body := code[start:end]
		if !strings.Contains(body, "${") {
			line, _ := lineCol(code, start)
			frags = append(frags, fragment{css: body, offset: start, line: line, inline: true})
		}
		pos = end + 1
	}
	return frags
}
