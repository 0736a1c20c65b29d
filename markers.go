package cssenhance

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// In-source ignore markers, recognized verbatim inside any comment style.
const (
	MarkerDisableFile     = "cssenhance:disable-file"
	MarkerDisableNextLine = "cssenhance:disable-next-line"
	MarkerDisableLine     = "cssenhance:disable-line"
)

// defaultExcludePatterns match vendor, build and generated paths. Units
// from these paths yield zero candidates regardless of registry.
var defaultExcludePatterns = []string{
	"**/vendor/**",
	"**/node_modules/**",
	"**/dist/**",
	"**/build/**",
	"**/out/**",
	"**/.next/**",
	"**/coverage/**",
	"**/*.min.css",
	"**/*.min.js",
	"**/*.gen.*",
	"**/*_templ.go",
}

// pathExcluded checks a unit path against doublestar exclusion patterns.
func pathExcluded(path string, patterns []string) bool {
	if path == "" {
		return false
	}
	slashed := filepath.ToSlash(path)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
	}
	return false
}

// markerSet is the per-unit suppression state derived from ignore
// markers.
type markerSet struct {
	fileDisabled bool
	lines        map[int]bool // suppressed 1-based lines
}

func (m markerSet) suppresses(line int) bool {
	return m.fileDisabled || m.lines[line]
}

// scanMarkers walks the raw unit text line by line. Markers are matched on
// raw lines rather than parsed comments so the three scopes behave
// identically in CSS, HTML and JSX comment styles.
func scanMarkers(code string) markerSet {
	ms := markerSet{lines: make(map[int]bool)}
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		switch {
		case strings.Contains(line, MarkerDisableFile):
			ms.fileDisabled = true
			return ms
		case strings.Contains(line, MarkerDisableNextLine):
			ms.lines[i+2] = true
		case strings.Contains(line, MarkerDisableLine):
			ms.lines[i+1] = true
		}
	}
	return ms
}

// filterSuppressed drops candidates on suppressed lines.
func filterSuppressed(cands []Candidate, ms markerSet) []Candidate {
	if ms.fileDisabled {
		return nil
	}
	if len(ms.lines) == 0 {
		return cands
	}
	kept := cands[:0]
	for _, c := range cands {
		if !ms.lines[c.Location.Line] {
			kept = append(kept, c)
		}
	}
	return kept
}
