package cssenhance

// Candidate change types produced by the rule passes.
const (
	TypeColor          = "color"
	TypeSpacing        = "spacing"
	TypeRadius         = "radius"
	TypeElevation      = "elevation"
	TypeTypography     = "typography"
	TypeAnimation      = "animation"
	TypeGradient       = "gradient"
	TypeStateVariation = "state-variation"
	TypeOptimize       = "optimize"
)

// Location identifies where a candidate was found in the source unit
type Location struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

// Candidate is a proposed, unapplied rewrite produced by a single rule pass.
// It is purely descriptive until scored by the confidence scorer and
// promoted (or not) by the progressive application controller.
type Candidate struct {
	Type         string   `json:"type"`
	Location     Location `json:"location"`
	Before       string   `json:"before"`
	After        string   `json:"after"`
	Confidence   float64  `json:"confidence"`
	BasedOn      string   `json:"basedOn,omitempty"`
	PatternMatch string   `json:"patternMatch,omitempty"`
	Ambiguous    bool     `json:"ambiguous,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`

	// Byte range of Before within the source unit. For insertion
	// candidates (state variations) start == end.
	start, end int

	property    string // CSS property the candidate rewrites
	exact       bool   // exact registry match vs tolerance fit
	stateScoped bool   // declaration lives inside a pseudo-state block
	fragile     bool   // value participates in a fragile layout pattern
}

// AppliedChange is a Candidate that crossed the auto-apply threshold,
// passed guardrails and survived metric verification.
type AppliedChange struct {
	Candidate
	AppliedOrder int  `json:"appliedOrder"`
	Verified     bool `json:"verified"`
}

// EnhancementResult is the final output of one enhancement invocation.
// len(Changes) never exceeds Options.MaxChanges.
type EnhancementResult struct {
	Code         string          `json:"code"`
	Changes      []AppliedChange `json:"changes"`
	Advisory     []Candidate     `json:"advisory,omitempty"`
	MetricsDelta MetricsDelta    `json:"metricsDelta"`
	Signature    string          `json:"cachingSignature,omitempty"`

	// Malformed is set when the source could not be parsed; Code is then
	// the input returned unchanged.
	Malformed bool `json:"malformed,omitempty"`
	// Excluded is set when the path matched an exclusion pattern or the
	// file carried a file-scope disable marker.
	Excluded bool `json:"excluded,omitempty"`

	// Cache metadata, populated only by EnhanceCached.
	Cached       bool    `json:"cached,omitempty"`
	CacheHitRate float64 `json:"cacheHitRate,omitempty"`
}

// Analysis is the read-only counterpart of EnhancementResult.
type Analysis struct {
	Metrics       Metrics     `json:"metrics"`
	Issues        []Issue     `json:"issues"`
	Opportunities []Candidate `json:"opportunities"`
	Malformed     bool        `json:"malformed,omitempty"`
	Excluded      bool        `json:"excluded,omitempty"`
}

// lineCol converts a byte offset into a 1-based line/column pair.
func lineCol(code string, off int) (line, col int) {
	if off > len(code) {
		off = len(code)
	}
	line, col = 1, 1
	for i := 0; i < off; i++ {
		if code[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// locationAt builds a Location for an offset within a source unit.
func locationAt(unit *SourceUnit, off int) Location {
	line, col := lineCol(unit.Code, off)
	return Location{File: unit.FilePath, Line: line, Column: col}
}
