package cssenhance

// Issue reports one analysis finding in golangci-lint format, so editor
// and CI integrations can reuse existing issue tooling.
type Issue struct {
	FromLinter  string   `json:"FromLinter"`
	Text        string   `json:"Text"`
	Severity    string   `json:"Severity"`
	SourceLines []string `json:"SourceLines,omitempty"`
	Pos         IssuePos `json:"Pos"`
}

// IssuePos specifies the exact location of an issue.
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"`
}

// Issue severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue message templates.
const (
	IssueHardcodedValue = "hardcoded %s value %q can use token %s"
	IssueAmbiguousValue = "value %q matches multiple tokens (%s); pick one explicitly"
	IssueMalformed      = "source fragment could not be parsed; left unchanged"
)

const linterName = "cssenhance"
