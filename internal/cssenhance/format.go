package cssenhance

// OutputFormat controls which sections of the run output are rendered.
type OutputFormat int

const (
	// OutputIssues prints issues and applied changes only (golangci-lint
	// style, the default).
	OutputIssues OutputFormat = iota
	// OutputSummary prints metrics and top opportunities without
	// individual issues.
	OutputSummary
	// OutputFull prints everything.
	OutputFull
	// OutputJSON prints the machine-readable report.
	OutputJSON
)

// DetermineOutputFormat selects the output format based on flags.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit --quiet wins (exit code only, output suppressed upstream)
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "issues", "":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	}

	// Invalid format falls back to the golangci-lint default
	return OutputIssues
}
