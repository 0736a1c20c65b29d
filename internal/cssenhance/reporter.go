package cssenhance

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	engine "github.com/yacobolo/cssenhance"
)

// Reporter handles formatting and outputting per-file findings.
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
	maxIssues       int
}

// NewReporter creates a new reporter with the given configuration.
func NewReporter(w io.Writer, config ReportConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(config),
		printLines:      config.PrintIssuedLines,
		printLinterName: config.PrintLinterName,
		maxIssues:       config.MaxIssues,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config ReportConfig) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues in golangci-lint format, sorted by
// file, then line, then column.
func (r *Reporter) PrintIssues(issues []engine.Issue) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})

	truncated := 0
	if r.maxIssues > 0 && len(issues) > r.maxIssues {
		truncated = len(issues) - r.maxIssues
		issues = issues[:r.maxIssues]
	}

	for _, issue := range issues {
		r.printIssue(issue)
	}

	if truncated > 0 {
		fmt.Fprintf(r.w, "... and %d more\n", truncated)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue engine.Issue) {
	// Format: file:line:col: message (linter)
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	// Print source lines with caret indicator
	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Handles tabs vs spaces so the caret lines up under the value.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	prefix := sourceLine[:prefixLen]

	// Build padding that matches tabs/spaces in the prefix
	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintChanges lists the applied changes and advisory suggestions for one
// enhanced file.
func (r *Reporter) PrintChanges(path string, result *engine.EnhancementResult) {
	for _, change := range result.Changes {
		location := fmt.Sprintf("%s:%d:%d:", path, change.Location.Line, change.Location.Column)
		fmt.Fprintf(r.w, "%s %s %s -> %s %s\n",
			RenderStyle(StyleCyan, location, r.useColors),
			RenderStyle(StyleGreen, "applied", r.useColors),
			renderValue(change.Before, "(insert)"),
			renderValue(change.After, "(remove)"),
			RenderStyle(StyleGray, fmt.Sprintf("(%s, %.2f)", change.Type, change.Confidence), r.useColors))
	}

	for _, c := range result.Advisory {
		location := fmt.Sprintf("%s:%d:%d:", path, c.Location.Line, c.Location.Column)
		fmt.Fprintf(r.w, "%s %s %s -> %s %s\n",
			RenderStyle(StyleCyan, location, r.useColors),
			RenderStyle(StyleYellow, "advisory", r.useColors),
			renderValue(c.Before, "(insert)"),
			renderValue(c.After, "(remove)"),
			RenderStyle(StyleGray, fmt.Sprintf("(%s, %.2f)", c.Type, c.Confidence), r.useColors))
	}
}

// renderValue keeps the one-line format: empty values become a
// placeholder (insertions have no Before, removals no After) and embedded
// newlines are escaped.
func renderValue(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	if strings.ContainsRune(v, '\n') {
		v = strings.ReplaceAll(v, "\n", "\\n")
	}
	return v
}

// PrintRunSummary outputs the end-of-run counts.
func (r *Reporter) PrintRunSummary(summary RunSummary) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintf(r.w, "%s scanned (%d skipped), %s in %s\n",
		pluralizeCount(summary.Stats.FilesScanned, "file", "files"),
		summary.Stats.FilesSkipped,
		pluralizeCount(summary.TotalChanges, "change", "changes"),
		pluralizeCount(summary.FilesChanged, "file", "files"))

	if summary.TotalAdvisory > 0 {
		fmt.Fprintf(r.w, "%s need review\n",
			pluralizeCount(summary.TotalAdvisory, "advisory suggestion", "advisory suggestions"))
	}
	if summary.Malformed > 0 {
		fmt.Fprintf(r.w, "%s left unchanged\n",
			pluralizeCount(summary.Malformed, "malformed file", "malformed files"))
	}
	if summary.CacheHitRate > 0 {
		fmt.Fprintf(r.w, "cache hit rate: %.0f%%\n", summary.CacheHitRate*100)
	}

	if summary.TotalAdvisory > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray,
			"Hint: Run with --output-format full to see metrics and advisory details", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
