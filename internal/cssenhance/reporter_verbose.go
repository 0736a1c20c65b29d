package cssenhance

import (
	"fmt"
	"io"

	engine "github.com/yacobolo/cssenhance"
)

// VerboseReporter handles metrics and opportunity details.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintMetrics outputs the structural metrics for one analyzed file.
func (r *VerboseReporter) PrintMetrics(path string, metrics engine.Metrics) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, path, r.useColors))
	fmt.Fprintln(r.w, "------------------------")

	fmt.Fprintf(r.w, "Declarations:        %d\n", metrics.Declarations)
	fmt.Fprintf(r.w, "Spacing Consistency: %.1f%%\n", metrics.SpacingConsistency*100)
	if metrics.MinContrast > 0 {
		fmt.Fprintf(r.w, "Min Contrast:        %.2f:1\n", metrics.MinContrast)
	}

	fmt.Fprint(r.w, "Token Adherence:     ")
	printProgressBar(r.w, metrics.TokenAdherence*100)
}

// PrintMetricsDelta outputs the before/after movement for one enhanced file.
func (r *VerboseReporter) PrintMetricsDelta(path string, delta engine.MetricsDelta) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, path, r.useColors))
	fmt.Fprintln(r.w, "------------------------")

	fmt.Fprintf(r.w, "Token Adherence:     %.1f%% -> %.1f%%\n",
		delta.Before.TokenAdherence*100, delta.After.TokenAdherence*100)
	fmt.Fprintf(r.w, "Spacing Consistency: %.1f%% -> %.1f%%\n",
		delta.Before.SpacingConsistency*100, delta.After.SpacingConsistency*100)
	if delta.Before.MinContrast > 0 || delta.After.MinContrast > 0 {
		fmt.Fprintf(r.w, "Min Contrast:        %.2f:1 -> %.2f:1\n",
			delta.Before.MinContrast, delta.After.MinContrast)
	}
}

// PrintOpportunities shows the highest-confidence unapplied candidates.
func (r *VerboseReporter) PrintOpportunities(opportunities []engine.Candidate) {
	if len(opportunities) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Opportunities", r.useColors))
	fmt.Fprintln(r.w, "-------------")

	for i, c := range opportunities {
		if i >= 10 {
			fmt.Fprintf(r.w, "... and %d more\n", len(opportunities)-i)
			break
		}
		suffix := ""
		if c.Ambiguous {
			suffix = " (ambiguous)"
		}
		fmt.Fprintf(r.w, "%d. %s -> %s (%.2f)%s\n",
			i+1, renderValue(c.Before, "(insert)"), renderValue(c.After, "(remove)"), c.Confidence, suffix)
	}
}

// printProgressBar prints a visual progress bar
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
