package cssenhance

import (
	"io"
	"os"
)

// WriteOutput renders the run results in the selected format.
func WriteOutput(w io.Writer, version string, results []FileResult, stats ScanStats, format OutputFormat, config ReportConfig) {
	switch format {
	case OutputIssues:
		// Changes and issues only (golangci-lint format)
		reporter := NewReporter(w, config)
		printFindings(reporter, results)
		reporter.PrintRunSummary(Summarize(results, stats))

	case OutputSummary:
		// Metrics and opportunities only (no individual findings)
		useColors := shouldUseColors(config)
		verbose := NewVerboseReporter(w, useColors)
		printDetails(verbose, results)

	case OutputFull:
		// Everything: findings + metrics + opportunities
		reporter := NewReporter(w, config)
		printFindings(reporter, results)
		reporter.PrintRunSummary(Summarize(results, stats))

		verbose := NewVerboseReporter(w, reporter.UseColors())
		printDetails(verbose, results)

	case OutputJSON:
		if err := WriteJSON(w, version, results, stats); err != nil {
			// Log error but don't crash
			os.Stderr.WriteString("Error writing JSON: " + err.Error() + "\n")
		}
	}
}

func printFindings(reporter *Reporter, results []FileResult) {
	for i := range results {
		r := &results[i]
		switch {
		case r.Result != nil:
			reporter.PrintChanges(r.Path, r.Result)
		case r.Analysis != nil:
			reporter.PrintIssues(r.Analysis.Issues)
		}
	}
}

func printDetails(verbose *VerboseReporter, results []FileResult) {
	for i := range results {
		r := &results[i]
		switch {
		case r.Result != nil:
			verbose.PrintMetricsDelta(r.Path, r.Result.MetricsDelta)
			verbose.PrintOpportunities(r.Result.Advisory)
		case r.Analysis != nil:
			verbose.PrintMetrics(r.Path, r.Analysis.Metrics)
			verbose.PrintOpportunities(r.Analysis.Opportunities)
		}
	}
}
