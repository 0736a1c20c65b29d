package cssenhance

import (
	engine "github.com/yacobolo/cssenhance"
)

// ReportConfig controls how results are rendered to the terminal.
type ReportConfig struct {
	UseColors        bool
	PrintIssuedLines bool
	PrintLinterName  bool
	// MaxIssues limits the number of issues shown (0 = unlimited).
	MaxIssues int
}

// FileResult pairs one scanned file with its engine outcome. Exactly one
// of Result and Analysis is set depending on the command that produced it.
type FileResult struct {
	Path     string
	Result   *engine.EnhancementResult
	Analysis *engine.Analysis
}

// Changed reports whether the enhancement rewrote the file.
func (f *FileResult) Changed() bool {
	return f.Result != nil && len(f.Result.Changes) > 0
}

// RunSummary aggregates outcomes across all scanned files.
type RunSummary struct {
	Stats         ScanStats
	FilesChanged  int
	TotalChanges  int
	TotalAdvisory int
	Malformed     int
	Excluded      int
	CacheHitRate  float64
}

// Summarize folds per-file results into run totals.
func Summarize(results []FileResult, stats ScanStats) RunSummary {
	summary := RunSummary{Stats: stats}
	for i := range results {
		r := &results[i]
		switch {
		case r.Result != nil:
			if len(r.Result.Changes) > 0 {
				summary.FilesChanged++
			}
			summary.TotalChanges += len(r.Result.Changes)
			summary.TotalAdvisory += len(r.Result.Advisory)
			if r.Result.Malformed {
				summary.Malformed++
			}
			if r.Result.Excluded {
				summary.Excluded++
			}
			if r.Result.CacheHitRate > 0 {
				summary.CacheHitRate = r.Result.CacheHitRate
			}
		case r.Analysis != nil:
			summary.TotalAdvisory += len(r.Analysis.Opportunities)
			if r.Analysis.Malformed {
				summary.Malformed++
			}
			if r.Analysis.Excluded {
				summary.Excluded++
			}
		}
	}
	return summary
}
