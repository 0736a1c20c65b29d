package cssenhance

import (
	"encoding/json"
	"io"
	"time"

	engine "github.com/yacobolo/cssenhance"
)

// JSONReport is the structured JSON export schema for one run.
type JSONReport struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Files     []JSONFile  `json:"files"`
}

// JSONSummary contains high-level run counts
type JSONSummary struct {
	FilesScanned  int     `json:"files_scanned"`
	FilesSkipped  int     `json:"files_skipped"`
	FilesChanged  int     `json:"files_changed"`
	TotalChanges  int     `json:"total_changes"`
	TotalAdvisory int     `json:"total_advisory"`
	Malformed     int     `json:"malformed"`
	Excluded      int     `json:"excluded"`
	CacheHitRate  float64 `json:"cache_hit_rate,omitempty"`
}

// JSONFile carries the engine outcome for a single file. Change and
// candidate entries reuse the engine's own JSON encoding.
type JSONFile struct {
	Path      string                 `json:"path"`
	Changes   []engine.AppliedChange `json:"changes,omitempty"`
	Advisory  []engine.Candidate     `json:"advisory,omitempty"`
	Issues    []engine.Issue         `json:"issues,omitempty"`
	Metrics   *engine.MetricsDelta   `json:"metrics,omitempty"`
	Malformed bool                   `json:"malformed,omitempty"`
	Excluded  bool                   `json:"excluded,omitempty"`
	Cached    bool                   `json:"cached,omitempty"`
}

// WriteJSON writes the run report as indented JSON.
func WriteJSON(w io.Writer, version string, results []FileResult, stats ScanStats) error {
	report := buildJSONReport(version, results, stats)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func buildJSONReport(version string, results []FileResult, stats ScanStats) JSONReport {
	summary := Summarize(results, stats)

	report := JSONReport{
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Summary: JSONSummary{
			FilesScanned:  stats.FilesScanned,
			FilesSkipped:  stats.FilesSkipped,
			FilesChanged:  summary.FilesChanged,
			TotalChanges:  summary.TotalChanges,
			TotalAdvisory: summary.TotalAdvisory,
			Malformed:     summary.Malformed,
			Excluded:      summary.Excluded,
			CacheHitRate:  summary.CacheHitRate,
		},
		Files: make([]JSONFile, 0, len(results)),
	}

	for i := range results {
		r := &results[i]
		file := JSONFile{Path: r.Path}
		switch {
		case r.Result != nil:
			file.Changes = r.Result.Changes
			file.Advisory = r.Result.Advisory
			file.Metrics = &r.Result.MetricsDelta
			file.Malformed = r.Result.Malformed
			file.Excluded = r.Result.Excluded
			file.Cached = r.Result.Cached
		case r.Analysis != nil:
			file.Advisory = r.Analysis.Opportunities
			file.Issues = r.Analysis.Issues
			file.Metrics = &engine.MetricsDelta{
				Before: r.Analysis.Metrics,
				After:  r.Analysis.Metrics,
			}
			file.Malformed = r.Analysis.Malformed
			file.Excluded = r.Analysis.Excluded
		}
		report.Files = append(report.Files, file)
	}

	return report
}
