package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssenhance"
	report "github.com/yacobolo/cssenhance/internal/cssenhance"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [globs...]",
	Short: "Report enhancement opportunities without rewriting",
	Long: `Scan files matching the given globs and report structural metrics and
token opportunities. Nothing is modified.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.Bool("strict", false, "Exit 1 on any finding (CI mode)")
	f.StringSlice("exclude", nil, "Glob patterns replacing the default exclusion list")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues", 0, "Max findings to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with findings")
	f.Bool("print-linter-name", true, "Show (cssenhance) suffix on findings")
}

func runAnalyze(_ *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	files, stats, err := report.ExpandGlobPatterns(scanPatterns(args))
	if err != nil {
		return fmt.Errorf("expanding patterns: %w", err)
	}

	eng := cssenhance.New(buildOptions())

	results := make([]report.FileResult, 0, len(files))
	totalIssues, errorCount := 0, 0
	for _, path := range files {
		code, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		unit := cssenhance.SourceUnit{
			Code:     string(code),
			Language: report.LanguageForPath(path),
			FilePath: path,
		}
		analysis, err := eng.Analyze(unit, reg, nil)
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", path, err)
		}

		totalIssues += len(analysis.Issues)
		for _, issue := range analysis.Issues {
			if issue.Severity == cssenhance.SeverityError {
				errorCount++
			}
		}
		results = append(results, report.FileResult{Path: path, Analysis: analysis})
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	format := report.DetermineOutputFormat(
		getStringWithFallback("output-format", "output.format", ""), quiet)

	if !quiet {
		report.WriteOutput(os.Stdout, version, results, stats, format, buildReportConfig())
	}

	// Exit code logic - "Soft Gate" approach
	if getBoolWithFallback("strict", "analyze.strict", false) {
		if totalIssues > 0 {
			os.Exit(1)
		}
	} else if errorCount > 0 {
		os.Exit(1)
	}

	return nil
}
