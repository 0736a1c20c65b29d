package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssenhance"
	report "github.com/yacobolo/cssenhance/internal/cssenhance"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [globs...]",
	Short: "Rewrite literal design values to token references",
	Long: `Scan files matching the given globs, replace high-confidence literal
values with design token references and surface borderline matches as
advisory suggestions. Without --write the rewritten code is not saved.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runEnhance,
}

func init() {
	f := enhanceCmd.Flags()
	f.Bool("write", false, "Write rewritten files back to disk")
	f.String("auto-apply", string(cssenhance.AutoApplySafe), "Auto-apply mode: safe|off|all")
	f.Int("max-changes", cssenhance.DefaultMaxChanges, "Maximum changes applied per file")
	f.Bool("strict", false, "Treat guardrail violations and advisories as failures (CI mode)")
	f.StringSlice("exclude", nil, "Glob patterns replacing the default exclusion list")
	f.Bool("cache", true, "Reuse cached results for unchanged inputs")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues", 0, "Max findings to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with findings")
	f.Bool("print-linter-name", true, "Show (cssenhance) suffix on findings")
}

func runEnhance(_ *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	files, stats, err := report.ExpandGlobPatterns(scanPatterns(args))
	if err != nil {
		return fmt.Errorf("expanding patterns: %w", err)
	}

	opts := buildOptions()
	eng := cssenhance.New(opts)

	var cache *cssenhance.ResultCache
	if getBoolWithFallback("cache", "enhance.cache", true) {
		cache = cssenhance.NewResultCache(nil)
	}

	write := getBoolWithFallback("write", "enhance.write", false)

	results := make([]report.FileResult, 0, len(files))
	for _, path := range files {
		result, err := enhanceFile(eng, cache, reg, path, write)
		if err != nil {
			return err
		}
		results = append(results, report.FileResult{Path: path, Result: result})
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	format := report.DetermineOutputFormat(
		getStringWithFallback("output-format", "output.format", ""), quiet)

	if !quiet {
		report.WriteOutput(os.Stdout, version, results, stats, format, buildReportConfig())
	}

	// Exit code logic - "Soft Gate" approach: advisories and malformed
	// files only fail the build in strict mode.
	if getBoolWithFallback("strict", "enhance.strict", false) {
		summary := report.Summarize(results, stats)
		if summary.TotalAdvisory > 0 || summary.Malformed > 0 {
			os.Exit(1)
		}
	}

	return nil
}

// enhanceFile runs one file through the engine and optionally writes the
// rewritten code back with the original permissions.
func enhanceFile(eng *cssenhance.Engine, cache *cssenhance.ResultCache, reg *cssenhance.Registry, path string, write bool) (*cssenhance.EnhancementResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	unit := cssenhance.SourceUnit{
		Code:     string(code),
		Language: report.LanguageForPath(path),
		FilePath: path,
	}

	var result *cssenhance.EnhancementResult
	if cache != nil {
		result, err = eng.EnhanceCached(unit, reg, nil, cache)
	} else {
		result, err = eng.Enhance(unit, reg, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("enhancing %s: %w", path, err)
	}

	if write && len(result.Changes) > 0 {
		if err := os.WriteFile(path, []byte(result.Code), info.Mode()); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return result, nil
}
