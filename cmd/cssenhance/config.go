package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/cssenhance"
	report "github.com/yacobolo/cssenhance/internal/cssenhance"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssenhance.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence; only flags that were explicitly set)
	// Merge flags from the specific command and its parent (root) flags
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSENH_* prefix)
	if err := k.Load(env.Provider("CSSENH_", ".", func(s string) string {
		// CSSENH_ENHANCE_AUTO_APPLY -> enhance.auto.apply
		// CSSENH_QUIET -> quiet
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSENH_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildOptions constructs the engine's Options struct from koanf state.
func buildOptions() cssenhance.Options {
	return cssenhance.Options{
		AutoApply:       cssenhance.AutoApplyMode(getStringWithFallback("auto-apply", "enhance.auto-apply", string(cssenhance.AutoApplySafe))),
		MaxChanges:      getIntWithFallback("max-changes", "enhance.max-changes", cssenhance.DefaultMaxChanges),
		Strict:          getBoolWithFallback("strict", "enhance.strict", false),
		ExcludePatterns: getStringsWithFallback("exclude", "enhance.exclude"),
	}
}

// buildReportConfig constructs the reporter configuration from koanf state.
func buildReportConfig() report.ReportConfig {
	return report.ReportConfig{
		UseColors:        getBoolWithFallback("color", "color", false),
		PrintIssuedLines: getBoolWithFallback("print-lines", "output.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "output.print-linter-name", true),
		MaxIssues:        getIntWithFallback("max-issues", "output.max-issues", 0),
	}
}

// scanPatterns resolves the file patterns to scan: positional args win,
// then the config file, then the defaults.
func scanPatterns(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if patterns := k.Strings("paths"); len(patterns) > 0 {
		return patterns
	}
	return []string{
		"**/*.css",
		"**/*.html",
		"**/*.jsx",
		"**/*.tsx",
	}
}

// loadRegistry reads the configured token file into a Registry.
func loadRegistry() (*cssenhance.Registry, error) {
	path := getStringWithFallback("tokens", "tokens", "design-tokens.yaml")
	ts, version, err := report.LoadTokenFile(path)
	if err != nil {
		return nil, err
	}
	return cssenhance.LoadRegistry(ts, version)
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key.
func getStringsWithFallback(flagKey, configKey string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	return k.Strings(configKey)
}
