package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate default config and token registry files",
	Long: `Create a .cssenhance.yaml configuration file and a starter
design-tokens.yaml registry in the current directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".cssenhance.yaml"); err == nil && !force {
			return fmt.Errorf(".cssenhance.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".cssenhance.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
		fmt.Println("Created .cssenhance.yaml")

		// Never clobber an existing token registry, even with --force
		if _, err := os.Stat("design-tokens.yaml"); os.IsNotExist(err) {
			if err := os.WriteFile("design-tokens.yaml", []byte(starterTokens), 0644); err != nil {
				return fmt.Errorf("writing token file: %w", err)
			}
			fmt.Println("Created design-tokens.yaml")
		}

		return nil
	},
}

const defaultConfig = `# cssenhance configuration
# Docs: https://github.com/yacobolo/cssenhance

# Shared settings
tokens: design-tokens.yaml
verbose: false

# Files to scan when no globs are given on the command line
paths:
  - "**/*.css"
  - "**/*.html"
  - "**/*.jsx"
  - "**/*.tsx"

# Enhancement settings
enhance:
  auto-apply: safe       # safe | off | all
  max-changes: 5
  strict: false
  cache: true
  # exclude:             # replaces the built-in vendor/build exclusions
  #   - "legacy/**"

# Output settings
output:
  format: issues         # issues | summary | full | json
  max-issues: 0          # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

const starterTokens = `# cssenhance design token registry
version: "1"

tokens:
  colors:
    color-primary: "#3b82f6"
    color-primary-hover: "#2563eb"
    color-surface: "#ffffff"
    color-text: "#111827"
  spacing:
    spacing-xs: "4px"
    spacing-sm: "8px"
    spacing-md: "16px"
    spacing-lg: "24px"
    spacing-xl: "32px"
  radii:
    radius-sm: "4px"
    radius-md: "8px"
    radius-full: "9999px"
  elevation:
    shadow-low: "0 1px 2px rgba(0, 0, 0, 0.05)"
    shadow-medium: "0 4px 6px rgba(0, 0, 0, 0.1)"
  typography:
    text-sm: "14px"
    text-base: "16px"
    text-lg: "20px"
  animation:
    duration-fast: "150ms"
    duration-normal: "300ms"
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
