package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssenhance",
	Short: "Token-aware CSS enhancement engine",
	Long: `Replace literal design values with design token references.
Changes above the confidence gate are applied automatically;
borderline matches are surfaced as advisory suggestions.`,
	// Default behavior: run enhance (dry-run unless --write) when no
	// subcommand is given. We must call loadConfig here because PreRunE
	// of enhanceCmd is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runEnhance(enhanceCmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".cssenhance.yaml", "Config file path")
	rootCmd.PersistentFlags().String("tokens", "design-tokens.yaml", "Design token registry file")

	rootCmd.AddCommand(enhanceCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
