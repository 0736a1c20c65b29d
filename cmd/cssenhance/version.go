package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/cssenhance
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cssenhance version",
	Long:  "Print the cssenhance version. Registry versions come from the token file, not from here.",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("cssenhance version %s\n", version)
	},
}
