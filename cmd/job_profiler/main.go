// Package main provides the job-profiler CLI: deterministic rule
// extraction over content blocks plus tolerant model-output parsing,
// merged into one canonical profile.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_profiler",
	Short: "Turn segmented job-posting blocks and model JSON into a canonical profile",
	Long:  "job_profiler runs deterministic rule extraction over pre-segmented job-posting blocks, tolerantly parses AI model output, and merges both into a fully-populated canonical profile with provenance metadata.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
