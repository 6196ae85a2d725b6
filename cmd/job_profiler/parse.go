package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-profiler/internal/parsing"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Tolerantly parse a raw model response into a canonical profile",
	Long:  "Parse a possibly noisy or fenced model response into a canonical profile. Input errors are reported with a specific kind so the caller can re-ask the model.",
	RunE:  runParse,
}

var (
	parseInputFile  string
	parseOutputFile string
	parsePretty     bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to raw model response file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseCmd.Flags().BoolVar(&parsePretty, "pretty", false, "Indent output JSON")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, _ []string) error {
	if parseInputFile == "" {
		return fmt.Errorf("--in is required")
	}
	raw, err := os.ReadFile(parseInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	profile, diags, err := parsing.ParseExtraction(string(raw))
	if err != nil {
		var empty *parsing.ModelResponseEmptyError
		if errors.As(err, &empty) {
			return fmt.Errorf("model response is empty; nothing to parse")
		}
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false, Prefix: "parse"})
	for _, d := range diags {
		logger.Warn("coercion diagnostic", "field", d.Field, "msg", d.Message)
	}

	return writeJSON(parseOutputFile, profile, parsePretty)
}
