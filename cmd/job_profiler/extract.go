package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-profiler/internal/coerce"
	"github.com/jonathan/job-profiler/internal/config"
	"github.com/jonathan/job-profiler/internal/pipeline"
	"github.com/jonathan/job-profiler/internal/registry"
	"github.com/jonathan/job-profiler/internal/schemas"
	"github.com/jonathan/job-profiler/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a canonical profile from content blocks and optional model output",
	RunE:  runExtract,
}

var (
	extractBlocksFile string
	extractModelFile  string
	extractOutputFile string
	extractConfigFile string
	extractWorkers    int
	extractLanguage   string
	extractTimeoutMS  int
	extractValidate   bool
	extractPretty     bool
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractBlocksFile, "blocks", "b", "", "Path to content blocks JSON file (required)")
	extractCmd.Flags().StringVar(&extractModelFile, "model-response", "", "Path to raw model response file (optional)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractCmd.Flags().StringVarP(&extractConfigFile, "config", "c", "", "Path to JSON config file")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "Worker count for block sharding (0 = auto)")
	extractCmd.Flags().StringVar(&extractLanguage, "lang", "", "Language hint for the place-entity recognizer")
	extractCmd.Flags().IntVar(&extractTimeoutMS, "recognizer-timeout-ms", 0, "Timeout per recognizer call in milliseconds")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "Validate the output profile against the registry schema")
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", false, "Indent output JSON")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(extractCmd)
}

// extractOutput is the document written by the extract command.
type extractOutput struct {
	Profile     registry.Profile      `json:"profile"`
	Provenance  *types.RuleProvenance `json:"provenance"`
	Diagnostics []coerce.Diagnostic   `json:"diagnostics,omitempty"`
}

func runExtract(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Blocks:              extractBlocksFile,
		ModelResponse:       extractModelFile,
		Output:              extractOutputFile,
		Workers:             extractWorkers,
		Language:            extractLanguage,
		RecognizerTimeoutMS: extractTimeoutMS,
		ValidateSchema:      extractValidate,
		Pretty:              extractPretty,
		Verbose:             extractVerbose,
	}
	if extractConfigFile != "" {
		fileCfg, err := config.LoadConfig(extractConfigFile)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Blocks == "" {
		return fmt.Errorf("--blocks is required")
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false, Prefix: "extract"})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	data, err := os.ReadFile(cfg.Blocks)
	if err != nil {
		return fmt.Errorf("failed to read blocks file: %w", err)
	}
	var blocks []types.ContentBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return fmt.Errorf("failed to parse blocks JSON: %w", err)
	}
	logger.Debug("loaded content blocks", "count", len(blocks))

	var modelResponse string
	if cfg.ModelResponse != "" {
		raw, err := os.ReadFile(cfg.ModelResponse)
		if err != nil {
			return fmt.Errorf("failed to read model response file: %w", err)
		}
		modelResponse = string(raw)
	}

	result, err := pipeline.Run(context.Background(), blocks, modelResponse, pipeline.Options{
		Workers:           cfg.Workers,
		Language:          cfg.Language,
		RecognizerTimeout: time.Duration(cfg.RecognizerTimeoutMS) * time.Millisecond,
	})
	if err != nil {
		return err
	}

	if result.InputErr != nil {
		logger.Warn("model response could not be parsed; keeping rule-derived fields", "err", result.InputErr)
	}
	for _, d := range result.Diagnostics {
		logger.Warn("coercion diagnostic", "field", d.Field, "msg", d.Message)
	}
	logger.Debug("extraction finished",
		"locked", len(result.Provenance.LockedFields),
		"high_confidence", len(result.Provenance.HighConfidenceFields))

	if cfg.ValidateSchema {
		if err := schemas.ValidateProfile(result.Profile); err != nil {
			return fmt.Errorf("output profile does not validate: %w", err)
		}
	}

	out := extractOutput{
		Profile:     result.Profile,
		Provenance:  result.Provenance,
		Diagnostics: result.Diagnostics,
	}
	return writeJSON(cfg.Output, out, cfg.Pretty)
}

func writeJSON(path string, value any, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
