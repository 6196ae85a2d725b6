// Package pipeline orchestrates one extraction/merge cycle: content
// blocks and an optional model response go in, a canonical profile with
// provenance metadata comes out. The pipeline is a synchronous, pure
// transformation; the caller owns persistence across cycles.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"dario.cat/mergo"

	"github.com/jonathan/job-profiler/internal/coerce"
	"github.com/jonathan/job-profiler/internal/location"
	"github.com/jonathan/job-profiler/internal/parsing"
	"github.com/jonathan/job-profiler/internal/patch"
	"github.com/jonathan/job-profiler/internal/registry"
	"github.com/jonathan/job-profiler/internal/rules"
	"github.com/jonathan/job-profiler/internal/types"
)

// Options configures one pipeline run. The zero value runs heuristics-only
// with default parallelism.
type Options struct {
	// Recognizer is the optional external place-entity capability.
	Recognizer location.Recognizer
	// RecognizerTimeout bounds a single recognizer call.
	RecognizerTimeout time.Duration
	// Workers shards block-level rule extraction; <=0 picks a default.
	Workers int
	// Language hint forwarded to the recognizer.
	Language string
	// Prior carries provenance from an earlier cycle so locks are not
	// lost when a later pass runs.
	Prior *types.RuleProvenance
}

// Result is the outcome of one cycle.
type Result struct {
	Profile     registry.Profile
	Provenance  *types.RuleProvenance
	Diagnostics []coerce.Diagnostic
	// InputErr records a model-response parse failure. It is non-fatal:
	// the rule-derived patch is preserved and coerced regardless.
	InputErr error
}

// Run executes one extraction/merge cycle over immutable inputs.
func Run(ctx context.Context, blocks []types.ContentBlock, modelResponse string, opts Options) (*Result, error) {
	if err := types.ValidateBlocks(blocks); err != nil {
		return nil, fmt.Errorf("invalid content blocks: %w", err)
	}

	extractor := &rules.Extractor{
		Normalizer: &location.Normalizer{
			Recognizer: opts.Recognizer,
			Timeout:    opts.RecognizerTimeout,
			Lang:       opts.Language,
		},
		Workers: opts.Workers,
	}
	matches := extractor.ApplyRules(ctx, blocks)
	rulePatch := patch.MatchesToPatch(matches)
	provenance := patch.BuildRuleMetadata(matches)

	result := &Result{Provenance: provenance}

	merged := make(map[string]any)
	if modelResponse != "" {
		obj, err := parsing.DecodeObject(modelResponse)
		if err != nil {
			// Input errors must not discard the rule-derived progress.
			result.InputErr = err
		} else {
			merged = obj
		}
	}
	// Locked rule fields override whatever the model produced.
	if err := mergo.Merge(&merged, rulePatch, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge rule patch: %w", err)
	}

	result.Profile, result.Diagnostics = coerce.CoerceAndFill(merged)

	if opts.Prior != nil {
		combined := &types.RuleProvenance{
			RunID: opts.Prior.RunID,
			Rules: make(map[string]types.RuleMetadata, len(opts.Prior.Rules)+len(provenance.Rules)),
		}
		for field, meta := range opts.Prior.Rules {
			combined.Rules[field] = meta
		}
		combined.Merge(provenance)
		result.Provenance = combined
	}
	return result, nil
}
