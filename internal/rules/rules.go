// Package rules implements the deterministic rule extraction engine. It
// mines structured facts out of free-text and table-layout content blocks
// and resolves same-field conflicts through a fixed priority table.
package rules

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-profiler/internal/location"
	"github.com/jonathan/job-profiler/internal/types"
)

// Rule identifiers, carried in RuleMatch.Rule and keyed by the priority
// table.
const (
	RuleEmail    = "regex.email"
	RulePhone    = "regex.phone"
	RuleSalary   = "regex.salary"
	RuleLocation = "regex.location"
	RuleIndustry = "regex.industry"
	RuleLayout   = "table.layout"
)

// rulePriorities resolves same-field conflicts: higher priority wins, ties
// break on confidence, remaining ties keep the first-seen match. The
// comparator is total and deterministic, so partial match maps can be
// merged pairwise in any sharding arrangement.
var rulePriorities = map[string]int{
	RuleEmail:    400,
	RulePhone:    400,
	RuleSalary:   350,
	RuleLocation: 300,
	RuleIndustry: 250,
	RuleLayout:   100,
}

// Extractor runs the rule matchers over content blocks. The zero value is
// usable; Normalizer defaults to heuristics-only location resolution.
type Extractor struct {
	Normalizer *location.Normalizer
	Workers    int
}

func (e *Extractor) normalizer() *location.Normalizer {
	if e.Normalizer != nil {
		return e.Normalizer
	}
	return &location.Normalizer{}
}

// ApplyRules runs every matcher over every block and returns the winning
// match per field. Blocks are sharded across workers; the reduction is
// commutative given the priority comparator, so results do not depend on
// scheduling.
func (e *Extractor) ApplyRules(ctx context.Context, blocks []types.ContentBlock) map[string]types.RuleMatch {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(blocks) {
		workers = len(blocks)
	}
	if workers <= 1 {
		return e.extractRange(ctx, blocks, 0, len(blocks))
	}

	chunk := (len(blocks) + workers - 1) / workers
	partials := make([]map[string]types.RuleMatch, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := min(start+chunk, len(blocks))
		g.Go(func() error {
			partials[w] = e.extractRange(gctx, blocks, start, end)
			return nil
		})
	}
	_ = g.Wait() // matchers never return errors; failures are isolated per matcher

	result := make(map[string]types.RuleMatch)
	for _, partial := range partials {
		mergeMatches(result, partial)
	}
	return result
}

func (e *Extractor) extractRange(ctx context.Context, blocks []types.ContentBlock, start, end int) map[string]types.RuleMatch {
	out := make(map[string]types.RuleMatch)
	for i := start; i < end; i++ {
		e.extractBlock(ctx, blocks[i], i, out)
	}
	return out
}

// extractBlock runs the layout matcher first on table blocks; fields it
// produces are skipped by the free-text matchers on the same block
// (layout wins locally, never globally).
func (e *Extractor) extractBlock(ctx context.Context, block types.ContentBlock, idx int, out map[string]types.RuleMatch) {
	produced := make(map[string]bool)
	if block.Type == types.BlockTable {
		for _, m := range safeMatches(func() []types.RuleMatch { return e.matchLayout(ctx, block, idx) }) {
			produced[m.Field] = true
			addMatch(out, m)
		}
	}

	matchers := []func() []types.RuleMatch{
		func() []types.RuleMatch { return matchEmail(block, idx) },
		func() []types.RuleMatch { return matchPhone(block, idx) },
		func() []types.RuleMatch { return matchSalary(block, idx) },
		func() []types.RuleMatch { return e.matchLocation(ctx, block, idx) },
		func() []types.RuleMatch { return matchIndustry(block, idx) },
	}
	for _, matcher := range matchers {
		for _, m := range safeMatches(matcher) {
			if produced[m.Field] {
				continue
			}
			addMatch(out, m)
		}
	}
}

// safeMatches isolates matcher failures: a panicking matcher contributes
// nothing instead of aborting the remaining matchers and blocks.
func safeMatches(fn func() []types.RuleMatch) (matches []types.RuleMatch) {
	defer func() {
		if recover() != nil {
			matches = nil
		}
	}()
	return fn()
}

func addMatch(out map[string]types.RuleMatch, m types.RuleMatch) {
	if current, ok := out[m.Field]; ok {
		out[m.Field] = better(current, m)
		return
	}
	out[m.Field] = m
}

func mergeMatches(dst, src map[string]types.RuleMatch) {
	for _, m := range src {
		addMatch(dst, m)
	}
}

// better picks the winner between the first-seen match a and the
// challenger b: higher priority, then higher confidence, then a.
func better(a, b types.RuleMatch) types.RuleMatch {
	pa, pb := rulePriorities[a.Rule], rulePriorities[b.Rule]
	if pb > pa {
		return b
	}
	if pb == pa && b.Confidence > a.Confidence {
		return b
	}
	return a
}
