package rules

import (
	"context"
	"strings"

	"github.com/jonathan/job-profiler/internal/types"
)

// matchLocation delegates to the location normalizer line by line; the
// first line that resolves to a city or country wins and becomes the
// source text.
func (e *Extractor) matchLocation(ctx context.Context, block types.ContentBlock, idx int) []types.RuleMatch {
	for _, line := range strings.Split(block.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		city, country := e.normalizer().ExtractLocation(ctx, line, "")
		if city == "" && country == "" {
			continue
		}
		var matches []types.RuleMatch
		if city != "" {
			matches = append(matches, types.RuleMatch{
				Field: "location.primary_city", Value: city, Confidence: 0.9,
				SourceText: line, Rule: RuleLocation, BlockIndex: idx, BlockType: block.Type,
			})
		}
		if country != "" {
			matches = append(matches, types.RuleMatch{
				Field: "location.country", Value: country, Confidence: 0.9,
				SourceText: line, Rule: RuleLocation, BlockIndex: idx, BlockType: block.Type,
			})
		}
		return matches
	}
	return nil
}
