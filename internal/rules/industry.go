package rules

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-profiler/internal/types"
)

var industryRe = regexp.MustCompile(`(?im)^\s*(?:branche|industry)\s*[:\-]\s*(.+)$`)

// matchIndustry extracts a labeled "Branche/Industry: <value>" line.
// Values carrying URL markers or @ are contact noise, not industries.
func matchIndustry(block types.ContentBlock, idx int) []types.RuleMatch {
	m := industryRe.FindStringSubmatch(block.Text)
	if m == nil {
		return nil
	}
	value := strings.TrimSpace(m[1])
	lower := strings.ToLower(value)
	if value == "" || strings.Contains(lower, "http") || strings.Contains(lower, "www.") || strings.Contains(value, "@") {
		return nil
	}
	return []types.RuleMatch{{
		Field:      "company.industry",
		Value:      value,
		Confidence: 0.85,
		SourceText: strings.TrimSpace(m[0]),
		Rule:       RuleIndustry,
		BlockIndex: idx,
		BlockType:  block.Type,
	}}
}
