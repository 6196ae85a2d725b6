package rules

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-profiler/internal/types"
)

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// matchEmail finds the first RFC-shaped email literal in the block text.
func matchEmail(block types.ContentBlock, idx int) []types.RuleMatch {
	found := emailRe.FindString(block.Text)
	if found == "" {
		return nil
	}
	return []types.RuleMatch{{
		Field:      "company.contact_email",
		Value:      strings.ToLower(found),
		Confidence: 0.99,
		SourceText: found,
		Rule:       RuleEmail,
		BlockIndex: idx,
		BlockType:  block.Type,
	}}
}

// validEmail reports whether a table cell value is a single email literal.
func validEmail(value string) (string, bool) {
	found := emailRe.FindString(value)
	if found == "" {
		return "", false
	}
	return strings.ToLower(found), true
}
