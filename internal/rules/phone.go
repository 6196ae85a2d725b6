package rules

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-profiler/internal/types"
)

// phoneRe is deliberately tolerant: optional +/00 country prefix,
// parenthesized area codes, and the usual separators. Candidates are
// filtered by digit count afterwards.
var (
	phoneRe      = regexp.MustCompile(`(?:\+|00)?\(?\d[\d()\s\-./]{5,}\d`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

const (
	phoneMinDigits = 7
	phoneMaxDigits = 20
)

func matchPhone(block types.ContentBlock, idx int) []types.RuleMatch {
	for _, candidate := range phoneRe.FindAllString(block.Text, -1) {
		normalized, ok := validPhone(candidate)
		if !ok {
			continue
		}
		return []types.RuleMatch{{
			Field:      "company.contact_phone",
			Value:      normalized,
			Confidence: 0.95,
			SourceText: candidate,
			Rule:       RulePhone,
			BlockIndex: idx,
			BlockType:  block.Type,
		}}
	}
	return nil
}

// validPhone applies the digit-count filter and collapses whitespace in
// the normalized value.
func validPhone(candidate string) (string, bool) {
	digits := 0
	for _, r := range candidate {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < phoneMinDigits || digits > phoneMaxDigits {
		return "", false
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(candidate, " ")), true
}
