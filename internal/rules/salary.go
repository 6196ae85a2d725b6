package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/job-profiler/internal/types"
)

// salaryRe captures an optional keyword prefix, an optional currency
// token before, between, or after the numbers, a required minimum and an
// optional maximum separated by a dash or "to"/"bis". Bare numbers are
// not salary evidence: a match without a keyword or currency is dropped.
var salaryRe = regexp.MustCompile(
	`(?i)(?:(salary|gehalt|compensation|vergütung|pay)\s*[:\-]?\s*)?` +
		`(€|\$|£|EUR|USD|GBP|CHF)?\s*` +
		`(\d{1,3}(?:[.,\s]\d{3})+|\d+)\s?([kK]\b)?` +
		`(?:\s*(?:-|–|—|\bto\b|\bbis\b)\s*` +
		`(€|\$|£|EUR|USD|GBP|CHF)?\s*` +
		`(\d{1,3}(?:[.,\s]\d{3})+|\d+)\s?([kK]\b)?)?` +
		`\s*(€|\$|£|EUR|USD|GBP|CHF)?`)

// currencyISO maps the recognized symbols and codes to ISO 4217. Unmapped
// tokens yield no currency match.
var currencyISO = map[string]string{
	"€":   "EUR",
	"EUR": "EUR",
	"$":   "USD",
	"USD": "USD",
	"£":   "GBP",
	"GBP": "GBP",
	"CHF": "CHF",
}

func matchSalary(block types.ContentBlock, idx int) []types.RuleMatch {
	facts := salaryFacts(block.Text)
	for i := range facts {
		facts[i].BlockIndex = idx
		facts[i].BlockType = block.Type
	}
	return facts
}

// salaryFacts runs the salary pattern over text and expands the first
// evidenced match into salary_min, salary_max, currency, and
// salary_provided rule matches.
func salaryFacts(text string) []types.RuleMatch {
	for _, m := range salaryRe.FindAllStringSubmatch(text, -1) {
		keyword, cur1, num1, k1 := m[1], m[2], m[3], m[4]
		cur2, num2, k2, cur3 := m[5], m[6], m[7], m[8]

		if keyword == "" && cur1 == "" && cur2 == "" && cur3 == "" {
			continue
		}
		minVal, err := parseAmount(num1, k1)
		if err != nil {
			continue
		}
		maxVal := minVal
		if num2 != "" {
			if v, err := parseAmount(num2, k2); err == nil {
				maxVal = v
			}
		}

		source := strings.TrimSpace(m[0])
		facts := []types.RuleMatch{
			{Field: "compensation.salary_min", Value: minVal, Confidence: 0.92, SourceText: source, Rule: RuleSalary},
			{Field: "compensation.salary_max", Value: maxVal, Confidence: 0.92, SourceText: source, Rule: RuleSalary},
		}
		if iso, ok := currencyISO[strings.ToUpper(firstNonEmpty(cur1, cur2, cur3))]; ok {
			facts = append(facts, types.RuleMatch{
				Field: "compensation.currency", Value: iso, Confidence: 0.9, SourceText: source, Rule: RuleSalary,
			})
		}
		facts = append(facts, types.RuleMatch{
			Field: "compensation.salary_provided", Value: true, Confidence: 0.92, SourceText: source, Rule: RuleSalary,
		})
		return facts
	}
	return nil
}

// parseAmount normalizes a captured number: spaces stripped, a trailing k
// multiplies by 1000, and both "." and "," are treated as thousands
// separators and removed. No decimal precision survives.
func parseAmount(num, kSuffix string) (float64, error) {
	cleaned := strings.NewReplacer(" ", "", "\u00a0", "", ".", "", ",", "").Replace(num)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if kSuffix != "" {
		v *= 1000
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
