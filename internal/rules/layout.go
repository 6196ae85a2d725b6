package rules

import (
	"context"
	"strings"

	"github.com/jonathan/job-profiler/internal/types"
)

// layoutHeaders maps table header synonyms (case-insensitive, trailing
// colon stripped) to field classes handled by the layout matcher.
var layoutHeaders = map[string]string{
	"email":      "email",
	"e-mail":     "email",
	"mail":       "email",
	"phone":      "phone",
	"telefon":    "phone",
	"tel":        "phone",
	"salary":     "salary",
	"gehalt":     "salary",
	"vergütung":  "salary",
	"standort":   "location",
	"einsatzort": "location",
	"arbeitsort": "location",
	"location":   "location",
	"city":       "location",
	"ort":        "location",
	"land":       "country",
	"country":    "country",
	"branche":    "industry",
	"industry":   "industry",
}

// layoutSalaryCap bounds the confidence of salary facts found in table
// cells below the free-text salary matcher.
const layoutSalaryCap = 0.88

// matchLayout maps key/value table rows to canonical fields. Salary cells
// rerun the salary matcher, email and phone cells reuse the regex
// validators, location cells delegate to the normalizer with the header
// as classification hint, and any other mapped header becomes a single
// opaque string match.
func (e *Extractor) matchLayout(ctx context.Context, block types.ContentBlock, idx int) []types.RuleMatch {
	var matches []types.RuleMatch
	for _, row := range block.TableRows() {
		header := strings.TrimSpace(row[0])
		value := strings.TrimSpace(row[1])
		if value == "" {
			continue
		}
		class, ok := layoutHeaders[normalizeHeader(header)]
		if !ok {
			continue
		}

		base := types.RuleMatch{
			SourceText: header + ": " + value,
			Rule:       RuleLayout,
			BlockIndex: idx,
			BlockType:  block.Type,
		}

		switch class {
		case "email":
			if email, ok := validEmail(value); ok {
				base.Field, base.Value, base.Confidence = "company.contact_email", email, 0.85
				matches = append(matches, base)
			}
		case "phone":
			if phone, ok := validPhone(value); ok {
				base.Field, base.Value, base.Confidence = "company.contact_phone", phone, 0.85
				matches = append(matches, base)
			}
		case "salary":
			for _, fact := range salaryFacts(value) {
				fact.Rule = RuleLayout
				fact.Confidence = min(fact.Confidence, layoutSalaryCap)
				fact.SourceText = base.SourceText
				fact.BlockIndex = idx
				fact.BlockType = block.Type
				matches = append(matches, fact)
			}
		case "location", "country":
			city, country := e.normalizer().ExtractLocation(ctx, value, normalizeHeader(header))
			if city != "" {
				m := base
				m.Field, m.Value, m.Confidence = "location.primary_city", city, 0.8
				matches = append(matches, m)
			}
			if country != "" {
				m := base
				m.Field, m.Value, m.Confidence = "location.country", country, 0.8
				matches = append(matches, m)
			}
		default:
			// Any other mapped header carries an opaque string value.
			base.Value, base.Confidence = value, 0.75
			switch class {
			case "industry":
				base.Field = "company.industry"
			}
			if base.Field != "" {
				matches = append(matches, base)
			}
		}
	}
	return matches
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(header), ":")))
}
