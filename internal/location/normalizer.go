// Package location resolves free text into (city, country) pairs using
// small static gazetteers and an optional external place-entity
// recognizer. Resolution is pure given the text and the recognizer
// output; recognizer failures silently degrade to heuristics-only mode.
package location

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Normalizer resolves location candidates. The zero value works with
// heuristics only; attach a Recognizer to enable entity promotion.
type Normalizer struct {
	Recognizer Recognizer
	Timeout    time.Duration
	Lang       string
}

var labeledLineRe = regexp.MustCompile(`(?i)^\s*(arbeitsort|standort|einsatzort|ort|city|location|land|country)\s*[:\-]\s*(.+)$`)

// countryHints are prefix labels that bias an ambiguous single token
// toward country classification.
var countryHints = map[string]bool{"land": true, "country": true}

// ExtractLocation resolves text into a (city, country) pair. Either or
// both results may be empty. The prefix hint, when present, carries the
// label under which the text was found (e.g. a table header).
func (n *Normalizer) ExtractLocation(ctx context.Context, text, prefixHint string) (string, string) {
	text = strings.TrimSpace(text)
	if text == "" || rejected(text) {
		return "", ""
	}

	candidate := text
	hint := strings.ToLower(strings.TrimSpace(prefixHint))
	for _, line := range strings.Split(text, "\n") {
		if m := labeledLineRe.FindStringSubmatch(line); m != nil {
			candidate = strings.TrimSpace(m[2])
			hint = strings.ToLower(m[1])
			break
		}
	}
	if rejected(candidate) {
		return "", ""
	}

	ents := n.lookupEntities(ctx, candidate)
	city, country := classify(candidate, hint, ents)

	country = FinalizeCountry(country)
	if city != "" && country == "" {
		if inferred := CityCountry(city); inferred != "" {
			country = FinalizeCountry(inferred)
		} else if len(ents.Countries) > 0 {
			country = FinalizeCountry(ents.Countries[0])
		}
	}
	return city, country
}

// classify applies the comma, hyphen/slash, and bare-value patterns in
// order.
func classify(candidate, hint string, ents Entities) (string, string) {
	if left, right, ok := strings.Cut(candidate, ","); ok {
		return classifyPair(left, right, ents)
	}

	if parts := splitPair(candidate); parts != nil {
		return classifyPair(parts[0], parts[1], ents)
	}

	return classifySingle(candidate, hint, ents)
}

// classifyPair handles "City, Country" style candidates. The recognizer
// may override the positional assumption when it tags the first token as
// a country.
func classifyPair(first, second string, ents Entities) (string, string) {
	first = strings.TrimSpace(first)
	second = strings.TrimSpace(second)

	if (countryToken(first) || ents.hasCountry(first)) && !countryToken(second) && !ents.hasCountry(second) {
		first, second = second, first
	}

	var city, country string
	if placeShaped(first) {
		city = first
	}
	if placeShaped(second) {
		country = second
	}
	return city, country
}

func classifySingle(token, hint string, ents Entities) (string, string) {
	token = strings.TrimSpace(token)
	if !placeShaped(token) {
		return "", ""
	}
	switch {
	case countryHints[hint] && !KnownCity(token):
		return "", token
	case KnownCity(token):
		return token, ""
	case countryToken(token) || ents.hasCountry(token):
		return "", token
	case ents.hasCity(token):
		return token, ""
	default:
		return token, ""
	}
}

// placeShaped reports whether a token passes the capitalization
// heuristics, the known-city allowlist, and the disqualification list.
func placeShaped(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" || disqualified[strings.ToLower(token)] {
		return false
	}
	if KnownCity(token) || countryToken(token) {
		return true
	}
	for _, word := range strings.Fields(token) {
		r := []rune(word)[0]
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// splitPair matches two-token hyphen or slash separated candidates, e.g.
// "Berlin - Germany" or "Wien/Österreich".
func splitPair(candidate string) []string {
	parts := strings.FieldsFunc(candidate, func(r rune) bool {
		return r == '-' || r == '/'
	})
	if len(parts) != 2 {
		return nil
	}
	return []string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}
}

// rejected filters candidates that cannot be locations: postal codes,
// links, and contact lines.
func rejected(text string) bool {
	if strings.ContainsAny(text, "0123456789@") {
		return true
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "http") || strings.Contains(lower, "www.")
}

func containsFold(list []string, token string) bool {
	token = strings.TrimSpace(token)
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), token) {
			return true
		}
	}
	return false
}
