package location

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed gazetteer.yaml
var gazetteerYAML []byte

// gazetteer holds the static place-name tables. Loaded once at package
// init; read-only afterwards, so safe for concurrent use.
type gazetteer struct {
	Cities       map[string]string `yaml:"cities"`
	ISOCodes     map[string]string `yaml:"iso_codes"`
	CountryNames map[string]string `yaml:"country_names"`
	Disqualified []string          `yaml:"disqualified"`
}

var gaz = func() gazetteer {
	var g gazetteer
	if err := yaml.Unmarshal(gazetteerYAML, &g); err != nil {
		panic(fmt.Sprintf("location: invalid embedded gazetteer: %v", err))
	}
	return g
}()

var disqualified = func() map[string]bool {
	m := make(map[string]bool, len(gaz.Disqualified))
	for _, term := range gaz.Disqualified {
		m[strings.ToLower(term)] = true
	}
	return m
}()

// KnownCity reports whether the token is in the static city allowlist.
func KnownCity(token string) bool {
	_, ok := gaz.Cities[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// CityCountry returns the country for a known city, or "".
func CityCountry(city string) string {
	return gaz.Cities[strings.ToLower(strings.TrimSpace(city))]
}

// FinalizeCountry normalizes a free-text country string to an ISO-3166
// alpha-2 code. Resolution order: direct code lookup, canonical-name
// normalization plus retry, then a bare two-letter alphabetic token is
// accepted as already-ISO. Anything else passes through unchanged.
func FinalizeCountry(country string) string {
	country = strings.TrimSpace(country)
	if country == "" {
		return ""
	}
	lower := strings.ToLower(country)
	if code, ok := gaz.ISOCodes[lower]; ok {
		return code
	}
	if name, ok := gaz.CountryNames[lower]; ok {
		if code, ok := gaz.ISOCodes[strings.ToLower(name)]; ok {
			return code
		}
	}
	if len(country) == 2 && isAlphabetic(country) {
		return strings.ToUpper(country)
	}
	return country
}

// countryToken reports whether the token resolves through the country
// tables (not counting the bare two-letter fallback).
func countryToken(token string) bool {
	lower := strings.ToLower(strings.TrimSpace(token))
	if _, ok := gaz.ISOCodes[lower]; ok {
		return true
	}
	_, ok := gaz.CountryNames[lower]
	return ok
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return len(s) > 0
}
