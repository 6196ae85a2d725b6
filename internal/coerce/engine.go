// Package coerce implements the schema coercion engine: it merges any raw
// JSON-like input against the field registry with alias resolution,
// default-filling, type coercion, and categorical normalization. The
// engine is self-healing for string and list fields; only genuinely
// un-castable numeric and boolean leaves surface as diagnostics.
package coerce

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/jonathan/job-profiler/internal/dedupe"
	"github.com/jonathan/job-profiler/internal/registry"
)

// Diagnostic reports a value that could not satisfy its declared registry
// kind. The profile still carries the field's zero value; the call as a
// whole never aborts on coercion trouble.
type Diagnostic struct {
	Field   string `json:"field"`
	Value   any    `json:"value"`
	Message string `json:"message"`
}

// CoerceAndFill normalizes raw input into a canonical profile containing
// exactly the registry's fields. The result is idempotent: coercing an
// already-coerced profile is a no-op.
func CoerceAndFill(raw map[string]any) (registry.Profile, []Diagnostic) {
	flat := flattenOneLevel(raw)
	applyAliases(flat)

	profile := registry.New()
	var diags []Diagnostic
	for _, f := range registry.Fields {
		value, ok := flat[f.Path]
		if !ok || value == nil {
			continue // zero value already in place
		}
		switch f.Kind {
		case registry.KindStringList:
			profile.Set(f.Path, coerceList(value))
		case registry.KindString:
			s := strings.TrimSpace(toString(value))
			profile.Set(f.Path, NormalizeCategorical(f.Path, s))
		case registry.KindNumber:
			if s, isStr := value.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			n, err := cast.ToFloat64E(value)
			if err != nil {
				diags = append(diags, Diagnostic{Field: f.Path, Value: value, Message: "not a number"})
				continue
			}
			profile.Set(f.Path, n)
		case registry.KindBool:
			if s, isStr := value.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			b, err := cast.ToBoolE(value)
			if err != nil {
				diags = append(diags, Diagnostic{Field: f.Path, Value: value, Message: "not a boolean"})
				continue
			}
			profile.Set(f.Path, b)
		}
	}

	dedupe.Apply(profile)
	return profile, diags
}

// flattenOneLevel turns one level of group nesting into dot-path keys.
// Already-flat dot-path keys pass through untouched; keys outside the
// registry are dropped later by the fill loop.
func flattenOneLevel(raw map[string]any) map[string]any {
	flat := make(map[string]any, len(raw))
	for key, value := range raw {
		if nested, ok := value.(map[string]any); ok && !strings.Contains(key, ".") {
			for sub, v := range nested {
				flat[key+"."+sub] = v
			}
			continue
		}
		flat[key] = value
	}
	return flat
}

// applyAliases moves legacy dot-path values to their canonical keys. When
// the canonical key is already present, list fields concatenate with the
// canonical side first and delimited strings on either side split before
// concatenation; scalar fields keep the canonical value. Legacy keys are
// visited in sorted order so the concatenation order is identical across
// runs.
func applyAliases(flat map[string]any) {
	legacies := make([]string, 0, len(registry.Aliases))
	for legacy := range registry.Aliases {
		legacies = append(legacies, legacy)
	}
	sort.Strings(legacies)

	for _, legacy := range legacies {
		canonical := registry.Aliases[legacy]
		legacyValue, ok := flat[legacy]
		if !ok {
			continue
		}
		delete(flat, legacy)
		canonValue, exists := flat[canonical]
		if !exists {
			flat[canonical] = legacyValue
			continue
		}
		if f, ok := registry.Lookup(canonical); ok && f.Kind == registry.KindStringList {
			flat[canonical] = append(collectItems(canonValue, true), collectItems(legacyValue, true)...)
		}
	}
}

// coerceList normalizes any raw value into a clean string list: strings
// split on newlines then commas/semicolons, nil becomes empty, bare
// scalars wrap into a singleton, and the result is de-duplicated
// case-sensitively while preserving first-seen order.
func coerceList(value any) []string {
	items := collectItems(value, true)
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// collectItems flattens a raw value into trimmed, non-empty strings.
// Splitting on delimiters only applies to a top-level string; array
// elements are taken as whole items.
func collectItems(value any, split bool) []string {
	switch t := value.(type) {
	case nil:
		return nil
	case string:
		if split {
			return splitList(t)
		}
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		return []string{s}
	case []string:
		var items []string
		for _, s := range t {
			items = append(items, collectItems(s, false)...)
		}
		return items
	case []any:
		var items []string
		for _, el := range t {
			items = append(items, collectItems(el, false)...)
		}
		return items
	default:
		s := strings.TrimSpace(toString(value))
		if s == "" {
			return nil
		}
		return []string{s}
	}
}

func splitList(s string) []string {
	var items []string
	for _, line := range strings.Split(s, "\n") {
		pieces := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';'
		})
		for _, piece := range pieces {
			piece = strings.TrimSpace(piece)
			if piece != "" {
				items = append(items, piece)
			}
		}
	}
	return items
}

// toString string-casts best-effort; unlike numbers and booleans, string
// coercion self-heals rather than producing a diagnostic.
func toString(value any) string {
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	return fmt.Sprintf("%v", value)
}
