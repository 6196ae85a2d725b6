// Package parsing recovers a JSON object from a possibly noisy or fenced
// model response and routes it through the schema coercion engine, so the
// strict and tolerant paths share identical normalization guarantees.
package parsing

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/job-profiler/internal/coerce"
	"github.com/jonathan/job-profiler/internal/registry"
)

// ParseExtraction recovers a JSON object from raw model output and
// coerces it into a canonical profile. Blank input yields
// *ModelResponseEmptyError; unrecoverable input yields *JSONInvalidError.
func ParseExtraction(raw string) (registry.Profile, []coerce.Diagnostic, error) {
	obj, err := DecodeObject(raw)
	if err != nil {
		return nil, nil, err
	}
	profile, diags := coerce.CoerceAndFill(obj)
	return profile, diags, nil
}

// DecodeObject extracts the raw JSON object without coercion. The merge
// pipeline uses this to combine model output with the rule patch before
// a single coercion pass.
func DecodeObject(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ModelResponseEmptyError{}
	}

	if obj, err := decode(raw); err == nil {
		return obj, nil
	}

	cleaned := stripFences(raw)
	if obj, err := decode(cleaned); err == nil {
		return obj, nil
	}

	candidate, ok := firstBalancedObject(cleaned)
	if !ok {
		return nil, &JSONInvalidError{Message: "no balanced JSON object found"}
	}
	obj, err := decode(candidate)
	if err != nil {
		return nil, &JSONInvalidError{Message: "balanced candidate failed to parse", Cause: err}
	}
	return obj, nil
}

func decode(s string) (map[string]any, error) {
	var value any
	if err := json.Unmarshal([]byte(s), &value); err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &JSONInvalidError{Message: "top-level value is not an object"}
	}
	return obj, nil
}

// firstBalancedObject scans for the first balanced {...} substring with a
// brace-depth counter. The scanner counts raw braces and is not
// string-literal-aware; braces inside quoted strings can mis-locate the
// boundary. Known limitation, kept for behavioral compatibility.
func firstBalancedObject(s string) (string, bool) {
	depth := 0
	start := -1
	for i, r := range s {
		switch r {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
