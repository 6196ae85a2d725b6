// Package schemas provides JSON Schema validation for canonical profiles.
// The schema is generated from the field registry, keeping the registry
// the single source of truth for the profile shape.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/job-profiler/internal/registry"
)

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading the generated schema itself.
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load profile schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load profile schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("profile validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ProfileSchema builds the JSON Schema document for the canonical
// profile: every registry group required, no additional properties,
// per-kind JSON types.
func ProfileSchema() map[string]any {
	groups := make(map[string]any)
	for _, f := range registry.Fields {
		group, ok := groups[f.Group()].(map[string]any)
		if !ok {
			group = map[string]any{
				"type":                 "object",
				"properties":           map[string]any{},
				"required":             []string{},
				"additionalProperties": false,
			}
			groups[f.Group()] = group
		}
		group["properties"].(map[string]any)[f.Name()] = kindSchema(f.Kind)
		group["required"] = append(group["required"].([]string), f.Name())
	}
	return map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"type":                 "object",
		"properties":           groups,
		"required":             registry.Groups(),
		"additionalProperties": false,
	}
}

func kindSchema(kind registry.Kind) map[string]any {
	switch kind {
	case registry.KindStringList:
		return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	case registry.KindNumber:
		return map[string]any{"type": "number"}
	case registry.KindBool:
		return map[string]any{"type": "boolean"}
	default:
		return map[string]any{"type": "string"}
	}
}

// ValidateProfile validates a canonical profile against the generated
// schema. Returns *ValidationError when the document does not conform and
// *SchemaLoadError when the schema itself cannot be compiled.
func ValidateProfile(profile registry.Profile) error {
	schemaLoader := gojsonschema.NewGoLoader(ProfileSchema())
	documentLoader := gojsonschema.NewGoLoader(profile)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Message: "schema validation failed during load", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
