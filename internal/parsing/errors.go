package parsing

import (
	"errors"
	"fmt"
)

// ErrExtraction is the family marker for extraction input errors. Both
// typed errors below unwrap to it, so callers can match the family with
// errors.Is and the specific kind with errors.As.
var ErrExtraction = errors.New("extraction failed")

// ModelResponseEmptyError signals a blank or whitespace-only model
// response. The caller should re-ask the model rather than treat this as
// an empty profile.
type ModelResponseEmptyError struct{}

func (e *ModelResponseEmptyError) Error() string {
	return "model response is empty"
}

func (e *ModelResponseEmptyError) Unwrap() error {
	return ErrExtraction
}

// JSONInvalidError signals that no JSON object could be recovered from
// the response: no balanced object found, a parse failure, or a
// non-object top-level value.
type JSONInvalidError struct {
	Message string
	Cause   error
}

func (e *JSONInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid JSON: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid JSON: %s", e.Message)
}

func (e *JSONInvalidError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrExtraction, e.Cause}
	}
	return []error{ErrExtraction}
}
