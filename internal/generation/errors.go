package generation

import (
	"fmt"

	"github.com/jonathan/cardcopy/internal/validation"
)

// InputRejectedError reports that the cleaned input scored below the quality gate
type InputRejectedError struct {
	Score   int
	Message string
	Cause   error
}

func (e *InputRejectedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input rejected (score %d): %s: %v", e.Score, e.Message, e.Cause)
	}
	return fmt.Sprintf("input rejected (score %d): %s", e.Score, e.Message)
}

func (e *InputRejectedError) Unwrap() error {
	return e.Cause
}

// ModelUnavailableError reports that no usable model response was obtained
type ModelUnavailableError struct {
	Message string
	Cause   error
}

func (e *ModelUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model unavailable: %s", e.Message)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Cause
}

// OutputRejectedError reports that the model's body text failed validation
type OutputRejectedError struct {
	Message string
	Issues  []validation.Issue
	Cause   error
}

func (e *OutputRejectedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("output rejected: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("output rejected: %s", e.Message)
}

func (e *OutputRejectedError) Unwrap() error {
	return e.Cause
}
