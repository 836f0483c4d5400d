package models

import (
	"errors"
	"fmt"
)

// GenerationFailedMessage is the only text shown to callers when the upstream
// completion call fails. Upstream detail stays in the logs.
const GenerationFailedMessage = "Failed to generate copy. Please try again."

// ErrUnauthorized signals that no caller identity could be resolved for the
// request. The HTTP layer matches it with errors.Is to produce a 401.
var ErrUnauthorized = errors.New("unauthorized")

// Issue describes a single field-level validation failure.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries every field issue found in a rejected request so
// callers can render per-field errors.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid request"
	}
	return fmt.Sprintf("invalid request: %s: %s", e.Issues[0].Path, e.Issues[0].Message)
}

// GenerationError wraps any transport or protocol fault from the completion
// upstream. Its user-facing message is fixed; the cause is for logging only
// and is never serialized into a response.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return GenerationFailedMessage
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
