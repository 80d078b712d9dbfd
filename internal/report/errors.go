package report

import (
	"errors"
	"fmt"
)

// NotFoundError reports a reference that does not resolve: an unknown
// scope root (hard failure) or a dangling task reference (skipped).
type NotFoundError struct {
	Resource string // "user", "project", "task"
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// IsNotFound reports whether err is a NotFoundError, unwrapping as
// needed.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError rejects malformed report input before any aggregation
// work begins.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid report request: " + e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
