package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an unknown task, template or category id.
	ErrNotFound = errors.New("not found")

	// ErrCategoryInUse reports a category delete that was refused because
	// at least one task still references the category. Callers treat this
	// as a normal checked outcome, not a crash path.
	ErrCategoryInUse = errors.New("category in use by tasks")
)

// ValidationError reports malformed or out-of-range input and names the
// offending field. No mutation happens when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
