// Package errors classifies failures from the backend so callers can decide
// between retrying (offline queue replay, drain backoff) and failing fast.
package errors

import "fmt"

// Category determines how an error is handled by retry logic.
type Category int

const (
	// Recoverable errors may succeed on a later attempt: timeouts, connection
	// failures, 5xx responses.
	Recoverable Category = iota

	// Irrecoverable errors will not succeed no matter how often they are
	// retried: 400 Bad Request, 401/403 auth failures, 404.
	Irrecoverable
)

func (c Category) String() string {
	switch c {
	case Recoverable:
		return "recoverable"
	case Irrecoverable:
		return "irrecoverable"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// ClassifiedError wraps an error with its retry category.
type ClassifiedError struct {
	Category   Category
	StatusCode int    // HTTP status, 0 for network-level failures
	Body       string // response body, kept for debugging
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// IsIrrecoverable reports whether err should not be retried.
func IsIrrecoverable(err error) bool {
	if classified, ok := err.(*ClassifiedError); ok {
		return classified.Category == Irrecoverable
	}
	return false
}
