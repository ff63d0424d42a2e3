package errors

import "fmt"

// ClassifyHTTPError maps an HTTP failure to a retry category.
// 408 and 429 are the only 4xx codes worth retrying; all other client errors
// are treated as permanent. 5xx and unknown codes are retried.
func ClassifyHTTPError(statusCode int, body string, underlying error) *ClassifiedError {
	return &ClassifiedError{
		Category:   categoryForStatus(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Underlying: underlying,
	}
}

func categoryForStatus(statusCode int) Category {
	if statusCode >= 400 && statusCode < 500 {
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	}
	return Recoverable
}

// NewHTTPError builds a classified error for a non-success status.
func NewHTTPError(statusCode int, body string, operation string) *ClassifiedError {
	return ClassifyHTTPError(statusCode, body, fmt.Errorf("%s: status %d", operation, statusCode))
}

// NewNetworkError builds a classified error for a transport-level failure.
// These are always recoverable; the request may never have reached the server.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s: %w", operation, err),
	}
}
