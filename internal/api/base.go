// Package api holds the raw HTTP request functions against the recipe
// backend. Every call requires an active space; calling without one fails
// fast with types.ErrNoActiveSpace. Non-success responses are returned as
// classified errors so replay logic can tell transient failures from
// permanent ones.
package api

import (
	"io"
	"net/http"

	apierrors "github.com/tinkeroneo/cook-go/internal/errors"
)

// HTTPClient interface for dependency injection in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// readBody drains up to a few KB of an error response for diagnostics.
func readBody(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return ""
	}
	return string(b)
}

// statusError builds a classified error for an unexpected status code.
func statusError(resp *http.Response, operation string) error {
	return apierrors.NewHTTPError(resp.StatusCode, readBody(resp), operation)
}
