package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyHTTPError_Categories(t *testing.T) {
	cases := []struct {
		status int
		want   Category
	}{
		{400, Irrecoverable},
		{401, Irrecoverable},
		{403, Irrecoverable},
		{404, Irrecoverable},
		{408, Recoverable},
		{429, Recoverable},
		{500, Recoverable},
		{503, Recoverable},
		{302, Recoverable},
	}
	for _, c := range cases {
		got := ClassifyHTTPError(c.status, "", fmt.Errorf("status %d", c.status))
		if got.Category != c.want {
			t.Errorf("status %d: category = %v, want %v", c.status, got.Category, c.want)
		}
	}
}

func TestIsIrrecoverable(t *testing.T) {
	if !IsIrrecoverable(NewHTTPError(404, "", "get recipe")) {
		t.Fatal("404 should be irrecoverable")
	}
	if IsIrrecoverable(NewNetworkError("list recipes", errors.New("connection refused"))) {
		t.Fatal("network errors should be recoverable")
	}
	if IsIrrecoverable(errors.New("plain")) {
		t.Fatal("unclassified errors should not be irrecoverable")
	}
}

func TestClassifiedError_Unwrap(t *testing.T) {
	base := errors.New("boom")
	wrapped := NewNetworkError("op", base)
	if !errors.Is(wrapped, base) {
		t.Fatal("expected errors.Is to reach the underlying error")
	}
}
