package cook

import (
	"errors"

	apierrors "github.com/tinkeroneo/cook-go/internal/errors"
	"github.com/tinkeroneo/cook-go/internal/exclusive"
	"github.com/tinkeroneo/cook-go/internal/types"
)

var (
	// ErrNotFound is returned when a recipe, part, or timer does not exist.
	ErrNotFound = types.ErrNotFound

	// ErrNoActiveSpace is returned by backend operations before a space is
	// selected.
	ErrNoActiveSpace = types.ErrNoActiveSpace

	// ErrNoSession is returned by queue operations before SetSession.
	ErrNoSession = errors.New("no session: call SetSession first")

	// ErrBackendDisabled is returned when a backend-only operation is
	// attempted on a client built with NewLocal.
	ErrBackendDisabled = errors.New("backend disabled")

	// ErrClientClosed is returned by operations submitted after Close.
	ErrClientClosed = exclusive.ErrRunnerClosed
)

// IsIrrecoverable reports whether err will keep failing on retry, such as
// a validation rejection from the backend. Transient failures (network,
// timeouts, 5xx, rate limits) return false and are worth retrying.
func IsIrrecoverable(err error) bool {
	return apierrors.IsIrrecoverable(err)
}
