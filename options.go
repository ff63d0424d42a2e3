package cook

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinkeroneo/cook-go/internal/timers"
)

// Option customizes the Client during construction.
type Option func(*Client) error

// WithHTTPTimeout overrides DefaultHTTPTimeout for backend requests.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be positive, got %v", d)
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging turns on debug-level logging of every backend request.
// Also enabled by setting COOK_DEBUG=true or DEBUG=true.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if !enabled {
			return nil
		}
		c.log = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.http.Transport = &debugTransport{base: base, c: c}
		return nil
	}
}

// WithLogger replaces the default no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

// WithStorePath overrides the local store's database path. ":memory:"
// gives an ephemeral store, useful in tests.
func WithStorePath(path string) Option {
	return func(c *Client) error {
		if path == "" {
			return fmt.Errorf("store path cannot be empty")
		}
		c.storePath = path
		return nil
	}
}

// WithTimerOptions forwards options to the timer manager, such as a test
// clock or render hooks.
func WithTimerOptions(opts ...TimerOption) Option {
	return func(c *Client) error {
		c.timerOpts = append(c.timerOpts, opts...)
		return nil
	}
}

// Timer option constructors, re-exported so callers never import internal
// packages.

// WithTimerInterval overrides the ~1s tick interval.
func WithTimerInterval(d time.Duration) TimerOption { return timers.WithInterval(d) }

// WithTimerClock injects the timer manager's time source, for tests.
func WithTimerClock(now func() time.Time) TimerOption { return timers.WithClock(now) }

// OnTimerRender registers the callback invoked with the sorted timer
// snapshot on every tick and after every mutation.
func OnTimerRender(fn func([]TimerSnapshot)) TimerOption { return timers.OnRender(fn) }

// OnTimerFire registers the callback invoked once when a timer crosses
// into overdue.
func OnTimerFire(fn func(Timer)) TimerOption { return timers.OnFire(fn) }

// WithUploadTimeout overrides the image upload deadline.
func WithUploadTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("upload timeout must be positive, got %v", d)
		}
		c.uploadTimeout = d
		return nil
	}
}
