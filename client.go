// Package cook is the data and sync core of the Tinkeroneo Cook recipe
// app: an offline-first recipe repository over a local mirror and a remote
// backend, a per-(user,space) offline action queue with replay, a keyed
// exclusive runner serializing dependent async work, the menu composition
// engine, and the kitchen timer manager.
package cook

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tinkeroneo/cook-go/internal/cooklog"
	"github.com/tinkeroneo/cook-go/internal/exclusive"
	"github.com/tinkeroneo/cook-go/internal/localstore"
	"github.com/tinkeroneo/cook-go/internal/media"
	"github.com/tinkeroneo/cook-go/internal/offline"
	"github.com/tinkeroneo/cook-go/internal/parts"
	"github.com/tinkeroneo/cook-go/internal/session"
	"github.com/tinkeroneo/cook-go/internal/timers"
)

// DefaultHTTPTimeout bounds a single backend request. Requests past the
// deadline surface as a normal (recoverable) failure, never a hang.
const DefaultHTTPTimeout = 12 * time.Second

// Client is the single entry point to the data core. All mutation of the
// shared state it owns (recipe mirror, parts index, timer set) funnels
// through its methods, which serialize on the exclusive runner under the
// documented keys ("loadAll", "upsert:<id>", "drain", plus caller-chosen
// keys via RunExclusive).
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	backend bool

	store     *localstore.Store
	storePath string
	runner    *exclusive.Runner
	timerMgr  *timers.Manager
	cookLog   *cooklog.Log
	sess      *session.State
	uploader  *media.Uploader
	log       zerolog.Logger

	timerOpts     []timers.Option
	uploadTimeout time.Duration

	mu       sync.Mutex
	userID   string
	spaceID  string
	queue    *offline.Queue
	partsIdx parts.Index

	// mirrorMu serializes load-modify-save cycles on the mirrored
	// collections (recipes, parts). Runner keys serialize remote traffic
	// per recipe; they do not serialize mirror writes across keys, so
	// without this lock concurrent upserts of different recipes clobber
	// each other's saved list.
	mirrorMu sync.Mutex

	closedOnce uint32
}

// New constructs a Client with the given backend baseURL and apiKey.
// Additional options can be provided via functional arguments.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}
	if apiKey == "" {
		panic("apiKey cannot be empty")
	}
	c := newClient(baseURL, apiKey, true)
	return c.finish(opts)
}

// NewLocal constructs a Client with the backend disabled: every operation
// is served from the local mirror and writes never leave the machine.
// Convenience constructor for offline development and tests.
func NewLocal(opts ...Option) (*Client, error) {
	c := newClient("", "", false)
	return c.finish(opts)
}

func newClient(baseURL, apiKey string, backend bool) *Client {
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		backend:       backend,
		http:          &http.Client{Timeout: DefaultHTTPTimeout},
		runner:        exclusive.New(),
		log:           zerolog.Nop(),
		uploadTimeout: media.DefaultUploadTimeout,
	}
}

func (c *Client) finish(opts []Option) (*Client, error) {
	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.store == nil {
		var err error
		if c.storePath != "" {
			c.store, err = localstore.Open(c.storePath, c.log)
		} else {
			c.store, err = localstore.OpenDefault(c.log)
		}
		if err != nil {
			return nil, err
		}
	}

	c.timerMgr = timers.New(c.store, c.log, c.timerOpts...)
	c.cookLog = cooklog.New(c.store, c.log)
	c.sess = session.New(c.store)
	if c.backend {
		c.uploader = media.NewUploader(c.baseURL, c.apiKey, c.uploadTimeout)
		c.wrapTransportWithAPIKey()
	}
	return c, nil
}

// wrapTransportWithAPIKey wraps the HTTP client's transport to add the
// Authorization header to every backend request.
func (c *Client) wrapTransportWithAPIKey() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &apiKeyTransport{base: baseTransport, apiKey: c.apiKey}
}

// apiKeyTransport wraps an http.RoundTripper to add the bearer token.
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.base.RoundTrip(cloned)
}

// SetSession switches the authenticated user and active space. The offline
// queue is re-scoped so pending writes of one identity can never leak into
// another; the previous scope's queue stays untouched on disk until that
// identity returns.
func (c *Client) SetSession(userID, spaceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.spaceID = spaceID
	if userID == "" && spaceID == "" {
		c.queue = nil
		return
	}
	c.queue = offline.New(c.store, userID, spaceID, c.log)
}

// ActiveSpace returns the current space id, empty when no session is set.
func (c *Client) ActiveSpace() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spaceID
}

// RunExclusive serializes fn against every other call sharing key. Exposed
// so view-layer work (the "render" key in particular) rides on the same
// runner that orders repository operations.
func (c *Client) RunExclusive(ctx context.Context, key string, fn func(context.Context) error) error {
	return c.runner.Do(ctx, key, fn)
}

// Timers returns the kitchen timer manager.
func (c *Client) Timers() *timers.Manager { return c.timerMgr }

// CookLog returns the per-recipe cooking log.
func (c *Client) CookLog() *cooklog.Log { return c.cookLog }

// Session returns the per-recipe checklist and preference state.
func (c *Client) Session() *session.State { return c.sess }

// Media returns the image uploader, nil when the backend is disabled.
func (c *Client) Media() *media.Uploader { return c.uploader }

// Close stops the runner and the timer loop and closes the local store.
// Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.runner.Stop()
	if c.timerMgr != nil {
		c.timerMgr.Stop()
	}
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
