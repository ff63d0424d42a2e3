package cook

import (
	"net/http"
	"os"
	"time"
)

// debugLoggingRequested checks environment toggles so debug wire logging
// can be enabled without a code change.
func debugLoggingRequested() bool {
	return os.Getenv("COOK_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

// debugTransport logs every request/response pair at debug level.
type debugTransport struct {
	base http.RoundTripper
	c    *Client
}

func (t *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	evt := t.c.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Dur("elapsed", time.Since(start))
	if err != nil {
		evt.Err(err).Msg("http request failed")
		return resp, err
	}
	evt.Int("status", resp.StatusCode).Msg("http request")
	return resp, nil
}
