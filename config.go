package cook

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries client settings sourced from the environment. All
// variables share the COOK_ prefix, e.g. COOK_BACKEND_URL.
type Config struct {
	BackendURL    string        `envconfig:"BACKEND_URL"`
	APIKey        string        `envconfig:"API_KEY"`
	StorePath     string        `envconfig:"STORE_PATH"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"12s"`
	UploadTimeout time.Duration `envconfig:"UPLOAD_TIMEOUT" default:"60s"`
	Debug         bool          `envconfig:"DEBUG" default:"false"`
}

// LoadConfig reads the COOK_-prefixed environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("cook", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	return &cfg, nil
}

// NewFromEnv builds a Client from the environment. Without a backend URL
// the client runs local-only.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithHTTPTimeout(cfg.HTTPTimeout),
		WithUploadTimeout(cfg.UploadTimeout),
	}
	if cfg.StorePath != "" {
		base = append(base, WithStorePath(cfg.StorePath))
	}
	if cfg.Debug {
		base = append(base, WithDebugLogging(true))
	}
	base = append(base, opts...)
	if cfg.BackendURL == "" {
		return NewLocal(base...)
	}
	return New(cfg.BackendURL, cfg.APIKey, base...)
}
