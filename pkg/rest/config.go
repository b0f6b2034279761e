package rest

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public fleet operations API.
const DefaultBaseURL = "https://ev-fleet-ops.onrender.com/api"

// ClientConfig holds the configuration for creating a new Client.
type ClientConfig struct {
	// BaseURL is prefixed verbatim to every request path.
	BaseURL string

	// Timeout bounds a whole request including the body read. Zero means no timeout.
	Timeout time.Duration

	// UserAgent is sent on every request when set.
	UserAgent string

	// Transport performs the round trips. Defaults to http.DefaultTransport.
	// Metrics and tracing wrappers are installed here.
	Transport http.RoundTripper
}

func setDefaultConfig(cfg *ClientConfig) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}
}

// Validate checks if the configuration is valid.
func (c *ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q must use http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base url %q has no host", c.BaseURL)
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}
