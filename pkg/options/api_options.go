package options

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"

	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

var _ IOptions = (*APIOptions)(nil)

// APIOptions configures the client of the fleet operations API.
type APIOptions struct {
	// BaseURL is prefixed to every request path.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Timeout bounds each request. Zero disables the timeout.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	UserAgent string `json:"user-agent" mapstructure:"user-agent"`
}

// NewAPIOptions creates an APIOptions object with default parameters.
func NewAPIOptions() *APIOptions {
	return &APIOptions{
		BaseURL:   rest.DefaultBaseURL,
		UserAgent: "fleetctl",
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *APIOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	u, err := url.Parse(o.BaseURL)
	switch {
	case o.BaseURL == "":
		errs = append(errs, errors.New("--api.base-url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("--api.base-url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("--api.base-url %q must be an http(s) URL", o.BaseURL))
	}

	if o.Timeout < 0 {
		errs = append(errs, errors.New("--api.timeout must not be negative"))
	}

	return errs
}

// AddFlags adds flags for APIOptions to the specified FlagSet.
func (o *APIOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, "api.base-url", o.BaseURL, "Base URL of the fleet operations API.")
	fs.DurationVar(&o.Timeout, "api.timeout", o.Timeout, "Per-request timeout. 0 waits indefinitely.")
	fs.StringVar(&o.UserAgent, "api.user-agent", o.UserAgent, "User-Agent header sent to the API.")
}

// ToClientConfig converts the options into a rest.ClientConfig.
func (o *APIOptions) ToClientConfig() *rest.ClientConfig {
	return &rest.ClientConfig{
		BaseURL:   o.BaseURL,
		Timeout:   o.Timeout,
		UserAgent: o.UserAgent,
	}
}
