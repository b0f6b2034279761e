package console

import (
	"github.com/autopeer-io/fleetconsole/internal/console/server"
	"github.com/autopeer-io/fleetconsole/internal/pkg/metrics"
	"github.com/autopeer-io/fleetconsole/pkg/options"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

// Config is the validated configuration a Console is built from.
type Config struct {
	APIOptions  *options.APIOptions
	HttpOptions *options.HttpOptions
	S3Options   *options.S3Options
}

// NewConsole wires the fleet API client and, when enabled, the HTTP endpoint.
// Object storage is only contacted once an export is requested.
func (cfg *Config) NewConsole() (*Console, error) {
	metrics.Register()

	clientConfig := cfg.APIOptions.ToClientConfig()
	clientConfig.Transport = metrics.InstrumentTransport(clientConfig.Transport)
	client, err := rest.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	c := &Console{
		client:    client,
		s3Options: cfg.S3Options,
	}
	if cfg.HttpOptions.Enabled() {
		c.httpserver = server.NewServer(cfg.HttpOptions)
	}
	return c, nil
}
