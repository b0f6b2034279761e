// Package console assembles the fleet operations console: the API client, the
// pages, the page selector and the optional HTTP endpoint.
package console

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/autopeer-io/fleetconsole/internal/console/dashboard"
	"github.com/autopeer-io/fleetconsole/internal/console/export"
	"github.com/autopeer-io/fleetconsole/internal/console/pages"
	"github.com/autopeer-io/fleetconsole/internal/console/server"
	"github.com/autopeer-io/fleetconsole/internal/console/shell"
	"github.com/autopeer-io/fleetconsole/pkg/log"
	"github.com/autopeer-io/fleetconsole/pkg/options"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

type Console struct {
	client     rest.Client
	httpserver *server.Server
	s3Options  *options.S3Options
}

// Client returns the fleet API client shared by every page.
func (c *Console) Client() rest.Client { return c.client }

func (c *Console) Vehicles() *pages.VehiclePage { return pages.NewVehiclePage(c.client) }

func (c *Console) Chargers() *pages.ChargerPage { return pages.NewChargerPage(c.client) }

func (c *Console) Drivers() *pages.DriverPage { return pages.NewDriverPage(c.client) }

func (c *Console) Dashboard() *dashboard.Dashboard { return dashboard.New(c.client) }

// Factories returns a page factory for every page of the shell.
func (c *Console) Factories() map[shell.PageID]shell.Factory {
	return map[shell.PageID]shell.Factory{
		shell.PageDashboard: func() shell.Page { return c.Dashboard() },
		shell.PageVehicles:  func() shell.Page { return c.Vehicles() },
		shell.PageChargers:  func() shell.Page { return c.Chargers() },
		shell.PageDrivers:   func() shell.Page { return c.Drivers() },
	}
}

// NewShell returns a page selector whose views end with ctx.
func (c *Console) NewShell(ctx context.Context) (*shell.Shell, error) {
	return shell.New(ctx, c.Factories())
}

// NewExporter connects to the configured object store.
func (c *Console) NewExporter() (*export.Exporter, error) {
	provider, err := export.NewMinIOProvider(c.s3Options)
	if err != nil {
		return nil, err
	}
	return export.NewExporter(provider, c.s3Options.PresignExpiry), nil
}

// AddReadyzCheck registers a readiness check on the HTTP endpoint, if there is one.
func (c *Console) AddReadyzCheck(name string, check func(*http.Request) error) {
	if c.httpserver != nil {
		c.httpserver.AddReadyzCheck(name, check)
	}
}

// Run calls fn while serving the HTTP endpoint. Whichever finishes first stops
// the other.
func (c *Console) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)

	if c.httpserver != nil {
		g.Go(func() error { return c.httpserver.Start(ctx) })
	}
	g.Go(func() error {
		defer cancel()
		return fn(ctx)
	})

	log.Debug("Console running", "http", c.httpserver != nil)
	return g.Wait()
}
