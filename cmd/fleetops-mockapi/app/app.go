package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/fleetconsole/internal/fakeapi"
	"github.com/autopeer-io/fleetconsole/pkg/log"
	"github.com/autopeer-io/fleetconsole/pkg/options"
)

const commandDesc = `fleetops-mockapi serves an in-memory fleet operations API under /api for
local development of fleetctl. Data is lost on exit.`

type mockOptions struct {
	Addr string
	Seed bool
	Log  *log.Options
}

func (o *mockOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	fs := fss.FlagSet("server")
	fs.StringVar(&o.Addr, "addr", o.Addr, "Listen address.")
	fs.BoolVar(&o.Seed, "seed", o.Seed, "Start with a small demo fleet.")
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *mockOptions) Validate() error {
	errs := []error{}
	if err := options.ValidateAddress(o.Addr); err != nil {
		errs = append(errs, fmt.Errorf("--addr: %w", err))
	}
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func NewMockAPICommand(ctx context.Context) *cobra.Command {
	opts := &mockOptions{Addr: ":8080", Seed: true, Log: log.NewOptions()}

	cmd := &cobra.Command{
		Use:          "fleetops-mockapi",
		Short:        "Serve an in-memory fleet operations API",
		Long:         commandDesc,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			log.Init(opts.Log)

			api := fakeapi.New()
			if opts.Seed {
				if err := api.Seed(); err != nil {
					return fmt.Errorf("failed to seed: %w", err)
				}
			}
			return serve(ctx, opts.Addr, api)
		},
	}

	fs := cmd.Flags()
	for _, f := range opts.Flags().FlagSets {
		fs.AddFlagSet(f)
	}
	return cmd
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	log.Info("Serving mock fleet API", "url", fmt.Sprintf("http://%s%s", ln.Addr(), fakeapi.PathPrefix))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
