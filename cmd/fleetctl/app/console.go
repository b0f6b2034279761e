package app

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/autopeer-io/fleetconsole/cmd/fleetctl/app/options"
	"github.com/autopeer-io/fleetconsole/internal/console/tui"
	"github.com/autopeer-io/fleetconsole/pkg/log"
)

func newConsoleCommand(ctx context.Context, opts *options.ConsoleOptions, v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the interactive console",
		Long: `Open the interactive console. It starts on the dashboard; keys 1-4 switch
between Dashboard, EVs, Chargers and Drivers, r reloads the page on screen.
Logs go to a file in the temp directory unless --log.output-paths is set.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cons, err := newConsole(opts)
			if err != nil {
				return err
			}

			watchLogLevel(v)

			var started atomic.Bool
			cons.AddReadyzCheck("tui", func(*http.Request) error {
				if !started.Load() {
					return errors.New("console not started")
				}
				return nil
			})

			return cons.Run(ctx, func(ctx context.Context) error {
				sh, err := cons.NewShell(ctx)
				if err != nil {
					return err
				}
				defer sh.Close()

				log.Info("Console started", "api", opts.APIOptions.BaseURL)
				started.Store(true)
				return tui.Run(ctx, sh)
			})
		},
	}
}
