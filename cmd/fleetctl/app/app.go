package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/autopeer-io/fleetconsole/cmd/fleetctl/app/options"
	"github.com/autopeer-io/fleetconsole/internal/console"
	"github.com/autopeer-io/fleetconsole/pkg/log"
)

const (
	commandName = "fleetctl"
	commandDesc = `fleetctl is the operations console of an electric vehicle fleet.

It lists and registers EVs, charging points and drivers, flips drivers between
active and inactive, and shows a dashboard of fleet status, low-battery vehicles
with upcoming trips and today's trips. Run "fleetctl console" for the
interactive console or use the subcommands for one-shot operations.`
)

// annotationInteractive marks commands that take over the terminal.
const annotationInteractive = "fleetctl.io/interactive"

func NewFleetCtlCommand(ctx context.Context) *cobra.Command {
	opts := options.NewConsoleOptions()
	v := viper.New()

	cmd := &cobra.Command{
		Use:           commandName,
		Short:         "Operate an EV fleet from the terminal",
		Long:          commandDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v, cmd.Flags(), opts); err != nil {
				return err
			}
			if cmd.Annotations[annotationInteractive] == "true" {
				if paths := interactiveLogPaths(v, cmd.Flags()); paths != nil {
					opts.Log.OutputPaths = paths
				}
			}
			if err := opts.Complete(); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			log.Init(opts.Log)
			if _, err := maxprocs.Set(maxprocs.Logger(func(format string, a ...any) {
				log.Debug(fmt.Sprintf(format, a...))
			})); err != nil {
				log.Warn("Failed to set GOMAXPROCS", "err", err)
			}
			return nil
		},
	}

	fs := cmd.PersistentFlags()
	for _, f := range opts.Flags().FlagSets {
		fs.AddFlagSet(f)
	}

	cmd.AddCommand(
		newConsoleCommand(ctx, opts, v),
		newVehiclesCommand(ctx, opts),
		newChargersCommand(ctx, opts),
		newDriversCommand(ctx, opts),
		newDashboardCommand(ctx, opts),
	)
	return cmd
}

func newConsole(opts *options.ConsoleOptions) (*console.Console, error) {
	cfg, err := opts.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg.NewConsole()
}
