package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/autopeer-io/fleetconsole/cmd/fleetctl/app/options"
	"github.com/autopeer-io/fleetconsole/internal/console/export"
)

func newDashboardCommand(ctx context.Context, opts *options.ConsoleOptions) *cobra.Command {
	var output string
	show := func(cmd *cobra.Command, args []string) error {
		cons, err := newConsole(opts)
		if err != nil {
			return err
		}
		dash := cons.Dashboard()
		if err := dash.LoadAll(ctx); err != nil {
			return errors.New(dash.State().Error)
		}
		return printOutput(cmd.OutOrStdout(), output, export.NewSnapshot(dash.State(), time.Now()), dash.View)
	}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show fleet status, at-risk EVs and today's trips",
		Args:  cobra.NoArgs,
		RunE:  show,
	}
	addOutputFlag(cmd, &output)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: cmd.Short,
		Args:  cobra.NoArgs,
		RunE:  show,
	}
	addOutputFlag(showCmd, &output)

	cmd.AddCommand(showCmd, &cobra.Command{
		Use:   "export",
		Short: "Upload a dashboard snapshot to object storage and print a download link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cons, err := newConsole(opts)
			if err != nil {
				return err
			}
			dash := cons.Dashboard()
			if err := dash.LoadAll(ctx); err != nil {
				return errors.New(dash.State().Error)
			}

			exporter, err := cons.NewExporter()
			if err != nil {
				return err
			}
			res, err := exporter.Export(ctx, export.NewSnapshot(dash.State(), time.Now()))
			if err != nil {
				return fmt.Errorf("failed to export dashboard: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s/%s\n%s\n", opts.S3Options.BucketName, res.Key, res.URL)
			return nil
		},
	})
	return cmd
}
