package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autopeer-io/fleetconsole/cmd/fleetctl/app/options"
	"github.com/autopeer-io/fleetconsole/internal/console"
	"github.com/autopeer-io/fleetconsole/internal/console/pages"
	"github.com/autopeer-io/fleetconsole/internal/console/resource"
	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
)

// resourcePage is the part of a collection page the one-shot commands use.
type resourcePage[T resource.Entity, D any] interface {
	pages.Form
	Load(ctx context.Context) error
	Create(ctx context.Context) (T, error)
	Delete(ctx context.Context, id int64) error
	State() resource.State[T, D]
	LastError() string
	Table(cursor int) string
}

type resourceCommand[T resource.Entity, D any] struct {
	use     string
	noun    string
	aliases []string
	fields  []pages.Field
	open    func(*console.Console) resourcePage[T, D]
}

func newVehiclesCommand(ctx context.Context, opts *options.ConsoleOptions) *cobra.Command {
	return resourceCommand[v1.Vehicle, v1.VehicleSpec]{
		use:     "evs",
		noun:    "EV",
		aliases: []string{"ev", "vehicles"},
		fields:  pages.VehicleFields,
		open:    func(c *console.Console) resourcePage[v1.Vehicle, v1.VehicleSpec] { return c.Vehicles() },
	}.command(ctx, opts)
}

func newChargersCommand(ctx context.Context, opts *options.ConsoleOptions) *cobra.Command {
	return resourceCommand[v1.Charger, v1.ChargerSpec]{
		use:     "chargers",
		noun:    "charger",
		aliases: []string{"charger"},
		fields:  pages.ChargerFields,
		open:    func(c *console.Console) resourcePage[v1.Charger, v1.ChargerSpec] { return c.Chargers() },
	}.command(ctx, opts)
}

func newDriversCommand(ctx context.Context, opts *options.ConsoleOptions) *cobra.Command {
	cmd := resourceCommand[v1.Driver, v1.DriverSpec]{
		use:     "drivers",
		noun:    "driver",
		aliases: []string{"driver"},
		fields:  pages.DriverFields,
		open:    func(c *console.Console) resourcePage[v1.Driver, v1.DriverSpec] { return c.Drivers() },
	}.command(ctx, opts)

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a driver between active and inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cons, err := newConsole(opts)
			if err != nil {
				return err
			}

			page := cons.Drivers()
			if err := page.Load(ctx); err != nil {
				return errors.New(page.LastError())
			}
			d, ok := page.Find(id)
			if !ok {
				return fmt.Errorf("driver %d not found", id)
			}
			updated, err := page.ToggleActive(ctx, d)
			if err != nil {
				return errors.New(page.LastError())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Driver #%d %s is now %s\n", updated.ID, updated.Name, activeWord(updated.Active))
			return nil
		},
	})
	return cmd
}

func (rc resourceCommand[T, D]) command(ctx context.Context, opts *options.ConsoleOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     rc.use,
		Aliases: rc.aliases,
		Short:   fmt.Sprintf("List, create and delete %ss", rc.noun),
	}
	cmd.AddCommand(rc.listCommand(ctx, opts), rc.createCommand(ctx, opts), rc.deleteCommand(ctx, opts))
	return cmd
}

func (rc resourceCommand[T, D]) listCommand(ctx context.Context, opts *options.ConsoleOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List %ss in server order", rc.noun),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cons, err := newConsole(opts)
			if err != nil {
				return err
			}
			page := rc.open(cons)
			if err := page.Load(ctx); err != nil {
				return errors.New(page.LastError())
			}
			return printOutput(cmd.OutOrStdout(), output, page.State().Items, func() string { return page.Table(-1) })
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func (rc resourceCommand[T, D]) createCommand(ctx context.Context, opts *options.ConsoleOptions) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "create --set FIELD=VALUE...",
		Short: fmt.Sprintf("Create a %s", rc.noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cons, err := newConsole(opts)
			if err != nil {
				return err
			}
			page := rc.open(cons)
			if err := applySets(page, sets); err != nil {
				return err
			}
			if err := pages.CheckForm(page); err != nil {
				return err
			}

			created, err := page.Create(ctx)
			if err != nil {
				return errors.New(page.LastError())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s #%d\n%s\n", rc.noun, created.Identity(), page.Table(-1))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a form field, e.g. --set status=IDLE. Repeatable.")
	cmd.Long = fmt.Sprintf("Create a %s. Fields not set keep the form defaults.\n\nFields: %s", rc.noun, fieldNames(rc.fields))
	return cmd
}

func (rc resourceCommand[T, D]) deleteCommand(ctx context.Context, opts *options.ConsoleOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a %s; deleting a missing one succeeds", rc.noun),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cons, err := newConsole(opts)
			if err != nil {
				return err
			}
			page := rc.open(cons)
			if err := page.Delete(ctx, id); err != nil {
				return errors.New(page.LastError())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s #%d\n", rc.noun, id)
			return nil
		},
	}
}

// applySets copies --set values onto the draft. A value set to blank is checked
// as typed, since a blank number reads back from the draft as 0.
func applySets(f pages.Form, sets []string) error {
	fields := f.FormFields()
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("--set %q: want FIELD=VALUE", s)
		}
		name = strings.TrimSpace(name)
		if i := slices.IndexFunc(fields, func(field pages.Field) bool { return field.Name == name }); i >= 0 && strings.TrimSpace(value) == "" {
			if err := fields[i].Check(value); err != nil {
				return err
			}
		}
		if err := f.UpdateField(name, value); err != nil {
			return err
		}
	}
	return nil
}

func fieldNames(fields []pages.Field) string {
	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func activeWord(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", "table", "Output format: table or json.")
}

func printOutput(w io.Writer, format string, v any, table func() string) error {
	switch format {
	case "table", "":
		_, err := fmt.Fprintln(w, table())
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", format)
}
