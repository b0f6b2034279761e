package pages

import (
	"context"
	"strconv"

	"github.com/autopeer-io/fleetconsole/internal/console/render"
	"github.com/autopeer-io/fleetconsole/internal/console/resource"
	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

// DriverDefinition binds the generic view-model to /drivers.
var DriverDefinition = resource.Definition[v1.Driver, v1.DriverSpec]{
	Name: "drivers",
	Path: "/drivers",
	Messages: resource.Messages{
		Load:   "Failed to load drivers",
		Create: "Failed to create driver",
		Update: "Failed to update driver",
		Delete: "Failed to delete driver",
	},
	NewDraft: v1.NewDriverSpec,
	SetField: (*v1.DriverSpec).SetField,
}

// DriverFields is the creation form, in display order.
var DriverFields = []Field{
	{Name: "name", Label: "Name", Kind: FieldText, Required: true},
	{Name: "phone", Label: "Phone", Kind: FieldText, Required: true},
	{Name: "licenseId", Label: "License ID", Kind: FieldText, Required: true},
	{Name: "active", Label: "Active", Kind: FieldBool},
}

// DriverPage lists drivers, registers new ones and flips their active flag.
type DriverPage struct {
	*resource.Resource[v1.Driver, v1.DriverSpec]
}

func NewDriverPage(client rest.Client) *DriverPage {
	return &DriverPage{Resource: resource.New(client, DriverDefinition)}
}

func (p *DriverPage) Title() string { return "Drivers" }

// ToggleActive sends d with its active flag inverted. The local row changes only
// once the server returns the updated driver.
func (p *DriverPage) ToggleActive(ctx context.Context, d v1.Driver) (v1.Driver, error) {
	d.Active = !d.Active
	return p.Update(ctx, d)
}

func (p *DriverPage) FormFields() []Field { return DriverFields }

func (p *DriverPage) DraftValue(name string) string {
	d := p.State().Draft
	switch name {
	case "name":
		return d.Name
	case "phone":
		return d.Phone
	case "licenseId":
		return d.LicenseID
	case "active":
		return strconv.FormatBool(d.Active)
	}
	return ""
}

func (p *DriverPage) Table(cursor int) string {
	return render.Drivers(p.State().Items, cursor)
}
