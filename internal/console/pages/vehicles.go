package pages

import (
	"k8s.io/utils/ptr"

	"github.com/autopeer-io/fleetconsole/internal/console/render"
	"github.com/autopeer-io/fleetconsole/internal/console/resource"
	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

// VehicleDefinition binds the generic view-model to /evs.
var VehicleDefinition = resource.Definition[v1.Vehicle, v1.VehicleSpec]{
	Name: "evs",
	Path: "/evs",
	Messages: resource.Messages{
		Load:   "Failed to load EVs",
		Create: "Failed to create EV",
		Update: "Failed to update EV",
		Delete: "Failed to delete EV",
	},
	NewDraft: v1.NewVehicleSpec,
	SetField: (*v1.VehicleSpec).SetField,
}

// VehicleFields is the creation form, in display order.
var VehicleFields = []Field{
	{Name: "registration", Label: "Registration", Kind: FieldText, Required: true},
	{Name: "model", Label: "Model", Kind: FieldText, Required: true},
	{Name: "batteryCapacityKWh", Label: "Battery capacity (kWh)", Kind: FieldNumber, Required: true, Min: ptr.To(0.0)},
	{Name: "currentBatteryPercent", Label: "Current battery %", Kind: FieldNumber, Required: true, Min: ptr.To(0.0), Max: ptr.To(100.0)},
	{Name: "status", Label: "Status", Kind: FieldEnum, Options: enumOptions(v1.VehicleStatuses)},
}

// VehiclePage lists EVs and registers new ones.
type VehiclePage struct {
	*resource.Resource[v1.Vehicle, v1.VehicleSpec]
}

func NewVehiclePage(client rest.Client) *VehiclePage {
	return &VehiclePage{Resource: resource.New(client, VehicleDefinition)}
}

func (p *VehiclePage) Title() string { return "EVs" }

func (p *VehiclePage) FormFields() []Field { return VehicleFields }

func (p *VehiclePage) DraftValue(name string) string {
	d := p.State().Draft
	switch name {
	case "registration":
		return d.Registration
	case "model":
		return d.Model
	case "batteryCapacityKWh":
		return formatNumber(d.BatteryCapacityKWh)
	case "currentBatteryPercent":
		return formatNumber(d.CurrentBatteryPercent)
	case "status":
		return string(d.Status)
	case "lastKnownLatitude":
		return formatOptionalNumber(d.LastKnownLatitude)
	case "lastKnownLongitude":
		return formatOptionalNumber(d.LastKnownLongitude)
	case "lastSeenAt":
		return ptr.Deref(d.LastSeenAt, "")
	}
	return ""
}

// Table renders the items with the row at cursor marked; cursor < 0 marks none.
func (p *VehiclePage) Table(cursor int) string {
	return render.Vehicles(p.State().Items, cursor)
}
