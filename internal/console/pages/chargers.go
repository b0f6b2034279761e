package pages

import (
	"k8s.io/utils/ptr"

	"github.com/autopeer-io/fleetconsole/internal/console/render"
	"github.com/autopeer-io/fleetconsole/internal/console/resource"
	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

// ChargerDefinition binds the generic view-model to /chargers.
var ChargerDefinition = resource.Definition[v1.Charger, v1.ChargerSpec]{
	Name: "chargers",
	Path: "/chargers",
	Messages: resource.Messages{
		Load:   "Failed to load chargers",
		Create: "Failed to create charger",
		Update: "Failed to update charger",
		Delete: "Failed to delete charger",
	},
	NewDraft: v1.NewChargerSpec,
	SetField: (*v1.ChargerSpec).SetField,
}

// ChargerFields is the creation form, in display order.
var ChargerFields = []Field{
	{Name: "locationName", Label: "Location", Kind: FieldText, Required: true},
	{Name: "maxPowerKW", Label: "Max power (kW)", Kind: FieldNumber, Required: true, Min: ptr.To(0.0)},
	{Name: "status", Label: "Status", Kind: FieldEnum, Options: enumOptions(v1.ChargerStatuses)},
}

// ChargerPage lists charging points and registers new ones.
type ChargerPage struct {
	*resource.Resource[v1.Charger, v1.ChargerSpec]
}

func NewChargerPage(client rest.Client) *ChargerPage {
	return &ChargerPage{Resource: resource.New(client, ChargerDefinition)}
}

func (p *ChargerPage) Title() string { return "Chargers" }

func (p *ChargerPage) FormFields() []Field { return ChargerFields }

func (p *ChargerPage) DraftValue(name string) string {
	d := p.State().Draft
	switch name {
	case "locationName":
		return d.LocationName
	case "maxPowerKW":
		return formatNumber(d.MaxPowerKW)
	case "status":
		return string(d.Status)
	}
	return ""
}

func (p *ChargerPage) Table(cursor int) string {
	return render.Chargers(p.State().Items, cursor)
}
