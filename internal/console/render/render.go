// Package render formats fleet entities as plain-text tables for the terminal.
package render

import (
	"fmt"
	"strconv"

	"github.com/gosuri/uitable"

	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
)

// MaxColWidth bounds every column; longer cells are wrapped.
const MaxColWidth = 32

const none = "-"

func newTable(header ...any) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = MaxColWidth
	table.Wrap = true
	table.AddRow(append([]any{""}, header...)...)
	return table
}

func marker(i, cursor int) string {
	if i == cursor {
		return ">"
	}
	return ""
}

// Vehicles renders one row per EV. The row at cursor is marked; a negative cursor marks none.
func Vehicles(items []v1.Vehicle, cursor int) string {
	if len(items) == 0 {
		return "No EVs yet."
	}
	table := newTable("ID", "REGISTRATION", "MODEL", "CAPACITY (kWh)", "BATTERY %", "STATUS", "LAST SEEN")
	for i, v := range items {
		table.AddRow(marker(i, cursor), v.ID, v.Registration, v.Model,
			number(v.BatteryCapacityKWh), number(v.CurrentBatteryPercent), v.Status, optional(v.LastSeenAt))
	}
	return table.String()
}

func Chargers(items []v1.Charger, cursor int) string {
	if len(items) == 0 {
		return "No chargers yet."
	}
	table := newTable("ID", "LOCATION", "MAX POWER (kW)", "STATUS")
	for i, c := range items {
		table.AddRow(marker(i, cursor), c.ID, c.LocationName, number(c.MaxPowerKW), c.Status)
	}
	return table.String()
}

func Drivers(items []v1.Driver, cursor int) string {
	if len(items) == 0 {
		return "No drivers yet."
	}
	table := newTable("ID", "NAME", "PHONE", "LICENSE", "ACTIVE")
	for i, d := range items {
		table.AddRow(marker(i, cursor), d.ID, d.Name, d.Phone, d.LicenseID, yesNo(d.Active))
	}
	return table.String()
}

// StatusCounts renders an aggregate as a two-column card.
func StatusCounts(title string, counts []v1.StatusCount) string {
	table := uitable.New()
	table.AddRow(title, "")
	if len(counts) == 0 {
		table.AddRow("  no data", "")
	}
	for _, c := range counts {
		table.AddRow("  "+c.Status, c.Count)
	}
	table.RightAlign(1)
	return table.String()
}

// AtRisk renders low-battery vehicles with an upcoming or running trip.
func AtRisk(items []v1.AtRiskVehicle) string {
	if len(items) == 0 {
		return "No at-risk vehicles."
	}
	table := uitable.New()
	table.MaxColWidth = MaxColWidth
	table.Wrap = true
	table.AddRow("EV", "REGISTRATION", "BATTERY %", "TRIP", "START", "ROUTE")
	for _, a := range items {
		table.AddRow(a.EVID, a.Registration, number(a.CurrentBatteryPercent), a.TripID,
			a.TripStartTime, route(a.TripOrigin, a.TripDestination))
	}
	return table.String()
}

// Trips renders trips with their vehicle and driver.
func Trips(items []v1.Trip) string {
	if len(items) == 0 {
		return "No trips today."
	}
	table := uitable.New()
	table.MaxColWidth = MaxColWidth
	table.Wrap = true
	table.AddRow("TRIP", "EV", "DRIVER", "START", "END", "STATUS", "ROUTE")
	for _, t := range items {
		table.AddRow(t.ID, t.EV.Registration, t.Driver.Name, t.StartTime, optional(t.EndTime),
			t.Status, route(t.Origin, t.Destination))
	}
	return table.String()
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return none
	}
	return *s
}

func route(from, to *string) string {
	return fmt.Sprintf("%s → %s", optional(from), optional(to))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
