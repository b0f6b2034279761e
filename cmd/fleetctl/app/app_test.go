package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autopeer-io/fleetconsole/internal/console/pages"
	"github.com/autopeer-io/fleetconsole/internal/fakeapi"
	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
)

func startAPI(t *testing.T) (*fakeapi.Server, string) {
	t.Helper()
	api := fakeapi.New()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv.URL + fakeapi.PathPrefix
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewFleetCtlCommand(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListVehicles(t *testing.T) {
	api, base := startAPI(t)
	api.AddVehicle(v1.VehicleSpec{Registration: "KA01AB1234", Model: "Nexon", Status: v1.VehicleStatusIdle})

	out, err := execute(t, "--api.base-url", base, "evs", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "KA01AB1234") || !strings.Contains(out, "REGISTRATION") {
		t.Errorf("output:\n%s", out)
	}
}

func TestListAsJSON(t *testing.T) {
	api, base := startAPI(t)
	api.AddCharger(v1.ChargerSpec{LocationName: "Depot", MaxPowerKW: 60, Status: v1.ChargerStatusAvailable})

	out, err := execute(t, "--api.base-url", base, "chargers", "list", "-o", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"locationName": "Depot"`) {
		t.Errorf("output:\n%s", out)
	}
}

func TestCreateDriver(t *testing.T) {
	api, base := startAPI(t)

	out, err := execute(t, "--api.base-url", base, "drivers", "create",
		"--set", "name=Asha Rao", "--set", "phone=9000000000", "--set", "licenseId=DL-1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Created driver #1") {
		t.Errorf("output:\n%s", out)
	}
	if got := api.Requests(); len(got) != 1 || got[0] != "POST /drivers" {
		t.Errorf("requests = %v", got)
	}
}

func TestCreateChecksConstraintsFirst(t *testing.T) {
	api, base := startAPI(t)

	_, err := execute(t, "--api.base-url", base, "evs", "create", "--set", "registration=KA01")
	if err == nil || !strings.Contains(err.Error(), "required") {
		t.Errorf("err = %v, want a required-field error", err)
	}
	if len(api.Requests()) != 0 {
		t.Error("nothing should be sent when the form is incomplete")
	}
}

func TestCreateRejectsBlankRequiredNumber(t *testing.T) {
	api, base := startAPI(t)

	_, err := execute(t, "--api.base-url", base, "evs", "create",
		"--set", "registration=KA01", "--set", "model=Kona", "--set", "batteryCapacityKWh=")
	if !errors.Is(err, pages.ErrConstraint) {
		t.Errorf("err = %v, want ErrConstraint", err)
	}
	if len(api.Requests()) != 0 {
		t.Error("nothing should be sent when a required number is blank")
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	api, base := startAPI(t)

	_, err := execute(t, "--api.base-url", base, "chargers", "create",
		"--set", "locationName=Depot", "--set", "maxPowerKW=22", "--set", "status=bogus")
	if !errors.Is(err, v1.ErrInvalidValue) {
		t.Errorf("err = %v, want ErrInvalidValue", err)
	}
	if len(api.Requests()) != 0 {
		t.Error("nothing should be sent for an unknown status")
	}
}

func TestToggleDriver(t *testing.T) {
	api, base := startAPI(t)
	api.AddDriver(v1.DriverSpec{Name: "Asha", Active: true})

	out, err := execute(t, "--api.base-url", base, "drivers", "toggle", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Driver #1 Asha is now inactive") {
		t.Errorf("output:\n%s", out)
	}

	api.FailNext(http.MethodPut, "/drivers/1", http.StatusInternalServerError)
	if _, err := execute(t, "--api.base-url", base, "drivers", "toggle", "1"); err == nil || err.Error() != "Failed to update driver" {
		t.Errorf("err = %v", err)
	}
}

func TestDeleteMissingChargerSucceeds(t *testing.T) {
	_, base := startAPI(t)

	out, err := execute(t, "--api.base-url", base, "chargers", "delete", "9")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Deleted charger #9") {
		t.Errorf("output:\n%s", out)
	}
}

func TestLoadFailureMessage(t *testing.T) {
	api, base := startAPI(t)
	api.FailNext(http.MethodGet, "/evs", http.StatusInternalServerError)

	if _, err := execute(t, "--api.base-url", base, "evs", "list"); err == nil || err.Error() != "Failed to load EVs" {
		t.Errorf("err = %v", err)
	}
}

func TestDashboard(t *testing.T) {
	api, base := startAPI(t)
	if err := api.Seed(); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--api.base-url", base, "dashboard")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"EV status", "KA02CD5678", "Today's trips"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard output is missing %q:\n%s", want, out)
		}
	}

	api.FailNext(http.MethodGet, "/dashboard/charger-status", http.StatusServiceUnavailable)
	if _, err := execute(t, "--api.base-url", base, "dashboard", "show"); err == nil || err.Error() != "Failed to load dashboard data" {
		t.Errorf("err = %v", err)
	}
}

func TestConfigFileAndEnvironment(t *testing.T) {
	api, base := startAPI(t)
	api.AddVehicle(v1.VehicleSpec{Registration: "FROMFILE"})

	path := filepath.Join(t.TempDir(), "fleetctl.yaml")
	if err := os.WriteFile(path, []byte("api:\n  base-url: "+base+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "--config", path, "evs", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "FROMFILE") {
		t.Errorf("config file base url not used:\n%s", out)
	}

	t.Setenv("FLEETCTL_API_BASE_URL", base)
	out, err = execute(t, "evs", "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "FROMFILE") {
		t.Errorf("environment base url not used:\n%s", out)
	}
}

func TestInvalidOptions(t *testing.T) {
	if _, err := execute(t, "--api.base-url", "ftp://fleet", "evs", "list"); err == nil {
		t.Error("expected a validation error")
	}
	if _, err := execute(t, "--api.base-url", "http://127.0.0.1:1", "drivers", "toggle", "x"); err == nil {
		t.Error("expected an invalid id error")
	}
}
