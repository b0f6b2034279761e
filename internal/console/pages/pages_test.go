package pages_test

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/autopeer-io/fleetconsole/internal/console/pages"
	"github.com/autopeer-io/fleetconsole/internal/fakeapi"
	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

var _ = Describe("DriverPage", func() {
	var (
		ctx    context.Context
		api    *fakeapi.Server
		client rest.Client
		page   *pages.DriverPage
	)

	BeforeEach(func() {
		ctx = context.Background()
		api, client = startAPI()
		page = pages.NewDriverPage(client)
	})

	It("starts with an active, empty draft", func() {
		Expect(page.State().Draft).To(Equal(v1.DriverSpec{Active: true}))
		Expect(page.DraftValue("active")).To(Equal("true"))
	})

	It("appends the created driver with the server-assigned id", func() {
		for range 6 {
			api.AddCharger(v1.ChargerSpec{LocationName: "filler"})
		}
		Expect(page.UpdateField("name", "Asha")).To(Succeed())
		Expect(page.UpdateField("phone", "9000000000")).To(Succeed())
		Expect(page.UpdateField("licenseId", "DL-1")).To(Succeed())

		created, err := page.Create(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(created.ID).To(Equal(int64(7)))
		Expect(page.State().Items).To(Equal([]v1.Driver{created}))
		Expect(page.State().Draft).To(Equal(v1.NewDriverSpec()))
	})

	It("toggles active twice back to the original value", func() {
		d := api.AddDriver(v1.DriverSpec{Name: "Asha", Active: true})
		Expect(page.Load(ctx)).To(Succeed())

		first, err := page.ToggleActive(ctx, d)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Active).To(BeFalse())

		second, err := page.ToggleActive(ctx, first)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Active).To(BeTrue())

		got, ok := page.Find(d.ID)
		Expect(ok).To(BeTrue())
		Expect(got.Active).To(BeTrue())
		Expect(api.Requests()).To(HaveEach(Or(Equal("GET /drivers"), HavePrefix("PUT /drivers/"))))
	})

	It("keeps the row when the server rejects the toggle", func() {
		d := api.AddDriver(v1.DriverSpec{Name: "Asha", Active: true})
		Expect(page.Load(ctx)).To(Succeed())
		api.FailNext(http.MethodPut, "/drivers/1", http.StatusInternalServerError)

		_, err := page.ToggleActive(ctx, d)
		Expect(rest.StatusCode(err)).To(Equal(http.StatusInternalServerError))
		Expect(page.LastError()).To(Equal("Failed to update driver"))

		got, _ := page.Find(d.ID)
		Expect(got.Active).To(BeTrue())
	})

	It("checks the declarative form constraints", func() {
		Expect(pages.CheckForm(page)).To(MatchError(pages.ErrConstraint))
		Expect(page.UpdateField("name", "Asha")).To(Succeed())
		Expect(page.UpdateField("phone", "1")).To(Succeed())
		Expect(page.UpdateField("licenseId", "L")).To(Succeed())
		Expect(pages.CheckForm(page)).To(Succeed())
	})
})

var _ = Describe("ChargerPage", func() {
	var (
		ctx    context.Context
		api    *fakeapi.Server
		client rest.Client
		page   *pages.ChargerPage
	)

	BeforeEach(func() {
		ctx = context.Background()
		api, client = startAPI()
		page = pages.NewChargerPage(client)
	})

	It("treats deleting an already missing charger as success", func() {
		Expect(page.Delete(ctx, 9)).To(Succeed())
		Expect(api.Requests()).To(Equal([]string{"DELETE /chargers/9"}))
		Expect(page.LastError()).To(BeEmpty())
	})

	It("records the load message when the list cannot be fetched", func() {
		api.AddCharger(v1.ChargerSpec{LocationName: "Depot"})
		Expect(page.Load(ctx)).To(Succeed())
		api.FailNext(http.MethodGet, "/chargers", http.StatusBadGateway)

		Expect(page.Load(ctx)).NotTo(Succeed())
		st := page.State()
		Expect(st.Error).To(Equal("Failed to load chargers"))
		Expect(st.Items).To(HaveLen(1))
	})

	It("renders the draft as form text", func() {
		Expect(page.UpdateField("maxPowerKW", "22.5")).To(Succeed())
		Expect(page.DraftValue("maxPowerKW")).To(Equal("22.5"))
		Expect(page.DraftValue("status")).To(Equal("AVAILABLE"))
	})

	It("accepts only the offered statuses", func() {
		Expect(page.UpdateField("status", "bogus")).To(MatchError(v1.ErrInvalidValue))
		Expect(page.DraftValue("status")).To(Equal("AVAILABLE"))
		Expect(page.UpdateField("status", "in-use")).To(Succeed())
		Expect(page.DraftValue("status")).To(Equal("IN_USE"))
		Expect(page.UpdateField("locationName", "Depot")).To(Succeed())
		Expect(pages.CheckForm(page)).To(Succeed())

		status := pages.ChargerFields[2]
		Expect(status.Check("IN_USE")).To(Succeed())
		Expect(status.Check("BOGUS")).To(MatchError(pages.ErrConstraint))
	})
})

var _ = Describe("VehiclePage", func() {
	var (
		ctx  context.Context
		api  *fakeapi.Server
		page *pages.VehiclePage
	)

	BeforeEach(func() {
		var client rest.Client
		ctx = context.Background()
		api, client = startAPI()
		page = pages.NewVehiclePage(client)
	})

	It("loads vehicles in server order", func() {
		a := api.AddVehicle(v1.VehicleSpec{Registration: "KA01", Status: v1.VehicleStatusIdle})
		b := api.AddVehicle(v1.VehicleSpec{Registration: "KA02", Status: v1.VehicleStatusDriving})

		Expect(page.Load(ctx)).To(Succeed())
		Expect(page.State().Items).To(Equal([]v1.Vehicle{a, b}))
		Expect(page.Table(0)).To(ContainSubstring("KA02"))
	})

	It("rejects a battery percentage above 100 before submitting", func() {
		Expect(page.UpdateField("registration", "KA01")).To(Succeed())
		Expect(page.UpdateField("model", "Nexon")).To(Succeed())
		Expect(page.UpdateField("batteryCapacityKWh", "40")).To(Succeed())
		Expect(page.UpdateField("currentBatteryPercent", "101")).To(Succeed())

		Expect(pages.CheckForm(page)).To(MatchError(ContainSubstring("at most 100")))
		Expect(page.UpdateField("currentBatteryPercent", "100")).To(Succeed())
		Expect(pages.CheckForm(page)).To(Succeed())
	})

	It("reports failed creation and keeps the draft", func() {
		api.FailNext(http.MethodPost, "/evs", http.StatusInternalServerError)
		Expect(page.UpdateField("registration", "KA09")).To(Succeed())

		_, err := page.Create(ctx)
		Expect(rest.KindOf(err)).To(Equal(rest.KindRequestFailed))
		Expect(page.LastError()).To(Equal("Failed to create EV"))
		Expect(page.DraftValue("registration")).To(Equal("KA09"))
	})
})
