package resource_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/autopeer-io/fleetconsole/internal/console/resource"
	v1 "github.com/autopeer-io/fleetconsole/pkg/apis/fleet/v1"
	"github.com/autopeer-io/fleetconsole/pkg/rest"
)

// stubClient answers every call with the canned JSON or error registered for
// "METHOD path". Gates queued for a key block successive calls, one gate per call,
// until a value is sent on it.
type stubClient struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	gates     map[string][]chan struct{}
	calls     []string
	bodies    []any
}

func newStubClient() *stubClient {
	return &stubClient{
		responses: map[string]string{},
		errs:      map[string]error{},
		gates:     map[string][]chan struct{}{},
	}
}

func (s *stubClient) respond(key, body string)   { s.mu.Lock(); s.responses[key] = body; s.mu.Unlock() }
func (s *stubClient) fail(key string, err error) { s.mu.Lock(); s.errs[key] = err; s.mu.Unlock() }

func (s *stubClient) gate(key string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := make(chan struct{})
	s.gates[key] = append(s.gates[key], g)
	return g
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubClient) do(ctx context.Context, method, path string, body, out any) error {
	key := method + " " + path

	s.mu.Lock()
	s.calls = append(s.calls, key)
	s.bodies = append(s.bodies, body)
	var gate chan struct{}
	if q := s.gates[key]; len(q) > 0 {
		gate, s.gates[key] = q[0], q[1:]
	}
	resp, err := s.responses[key], s.errs[key]
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return &rest.TransportError{Method: method, Path: path, Err: ctx.Err()}
		}
		s.mu.Lock()
		resp, err = s.responses[key], s.errs[key]
		s.mu.Unlock()
	}

	if err != nil {
		return err
	}
	if out == nil || resp == "" {
		return nil
	}
	return json.Unmarshal([]byte(resp), out)
}

func (s *stubClient) Get(ctx context.Context, path string, out any) error {
	return s.do(ctx, http.MethodGet, path, nil, out)
}

func (s *stubClient) Post(ctx context.Context, path string, body, out any) error {
	return s.do(ctx, http.MethodPost, path, body, out)
}

func (s *stubClient) Put(ctx context.Context, path string, body, out any) error {
	return s.do(ctx, http.MethodPut, path, body, out)
}

func (s *stubClient) Delete(ctx context.Context, path string) error {
	return s.do(ctx, http.MethodDelete, path, nil, nil)
}

var chargerDefinition = resource.Definition[v1.Charger, v1.ChargerSpec]{
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

func serverError(method, path string) error {
	return &rest.RequestFailedError{Method: method, Path: path, StatusCode: http.StatusInternalServerError}
}

var _ = Describe("Resource", func() {
	var (
		ctx    context.Context
		client *stubClient
		res    *resource.Resource[v1.Charger, v1.ChargerSpec]
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = newStubClient()
		res = resource.New[v1.Charger, v1.ChargerSpec](client, chargerDefinition)
	})

	It("starts empty with the default draft", func() {
		st := res.State()
		Expect(st.Items).To(BeEmpty())
		Expect(st.Loading).To(BeFalse())
		Expect(st.Creating).To(BeFalse())
		Expect(st.Error).To(BeEmpty())
		Expect(st.Draft).To(Equal(v1.NewChargerSpec()))
	})

	Describe("Load", func() {
		It("replaces the items in server order", func() {
			client.respond("GET /chargers", `[{"id":2,"locationName":"B","maxPowerKW":22,"status":"IN_USE"},
				{"id":1,"locationName":"A","maxPowerKW":50,"status":"AVAILABLE"}]`)

			Expect(res.Load(ctx)).To(Succeed())

			st := res.State()
			Expect(st.Loading).To(BeFalse())
			Expect(st.Items).To(HaveLen(2))
			Expect(st.Items[0].ID).To(Equal(int64(2)))
			Expect(st.Items[1].LocationName).To(Equal("A"))
		})

		It("treats a null body as an empty list", func() {
			client.respond("GET /chargers", `null`)
			Expect(res.Load(ctx)).To(Succeed())
			Expect(res.State().Items).NotTo(BeNil())
		})

		It("keeps the previous items and records the message on failure", func() {
			client.respond("GET /chargers", `[{"id":1,"locationName":"A","maxPowerKW":50,"status":"AVAILABLE"}]`)
			Expect(res.Load(ctx)).To(Succeed())

			client.fail("GET /chargers", serverError(http.MethodGet, "/chargers"))
			err := res.Load(ctx)
			Expect(rest.KindOf(err)).To(Equal(rest.KindRequestFailed))

			st := res.State()
			Expect(st.Error).To(Equal("Failed to load chargers"))
			Expect(st.Loading).To(BeFalse())
			Expect(st.Items).To(HaveLen(1))
		})

		It("clears the previous error when a new operation starts", func() {
			client.fail("GET /chargers", serverError(http.MethodGet, "/chargers"))
			Expect(res.Load(ctx)).NotTo(Succeed())

			client.fail("GET /chargers", nil)
			client.respond("GET /chargers", `[]`)
			Expect(res.Load(ctx)).To(Succeed())
			Expect(res.State().Error).To(BeEmpty())
		})

		It("applies only the newest of overlapping loads", func() {
			firstGate := client.gate("GET /chargers")
			secondGate := client.gate("GET /chargers")

			first := make(chan error, 1)
			go func() { first <- res.Load(ctx) }()
			Eventually(client.callCount).Should(Equal(1))

			second := make(chan error, 1)
			go func() { second <- res.Load(ctx) }()
			Eventually(client.callCount).Should(Equal(2))
			Expect(res.State().Loading).To(BeTrue())

			// Both responses carry the newest payload; only the second load may apply it.
			client.respond("GET /chargers", `[{"id":2,"locationName":"new","maxPowerKW":2,"status":"AVAILABLE"}]`)
			close(firstGate)
			Expect(<-first).To(MatchError(resource.ErrStale))
			Expect(res.State().Loading).To(BeTrue())
			Expect(res.State().Items).To(BeEmpty())

			close(secondGate)
			Expect(<-second).To(Succeed())
			st := res.State()
			Expect(st.Loading).To(BeFalse())
			Expect(st.Items).To(HaveLen(1))
			Expect(st.Items[0].LocationName).To(Equal("new"))
		})

		It("discards the response when the context is cancelled", func() {
			client.gate("GET /chargers")
			cctx, cancel := context.WithCancel(ctx)

			done := make(chan error, 1)
			go func() { done <- res.Load(cctx) }()
			Eventually(client.callCount).Should(Equal(1))
			cancel()

			Expect(<-done).To(MatchError(resource.ErrStale))
			Expect(res.State().Error).To(BeEmpty())
		})
	})

	Describe("Create", func() {
		It("posts the draft, appends the echo and resets the draft", func() {
			client.respond("POST /chargers", `{"id":9,"locationName":"Depot","maxPowerKW":60,"status":"FAULTY"}`)
			Expect(res.UpdateField("locationName", "Depot")).To(Succeed())
			Expect(res.UpdateField("maxPowerKW", "60")).To(Succeed())
			Expect(res.UpdateField("status", "FAULTY")).To(Succeed())

			created, err := res.Create(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(9)))

			Expect(client.bodies[0]).To(Equal(v1.ChargerSpec{LocationName: "Depot", MaxPowerKW: 60, Status: v1.ChargerStatusFaulty}))
			st := res.State()
			Expect(st.Creating).To(BeFalse())
			Expect(st.Items).To(ConsistOf(created))
			Expect(st.Draft).To(Equal(v1.NewChargerSpec()))
		})

		It("keeps the draft and items on failure", func() {
			client.fail("POST /chargers", &rest.TransportError{Method: "POST", Path: "/chargers", Err: errors.New("connection refused")})
			Expect(res.UpdateField("locationName", "Depot")).To(Succeed())

			_, err := res.Create(ctx)
			Expect(rest.KindOf(err)).To(Equal(rest.KindTransport))

			st := res.State()
			Expect(st.Error).To(Equal("Failed to create charger"))
			Expect(st.Creating).To(BeFalse())
			Expect(st.Items).To(BeEmpty())
			Expect(st.Draft.LocationName).To(Equal("Depot"))
		})
	})

	Describe("UpdateField", func() {
		It("never contacts the server", func() {
			Expect(res.UpdateField("locationName", "X")).To(Succeed())
			Expect(client.calls).To(BeEmpty())
		})

		It("leaves the draft untouched for bad input", func() {
			Expect(res.UpdateField("maxPowerKW", "fast")).To(MatchError(v1.ErrInvalidValue))
			Expect(res.UpdateField("nope", "1")).To(MatchError(v1.ErrUnknownField))
			Expect(res.State().Draft).To(Equal(v1.NewChargerSpec()))
		})
	})

	Describe("Update and Delete", func() {
		BeforeEach(func() {
			client.respond("GET /chargers", `[{"id":1,"locationName":"A","maxPowerKW":50,"status":"AVAILABLE"},
				{"id":9,"locationName":"B","maxPowerKW":22,"status":"AVAILABLE"}]`)
			Expect(res.Load(ctx)).To(Succeed())
		})

		It("replaces the item by id with the server's version", func() {
			client.respond("PUT /chargers/9", `{"id":9,"locationName":"B","maxPowerKW":22,"status":"FAULTY"}`)
			c, ok := res.Find(9)
			Expect(ok).To(BeTrue())
			c.Status = v1.ChargerStatusFaulty

			_, err := res.Update(ctx, c)
			Expect(err).NotTo(HaveOccurred())
			st := res.State()
			Expect(st.Items[1].Status).To(Equal(v1.ChargerStatusFaulty))
			Expect(st.Items[0].Status).To(Equal(v1.ChargerStatusAvailable))
		})

		It("leaves the items unchanged when the update fails", func() {
			client.fail("PUT /chargers/9", serverError(http.MethodPut, "/chargers/9"))
			c, _ := res.Find(9)
			c.Status = v1.ChargerStatusFaulty

			_, err := res.Update(ctx, c)
			Expect(err).To(HaveOccurred())
			Expect(res.State().Error).To(Equal("Failed to update charger"))
			got, _ := res.Find(9)
			Expect(got.Status).To(Equal(v1.ChargerStatusAvailable))
		})

		It("removes the item after the server confirms", func() {
			Expect(res.Delete(ctx, 9)).To(Succeed())
			Expect(client.calls).To(ContainElement("DELETE /chargers/9"))
			_, ok := res.Find(9)
			Expect(ok).To(BeFalse())
			Expect(res.State().Items).To(HaveLen(1))
		})

		It("keeps the item when the delete fails", func() {
			client.fail("DELETE /chargers/1", serverError(http.MethodDelete, "/chargers/1"))
			Expect(res.Delete(ctx, 1)).NotTo(Succeed())
			Expect(res.State().Error).To(Equal("Failed to delete charger"))
			Expect(res.State().Items).To(HaveLen(2))
		})
	})

	It("is safe for concurrent use", func() {
		client.respond("GET /chargers", `[]`)
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = res.Load(ctx)
				_ = res.UpdateField("locationName", fmt.Sprint(i))
				_ = res.State()
			}()
		}
		wg.Wait()
		Expect(res.State().Loading).To(BeFalse())
	})
})
