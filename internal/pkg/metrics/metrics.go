package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated registry exposed on /metrics.
	Registry = prometheus.NewRegistry()

	// APIRequestsTotal counts round trips to the fleet API by status code and method.
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetconsole_api_requests_total",
			Help: "Total number of requests sent to the fleet API.",
		},
		[]string{"code", "method"},
	)

	// APIRequestDuration records round-trip latency of fleet API requests.
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fleetconsole_api_request_duration_seconds",
			Help:    "Latency of requests sent to the fleet API.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// APIRequestsInFlight is the number of requests awaiting a response.
	// A hung request shows up here since requests have no timeout by default.
	APIRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fleetconsole_api_requests_in_flight",
			Help: "Requests to the fleet API that have not completed.",
		},
	)

	// OperationFailuresTotal counts failed page operations.
	// operation: load/create/update/delete, kind: request_failed/transport/decode.
	OperationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetconsole_operation_failures_total",
			Help: "Failed console operations by page, operation and error kind.",
		},
		[]string{"page", "operation", "kind"},
	)

	// StaleResponsesTotal counts responses discarded because a newer request was issued
	// or the page was closed before the response arrived.
	StaleResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleetconsole_stale_responses_total",
			Help: "Responses discarded because they were superseded or their page was closed.",
		},
		[]string{"page"},
	)
)

var regOnce sync.Once

// Register adds the collectors to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(APIRequestsTotal)
		Registry.MustRegister(APIRequestDuration)
		Registry.MustRegister(APIRequestsInFlight)
		Registry.MustRegister(OperationFailuresTotal)
		Registry.MustRegister(StaleResponsesTotal)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// InstrumentTransport wraps next so every round trip is counted and timed.
func InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(APIRequestsInFlight,
		promhttp.InstrumentRoundTripperCounter(APIRequestsTotal,
			promhttp.InstrumentRoundTripperDuration(APIRequestDuration, next),
		),
	)
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
