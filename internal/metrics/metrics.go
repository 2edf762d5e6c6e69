package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of outgoing API requests.",
		},
		[]string{"code", "method", "host"},
	)
	apiRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of outgoing API requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "host"},
	)

	apiRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_api_requests_in_flight",
			Help: "Current number of outgoing API requests being processed.",
		},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// instrumentedTransport records every outgoing request against the metrics
// above, keyed by target host rather than path to keep cardinality flat.
type instrumentedTransport struct {
	next http.RoundTripper
}

func NewTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return &instrumentedTransport{next: next}
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {

	start := time.Now()
	apiRequestsInFlight.Inc()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)
	apiRequestsInFlight.Dec()
	apiRequestsDuration.WithLabelValues(req.Method, req.URL.Host).Observe(duration.Seconds())

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}

	apiRequestsTotal.WithLabelValues(code, req.Method, req.URL.Host).Inc()

	return resp, err
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}
