package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates the prometheus collectors for the front-end.
type Metrics struct {
	// Duration of handled HTTP requests, labeled by method, route, status.
	RequestDuration *prometheus.HistogramVec
	// Duration of calls to the upstream Bloom API, labeled by operation and outcome.
	UpstreamDuration *prometheus.HistogramVec
	// Login attempts by outcome (ok, failed).
	LoginAttempts *prometheus.CounterVec
	// Currently connected websocket clients.
	WSClients prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "bloomweb_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds.",
		},
			[]string{"method", "route", "status"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bloomweb_upstream_duration_seconds",
			Help:    "Duration of Bloom API calls in seconds.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
			[]string{"operation", "outcome"},
		),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bloomweb_login_attempts_total",
			Help: "Total number of login attempts.",
		},
			[]string{"outcome"},
		),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bloomweb_ws_clients",
			Help: "Number of connected websocket clients.",
		}),
	}
	reg.MustRegister(m.RequestDuration)
	reg.MustRegister(m.UpstreamDuration)
	reg.MustRegister(m.LoginAttempts)
	reg.MustRegister(m.WSClients)
	return m
}

// ObserveUpstream records the duration and outcome of a Bloom API call.
func (m *Metrics) ObserveUpstream(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
}
