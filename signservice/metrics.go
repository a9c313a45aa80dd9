package signservice

import (
	"net/http"
	"time"

	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sign request outcomes used as metric labels.
const (
	OutcomeSigned       = "signed"
	OutcomeRejected     = "rejected"
	OutcomeUnauthorized = "unauthorized"
	OutcomeFailed       = "failed"
)

type metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "signservice",
		Name:      "sign_requests_total",
		Help:      "Total sign requests by claim subject and outcome.",
	}, []string{"subject", "outcome"})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "signservice",
		Name:      "sign_duration_seconds",
		Help:      "Duration of sign requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})
	registry.MustRegister(requests, durations)
	return &metrics{registry: registry, requests: requests, durations: durations}
}

// observe records one sign request. Unknown subjects share a label.
func (m *metrics) observe(subject claims.Subject, outcome string, started time.Time) {
	label := string(subject)
	if !subject.Valid() {
		label = "unknown"
	}
	m.requests.WithLabelValues(label, outcome).Inc()
	m.durations.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
