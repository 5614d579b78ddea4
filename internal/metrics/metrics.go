// Package metrics defines the Prometheus collectors for the site and the
// HTTP middleware that feeds them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mavik"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Checkout funnel metrics
var (
	CheckoutOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_opened_total",
			Help:      "Total number of checkout wizard opens",
		},
		[]string{"mode"},
	)

	CheckoutStepBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_step_blocked_total",
			Help:      "Total number of step advances blocked by validation",
		},
		[]string{"mode", "step"},
	)

	CheckoutSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_submitted_total",
			Help:      "Total number of checkout submissions handed to WhatsApp",
		},
		[]string{"mode"},
	)

	CheckoutSessionsLive = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "checkout_sessions_live",
			Help:      "Current number of live checkout sessions",
		},
		func() float64 {
			if liveSessions == nil {
				return 0
			}
			return float64(liveSessions())
		},
	)

	// liveSessions is wired at startup to the session store's Len.
	liveSessions func() int
)

// SetLiveSessionSource registers the callback backing the live-session gauge.
func SetLiveSessionSource(fn func() int) {
	liveSessions = fn
}
