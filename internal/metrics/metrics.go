package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request/response path metrics
var (
	// RequestsTotal tracks HTTP requests by operation and status
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatorboard_requests_total",
			Help: "Total requests by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RequestDuration tracks request latency in seconds
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gatorboard_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
)

// Live feed metrics
var (
	// ActiveSessions tracks the number of open monitor sessions
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gatorboard_monitor_sessions_active",
			Help: "Currently open monitor sessions",
		},
	)

	// ActiveSubscriptions tracks monitored items summed across sessions
	ActiveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gatorboard_monitor_subscriptions_active",
			Help: "Currently monitored items across all sessions",
		},
	)

	// UpdatesEmitted tracks score update events pushed to clients
	UpdatesEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatorboard_monitor_updates_emitted_total",
			Help: "Total score update events emitted on monitor sessions",
		},
	)

	// SessionErrors tracks sessions terminated by a protocol error, by code
	SessionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatorboard_monitor_session_errors_total",
			Help: "Monitor sessions terminated by a fatal error, by error code",
		},
		[]string{"code"},
	)
)
