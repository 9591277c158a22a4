package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Console state

	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamdesk_mutations_total",
			Help: "Total number of state mutations by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	PersistenceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamdesk_persistence_failures_total",
			Help: "Total number of failed writes to the backing store",
		},
		[]string{"key"},
	)

	// Expiry watcher

	ExpiringAccounts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "streamdesk_expiring_accounts",
			Help: "Accounts expiring within the alert window at the last evaluation",
		},
	)

	ExpiryEvaluationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "streamdesk_expiry_evaluations_total",
			Help: "Total number of expiring-account evaluations",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamdesk_notifications_total",
			Help: "Expiry notifications by outcome",
		},
		[]string{"status"},
	)

	// HTTP

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streamdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)
)
