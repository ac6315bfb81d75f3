package notification

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for the notifications counter.
const (
	OutcomeStored    = "stored"
	OutcomeDuplicate = "duplicate"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// NotificationsTotal counts notification writes by kind and outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var NotificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "clockit_notifications_total",
		Help: "Total number of notifications by kind and outcome",
	},
	[]string{"kind", "outcome"},
)

// RegisterMetrics registers notification metrics with the given Prometheus registry.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(NotificationsTotal)
}

func record(kind, outcome string) {
	NotificationsTotal.WithLabelValues(kind, outcome).Inc()
}
