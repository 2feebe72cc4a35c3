package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Process-level Prometheus counters, served on /metrics alongside the
// OpenTelemetry instrumentation carried by the service decorators.
var (
	PaymentInitiationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_initiations_total",
			Help: "Total number of payment initiations by rail",
		},
		[]string{"rail"},
	)

	PaymentOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_outcomes_total",
			Help: "Total number of resolved payment round trips by rail and status",
		},
		[]string{"rail", "status"},
	)

	NotificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of notification deliveries by type and status",
		},
		[]string{"type", "status"},
	)
)

// Register installs the counters on the given registry. Passing nil uses the
// default registry.
func Register(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		PaymentInitiationsTotal,
		PaymentOutcomesTotal,
		NotificationsSentTotal,
	)
}
