package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		paymentsPending,
		paymentsDecided,
	)
}

var (
	paymentsPending = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_pending_total",
			Help: "Pending payments created (one per payment-details step reached).",
		},
	)

	paymentsDecided = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_decided_total",
			Help: "Admin decisions by outcome (approved/rejected/failed).",
		},
		[]string{"outcome"},
	)
)

func IncPaymentPending()           { paymentsPending.Inc() }
func IncPaymentDecided(out string) { paymentsDecided.WithLabelValues(out).Inc() }
