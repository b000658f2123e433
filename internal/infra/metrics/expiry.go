package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(plansExpired)
}

var plansExpired = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "vpn_plans_expired_total",
		Help: "Plans the expiry sweep marked expired.",
	},
)

func IncPlansExpired(n int) { plansExpired.Add(float64(n)) }
