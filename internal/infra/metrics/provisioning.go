package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		keysIssued,
		provisioningErrors,
	)
}

var (
	keysIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vpn_keys_issued_total",
			Help: "Access keys minted per region.",
		},
		[]string{"region"},
	)

	provisioningErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vpn_provisioning_errors_total",
			Help: "Failed provisioning call pairs per region.",
		},
		[]string{"region"},
	)
)

func IncKeyIssued(region string)         { keysIssued.WithLabelValues(region).Inc() }
func IncProvisioningError(region string) { provisioningErrors.WithLabelValues(region).Inc() }
