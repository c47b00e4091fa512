package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wagw_messages_total",
			Help: "Send requests by outcome and reason",
		},
		[]string{"outcome", "reason"}, // success|validation_error|provider_error|configuration_error , failing field or provider sub-kind
	)

	ConfigChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wagw_config_checks_total",
			Help: "Credential verifications by result",
		},
		[]string{"working"}, // true|false
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		MessagesTotal,
		ConfigChecksTotal,
	)
}
