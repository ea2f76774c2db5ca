package pin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var VerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pin_verifications_total",
		Help: "Total number of PIN verification attempts by stage and outcome",
	},
	[]string{"stage", "outcome"},
)
