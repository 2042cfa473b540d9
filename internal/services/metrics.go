package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// recomputeTotal counts engine recomputations by kind and outcome.
var recomputeTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "partnerbooks_engine_recomputations_total",
		Help: "Number of engine recomputations by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

func observeRecompute(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	recomputeTotal.WithLabelValues(kind, outcome).Inc()
}
