package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filesharing",
			Name:      "general_counters",
		},
		[]string{"result"})
}

// NewDecisionCounter counts access decisions by resolver path and outcome.
func NewDecisionCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filesharing",
			Name:      "access_decisions_total",
		},
		[]string{"path", "outcome"})
}
