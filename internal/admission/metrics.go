package admission

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reclamation_rate_limit_decisions_total",
			Help: "Rate limiter admission decisions by outcome.",
		},
		[]string{"decision"},
	)
	duplicateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reclamation_duplicate_guard_decisions_total",
			Help: "Duplicate-submission guard decisions by outcome.",
		},
		[]string{"decision"},
	)
)
