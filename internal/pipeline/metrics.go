package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var submissions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reclamation_submissions_total",
		Help: "Submission pipeline outcomes.",
	},
	[]string{"outcome"},
)
