package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reclamation_telegram_send_total",
			Help: "Telegram delivery attempts by status.",
		},
		[]string{"status"},
	)
	sendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reclamation_telegram_send_duration_seconds",
			Help:    "Duration of Telegram sendMessage requests.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
)
