package timers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	timersStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cook_client",
			Name:      "timers_started_total",
			Help:      "Countdowns created.",
		},
	)

	timersFired = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cook_client",
			Name:      "timers_fired_total",
			Help:      "Countdowns that crossed into the overdue state.",
		},
	)

	activeTimers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cook_client",
			Name:      "timers_active",
			Help:      "Non-dismissed countdowns.",
		},
	)
)
