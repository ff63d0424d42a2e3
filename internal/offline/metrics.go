package offline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	enqueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cook_client",
			Name:      "offline_actions_enqueued_total",
			Help:      "Actions recorded in the offline queue.",
		},
		[]string{"kind"},
	)

	drainedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cook_client",
			Name:      "offline_actions_drained_total",
			Help:      "Actions successfully replayed against the backend.",
		},
		[]string{"kind"},
	)

	droppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cook_client",
			Name:      "offline_actions_dropped_total",
			Help:      "Actions dropped because the backend rejected them permanently.",
		},
	)

	drainStoppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cook_client",
			Name:      "offline_drain_stopped_total",
			Help:      "Drain attempts halted by a transient failure.",
		},
	)

	queueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cook_client",
			Name:      "offline_queue_depth",
			Help:      "Actions currently waiting for replay.",
		},
	)
)
