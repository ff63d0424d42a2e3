package cook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remoteFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cook_client",
		Subsystem: "repo",
		Name:      "remote_fallbacks_total",
		Help:      "Remote reads that failed and were served from the local mirror.",
	})
	localWrites = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cook_client",
		Subsystem: "repo",
		Name:      "local_writes_total",
		Help:      "Recipe writes applied to the local mirror.",
	})
)
