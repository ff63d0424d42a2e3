package exclusive

import (
	"fmt"
	"hash/fnv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cook_client",
			Name:      "exclusive_runs_total",
			Help:      "Functions executed by the exclusive runner.",
		},
		[]string{"shard"},
	)

	waitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cook_client",
			Name:      "exclusive_waits_total",
			Help:      "Calls that had to queue behind an earlier call on the same key.",
		},
		[]string{"shard"},
	)

	waitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cook_client",
			Name:      "exclusive_wait_seconds",
			Help:      "Time spent waiting for a key's predecessor to settle.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"shard"},
	)

	runDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cook_client",
			Name:      "exclusive_run_seconds",
			Help:      "Execution time of functions run under a key.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"shard"},
	)
)

// shardLabel hashes key to a stable small-cardinality label (0-31) so metric
// labels stay bounded no matter how many keys callers invent.
func shardLabel(key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return fmt.Sprintf("%d", h.Sum32()%32)
}
