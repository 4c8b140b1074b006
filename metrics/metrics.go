// Package metrics holds the Prometheus collectors the reader reports
// against as it opens shards and yields documents. Collectors are
// registered at package init via promauto, the same way claircore's
// indexer and datastore packages register theirs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ShardsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cweb22",
			Subsystem: "reader",
			Name:      "shards_opened_total",
			Help:      "Total number of shard files opened, by format.",
		},
		[]string{"format"},
	)

	RecordsYielded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cweb22",
			Subsystem: "reader",
			Name:      "records_yielded_total",
			Help:      "Total number of joined documents yielded, by subset.",
		},
		[]string{"subset"},
	)

	ToleratedDefects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cweb22",
			Subsystem: "reader",
			Name:      "tolerated_defects_total",
			Help:      "Total number of documented, non-fatal data defects repaired or logged, by kind.",
		},
		[]string{"kind"},
	)

	AlignDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cweb22",
			Subsystem: "reader",
			Name:      "align_duration_seconds",
			Help:      "Time spent joining one document's required-format records.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
