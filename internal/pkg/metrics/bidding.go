package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BidTransitionsTotal считает переходы ставок по целевому статусу и причине.
	BidTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bid_transitions_total",
			Help: "Total number of committed bid status transitions",
		},
		[]string{"status", "reason"},
	)

	AllocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "package_allocations_total",
			Help: "Total number of package allocation attempts by result",
		},
		[]string{"result"},
	)

	SweepFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bid_expiry_sweep_failures_total",
			Help: "Total number of packages the expiry sweep failed to process",
		},
	)

	OutboxPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bid_events_published_total",
			Help: "Total number of outbox events published to kafka",
		},
	)

	OutboxRelayLag = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bid_events_relay_lag_seconds",
			Help:    "Delay between event occurrence and its publication",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	SSESubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_subscribers",
			Help: "Number of active SSE subscribers",
		},
	)

	SSEDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sse_events_dropped_total",
			Help: "Total number of events dropped for slow SSE subscribers",
		},
	)

	TxRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_tx_retries_total",
			Help: "Total number of retried transactions after serialization failures or deadlocks",
		},
	)

	ConsumerErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_consumer_errors_total",
			Help: "Errors reported by the consumer group, by topic",
		},
		[]string{"topic"},
	)
)
