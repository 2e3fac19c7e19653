package package_status_changed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeProcessed = "processed"
	outcomeMalformed = "malformed"
	outcomeUnknown   = "unknown_package"
	outcomeConflict  = "conflict"
	outcomeIgnored   = "ignored_status"
	outcomeFailed    = "failed"
	outcomeRetry     = "retry"
)

var (
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "package_status_messages_total",
			Help: "package.status.changed messages by outcome; retry is not committed",
		},
		[]string{"outcome"},
	)

	// MessageLag - от записи в топик до конца обработки.
	MessageLag = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "package_status_message_lag_seconds",
			Help:    "Time from produce to processed for package.status.changed",
			Buckets: prometheus.ExponentialBuckets(0.05, 3, 9),
		},
	)
)
