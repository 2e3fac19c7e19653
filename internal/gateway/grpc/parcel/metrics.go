package parcel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TrackingCallDuration - вызов целиком, с ретраями и паузами между ними.
	TrackingCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tracking_gateway_call_duration_seconds",
			Help:    "Duration of tracking-service calls including retries",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "grpc_code"},
	)

	// TrackingRetriesTotal - повторы по коду ошибки попытки, которая их вызвала.
	TrackingRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_gateway_retries_total",
			Help: "Retried tracking-service attempts by the failing gRPC code",
		},
		[]string{"method", "grpc_code"},
	)
)
