package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RateLimitedRequestsTotal - отказы 429. key_kind: user или ip, без самого ключа,
// иначе кардинальность растет с каждым курьером.
var RateLimitedRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limited_requests_total",
		Help: "Requests rejected by the per-caller token bucket",
	},
	[]string{"method", "route", "key_kind"},
)
