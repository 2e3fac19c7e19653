package rate_limiter

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"bidding-service/pkg/logger"
)

const rateLimitedBody = `{"code":"rate_limited","message":"Rate limit exceeded. Try again later."}`

// exemptRoutes опрашиваются мониторингом и балансировщиком, их не ограничиваем.
var exemptRoutes = map[string]struct{}{
	"/healthcheck": {},
	"/metrics":     {},
}

// Middleware ограничивает запросы по X-User-ID, анонимные запросы - по IP.
// Один курьер, обновляющий ленту в цикле, не должен выедать лимит остальных.
func Middleware(log handlerLogger, rateLimiterQPS int, limiter KeyedLimiter) func(http.Handler) http.Handler {
	limit := strconv.Itoa(rateLimiterQPS)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeTemplate(r)
			if _, ok := exemptRoutes[route]; ok {
				next.ServeHTTP(w, r)
				return
			}

			kind, key := limiterKey(r)
			allowed, wait := limiter.ReserveKey(kind + ":" + key)
			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			RateLimitedRequestsTotal.WithLabelValues(r.Method, route, kind).Inc()
			log.Warn("rate limit exceeded",
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("key_kind", kind),
				logger.NewField("key", key),
				logger.NewField("retry_after", wait),
			)

			h := w.Header()
			h.Set("Content-Type", "application/json")
			h.Set("X-RateLimit-Limit", limit)
			h.Set("Retry-After", retryAfterSeconds(wait))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(rateLimitedBody))
		})
	}
}

// retryAfterSeconds округляет вверх: Retry-After принимает только целые секунды.
func retryAfterSeconds(wait time.Duration) string {
	seconds := math.Ceil(wait.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	// бакет с нулевым пополнением не восстановится, отдаем заведомо большое значение
	seconds = min(seconds, time.Hour.Seconds())
	return strconv.Itoa(int(seconds))
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return "unmatched"
}

func limiterKey(r *http.Request) (kind, key string) {
	if userID := r.Header.Get("X-User-ID"); userID != "" {
		return "user", userID
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip", host
}
