package timeout

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

type Option func(*settings)

type settings struct {
	byRoute map[string]time.Duration
}

// WithRouteTimeout задает таймаут для шаблона mux-роута, например "/bids/{id}/select".
// Нужен ручкам, чьи транзакции могут повторяться на конфликте сериализации.
func WithRouteTimeout(route string, timeout time.Duration) Option {
	return func(s *settings) {
		s.byRoute[route] = timeout
	}
}

// Middleware ограничивает время обработки запроса. SSE-потоки не ограничиваются:
// они живут до отключения клиента или остановки хаба.
func Middleware(timeout time.Duration, opts ...Option) func(http.Handler) http.Handler {
	s := &settings{byRoute: make(map[string]time.Duration)}
	for _, opt := range opts {
		opt(s)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isEventStream(r) {
				next.ServeHTTP(w, r)
				return
			}

			// r.Context() = ongoingCtx (из BaseContext)
			ctx, cancel := context.WithTimeout(r.Context(), s.timeoutFor(r, timeout))
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *settings) timeoutFor(r *http.Request, fallback time.Duration) time.Duration {
	route := mux.CurrentRoute(r)
	if route == nil {
		return fallback
	}
	template, err := route.GetPathTemplate()
	if err != nil {
		return fallback
	}
	if d, ok := s.byRoute[template]; ok {
		return d
	}
	return fallback
}

func isEventStream(r *http.Request) bool {
	return strings.HasSuffix(r.URL.Path, "/stream") ||
		strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}
