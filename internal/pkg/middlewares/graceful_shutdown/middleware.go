package graceful_shutdown

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
)

const shuttingDownBody = `{"code":"shutting_down","message":"Service is shutting down"}`

// Middleware отклоняет запросы на остановке инстанса.
//
// Новые SSE-подписки отклоняются сразу после SIGTERM: хаб закроет их через
// readinessDrainDelay, и клиенту выгоднее переподключиться к другому инстансу.
// Обычные запросы в этом окне еще обслуживаются и отклоняются только после отмены ongoingCtx.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isShuttingDown.Load() {
				next.ServeHTTP(w, r)
				return
			}

			if ongoingCtx.Err() != nil || isStreamSubscription(r) {
				reject(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isStreamSubscription(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/stream")
}

func reject(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Connection", "close")
	h.Set("Retry-After", "1")
	h.Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte(shuttingDownBody))
}
