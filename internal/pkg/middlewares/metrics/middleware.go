package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"bidding-service/pkg/logger"
)

const eventStreamContentType = "text/event-stream"

// monitoringRoutes дергаются мониторингом каждые несколько секунд, на Info они забивают лог.
var monitoringRoutes = map[string]struct{}{
	"/healthcheck": {},
	"/metrics":     {},
	"/ping":        {},
}

// Middleware пишет метрики и access-лог по шаблону mux-роута.
// SSE-сессии учитываются отдельной гистограммой: их длительность измеряется
// минутами и испортила бы квантили обычных запросов.
func Middleware(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeTemplate(r)

			inFlight := HTTPRequestsInFlight.WithLabelValues(route)
			inFlight.Inc()
			defer inFlight.Dec()

			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			elapsed := time.Since(start)
			status := strconv.Itoa(rw.statusCode)
			stream := rw.isEventStream()

			HTTPRequestTotal.WithLabelValues(r.Method, route, status).Inc()
			HTTPResponseSize.WithLabelValues(r.Method, route).Observe(float64(rw.written))
			if stream {
				SSESessionDuration.WithLabelValues(route).Observe(elapsed.Seconds())
			} else {
				HTTPRequestDuration.WithLabelValues(r.Method, route, status).Observe(elapsed.Seconds())
			}

			fields := []logger.Field{
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
				logger.NewField("route", route),
				logger.NewField("status", status),
				logger.NewField("bytes", rw.written),
				logger.NewField("duration", elapsed.String()),
			}
			if userID := r.Header.Get("X-User-ID"); userID != "" {
				fields = append(fields, logger.NewField("user_id", userID))
			}

			switch {
			case rw.statusCode >= http.StatusInternalServerError:
				log.Warn("HTTP request failed", fields...)
			case stream:
				log.Info("SSE session closed", fields...)
			case isMonitoringRoute(route):
				log.Debug("HTTP request", fields...)
			default:
				log.Info("HTTP request", fields...)
			}
		})
	}
}

// routeTemplate возвращает шаблон mux-роута, чтобы id не раздували кардинальность лейблов.
// Запросы мимо роутера (404, 405) схлопываются в один лейбл.
func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	template, err := route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return template
}

func isMonitoringRoute(route string) bool {
	_, ok := monitoringRoutes[route]
	return ok
}

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	written     int
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

func (rw *responseWriter) isEventStream() bool {
	return strings.HasPrefix(rw.Header().Get("Content-Type"), eventStreamContentType)
}

// Unwrap нужен http.ResponseController: SSE-обработчик флашит и снимает write deadline через обертку.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
