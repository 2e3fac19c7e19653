package healthcheck_head

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const pingTimeout = time.Second

// Dependency - именованная проверка, имя попадает в X-Health-Failed.
type Dependency struct {
	Name   string
	Pinger Pinger
}

type Handler struct {
	isShuttingDown *atomic.Bool
	deps           []Dependency
}

func New(isShuttingDown *atomic.Bool, deps ...Dependency) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
		deps:           deps,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if failed := h.failedDependencies(r.Context()); len(failed) > 0 {
		w.Header().Set("X-Health-Failed", strings.Join(failed, ","))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// failedDependencies пингует все зависимости параллельно, медленная не задерживает остальные дольше pingTimeout.
func (h *Handler) failedDependencies(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	var (
		mu     sync.Mutex
		failed []string
		g      errgroup.Group
	)
	for _, dep := range h.deps {
		g.Go(func() error {
			if err := dep.Pinger.Ping(ctx); err != nil {
				mu.Lock()
				failed = append(failed, dep.Name)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	slices.Sort(failed)
	return failed
}
