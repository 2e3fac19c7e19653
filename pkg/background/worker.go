package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"

	"bidding-service/pkg/logger"
)

var (
	taskRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "background_task_runs_total",
			Help: "Background task runs by result (ok, error, panic)",
		},
		[]string{"task", "result"},
	)

	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "background_task_duration_seconds",
			Help:    "Background task run duration",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"task"},
	)
)

// Task - периодическая задача: sweep дедлайнов, relay outbox-а.
type Task interface {
	// TTL - интервал между запусками. Запуски одной задачи не перекрываются.
	TTL() time.Duration
	Do(context.Context) error
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

type Worker struct {
	log   handlerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New прогревает задачи: каждая выполняется один раз синхронно, и первая ошибка
// или паника прерывает старт. После прогрева задачи крутятся по своим TTL до отмены ctx.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}

	warmup, warmupCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		warmup.Go(func() error {
			log.Info("warming up task", logger.NewField("task", task.Info()))
			return worker.runOnce(warmupCtx, task)
		})
	}
	if err := warmup.Wait(); err != nil {
		return nil, fmt.Errorf("warm up tasks: %w", err)
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.loop(ctx, task)
		}()
	}

	return worker, nil
}

// Wait ждет остановки всех задач после отмены контекста. Вызывается до закрытия пула,
// чтобы sweep или relay не оборвались посреди транзакции.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) Tasks() []string {
	infos := make([]string, 0, len(w.tasks))
	for _, task := range w.tasks {
		infos = append(infos, task.Info())
	}
	return infos
}

func (w *Worker) loop(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("task has no interval, periodic runs disabled",
			logger.NewField("task", task.Info()),
			logger.NewField("ttl", ttl),
		)
		return
	}

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("task stopped", logger.NewField("task", task.Info()))
			return
		case <-ticker.C:
			if err := w.runOnce(ctx, task); err != nil {
				w.log.Error("task run failed",
					logger.NewField("task", task.Info()),
					logger.NewField("error", err),
				)
			}
		}
	}
}

// runOnce превращает панику задачи в ошибку и пишет метрики запуска.
func (w *Worker) runOnce(ctx context.Context, task Task) (err error) {
	name := task.Info()
	start := time.Now()

	defer func() {
		taskDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

		if r := recover(); r != nil {
			taskRunsTotal.WithLabelValues(name, "panic").Inc()
			w.log.Error("task panic",
				logger.NewField("task", name),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("task %q panicked: %v", name, r)
			return
		}

		result := "ok"
		if err != nil {
			result = "error"
		}
		taskRunsTotal.WithLabelValues(name, result).Inc()
	}()

	return task.Do(ctx)
}
