package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bidding-service/pkg/bidview"
	"bidding-service/pkg/logger"
	"bidding-service/pkg/logger/zap_adapter"
	retrierconfig "bidding-service/pkg/retrier"
	"bidding-service/pkg/retrier/backoff_adapter"
)

const (
	snapshotTimeout = 10 * time.Second
	// sweep экспирит посылку не мгновенно, poll по обратному отсчету чуть откладываем
	deadlineGrace = time.Second

	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	randomization   = 0.5
	multiplier      = 2
)

type options struct {
	baseURL      string
	packageID    string
	userID       int64
	pollInterval time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.baseURL, "addr", "http://localhost:8080", "bidding-service base URL")
	flag.StringVar(&opts.packageID, "package", "", "tracking id of the package to watch")
	flag.Int64Var(&opts.userID, "user-id", 0, "sender or courier id sent as X-User-ID")
	flag.DurationVar(&opts.pollInterval, "poll-interval", 30*time.Second, "authoritative poll interval")
	logLevel := flag.String("log-level", "info", "debug also prints stream reconnects and poll results")
	flag.Parse()

	zapLogger, err := zap_adapter.NewZapAdapter(zap_adapter.WithConsoleEncoding())
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	if err := zapLogger.SetLevel(*logLevel); err != nil {
		stdlog.Fatalf("invalid -log-level: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With(
		logger.NewField("package_id", opts.packageID),
	)

	if opts.packageID == "" || opts.userID <= 0 || opts.pollInterval <= 0 {
		mainLog.Error("invalid flags: -package, -user-id and -poll-interval are required")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, mainLog, opts); err != nil && !errors.Is(err, context.Canceled) {
		mainLog.Error("watcher failed", logger.NewField("error", err))
		return
	}
	mainLog.Info("watcher stopped")
}

type watcher struct {
	log    logger.Logger
	opts   options
	client *bidview.Client
	view   *bidview.View
	pollCh chan struct{}
	skew   time.Duration
}

func run(ctx context.Context, log logger.Logger, opts options) error {
	w := &watcher{
		log:    log,
		opts:   opts,
		client: bidview.NewClient(opts.baseURL, opts.userID, &http.Client{}),
		view:   bidview.New(opts.packageID),
		pollCh: make(chan struct{}, 1),
	}

	if skew, err := w.client.ClockSkew(ctx); err != nil {
		log.With(logger.NewField("error", err)).Warn("clock skew unknown, using local clock")
	} else {
		w.skew = skew
		log.Debug("clock skew measured", logger.NewField("skew", skew))
	}

	// первый poll обязателен: push не воспроизводит историю
	if err := w.poll(ctx); err != nil {
		return fmt.Errorf("initial poll: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.streamLoop(ctx)
	})
	g.Go(func() error {
		return w.pollLoop(ctx)
	})

	return g.Wait()
}

// streamLoop держит SSE подписку и переподключается с backoff.
// После каждого разрыва запрашивает внеочередной poll: события за время
// разрыва потеряны.
func (w *watcher) streamLoop(ctx context.Context) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  0, // переподключаемся бесконечно
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry: func(err error) bool {
			return !errors.Is(err, bidview.ErrUnexpectedStatus)
		},
		OnRetry: func(err error, next time.Duration) {
			w.log.With(
				logger.NewField("error", err),
				logger.NewField("next_attempt_in", next),
			).Warn("event stream disconnected")
			w.requestPoll()
		},
	})

	return retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		w.log.Debug("subscribing to event stream")
		return w.client.Stream(ctx, w.opts.packageID, w.applyEvent)
	})
}

func (w *watcher) applyEvent(event bidview.Event) error {
	changed, err := w.view.Apply(event.BidID, event.Status)
	if err != nil {
		w.log.With(
			logger.NewField("bid_id", event.BidID),
			logger.NewField("error", err),
		).Warn("skip malformed event")
		return nil
	}

	if changed {
		w.log.With(
			logger.NewField("bid_id", event.BidID),
			logger.NewField("status", event.Status),
			logger.NewField("event", event.Type),
			logger.NewField("source", "push"),
		).Info("bid status changed")
	}
	return nil
}

func (w *watcher) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(w.opts.pollInterval)
	defer ticker.Stop()

	countdown := time.NewTimer(time.Hour)
	countdown.Stop()
	defer countdown.Stop()
	w.armCountdown(countdown)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-countdown.C:
			w.log.Info("countdown reached zero, polling")
		case <-w.pollCh:
		}

		if err := w.poll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.With(logger.NewField("error", err)).Warn("poll failed")
			continue
		}
		w.armCountdown(countdown)
	}
}

func (w *watcher) armCountdown(countdown *time.Timer) {
	wait, ok := w.view.NextDeadlinePoll(w.now())
	if !ok || wait == 0 {
		return
	}
	countdown.Reset(wait + deadlineGrace)
}

func (w *watcher) poll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	snapshot, err := w.client.Snapshot(ctx, w.opts.packageID)
	if err != nil {
		return err
	}

	changes, err := w.view.Reconcile(snapshot)
	if err != nil {
		return err
	}

	for _, change := range changes {
		w.log.With(
			logger.NewField("bid_id", change.BidID),
			logger.NewField("from", change.From),
			logger.NewField("status", change.To),
			logger.NewField("source", "poll"),
		).Info("bid status changed")
	}

	fields := []logger.Field{
		logger.NewField("package_status", snapshot.PackageStatus),
		logger.NewField("bids", len(snapshot.Bids)),
	}
	if seconds, ok := w.view.Countdown(w.now()); ok {
		fields = append(fields, logger.NewField("seconds_remaining", seconds))
	}
	w.log.Debug("poll reconciled", fields...)

	return nil
}

// now - локальное время, приведенное к часам сервера.
func (w *watcher) now() time.Time {
	return time.Now().Add(w.skew)
}

func (w *watcher) requestPoll() {
	select {
	case w.pollCh <- struct{}{}:
	default:
	}
}
