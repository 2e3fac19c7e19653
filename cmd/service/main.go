package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	application "bidding-service/internal/app"
	"bidding-service/internal/handlers/rest/bid_post"
	"bidding-service/internal/handlers/rest/bid_select_post"
	"bidding-service/internal/handlers/rest/bid_withdraw_post"
	"bidding-service/internal/handlers/rest/courier_bids_get"
	"bidding-service/internal/handlers/rest/healthcheck_head"
	"bidding-service/internal/handlers/rest/package_bids_get"
	"bidding-service/internal/handlers/rest/package_cancel_post"
	"bidding-service/internal/handlers/rest/package_events_get"
	"bidding-service/internal/handlers/rest/package_get"
	"bidding-service/internal/handlers/rest/package_post"
	"bidding-service/internal/handlers/rest/ping_get"
	"bidding-service/internal/handlers/rest/stream_get"
	"bidding-service/internal/pkg/config"
	"bidding-service/internal/pkg/dotenv"
	"bidding-service/internal/pkg/hub"
	"bidding-service/internal/pkg/kafka"
	metrics_system "bidding-service/internal/pkg/metrics"
	"bidding-service/internal/pkg/middlewares/graceful_shutdown"
	"bidding-service/internal/pkg/middlewares/metrics"
	"bidding-service/internal/pkg/middlewares/rate_limiter"
	"bidding-service/internal/pkg/middlewares/timeout"
	"bidding-service/internal/pkg/postgres"
	"bidding-service/pkg/logger"
	"bidding-service/pkg/logger/zap_adapter"
	"bidding-service/pkg/token_bucket"
)

const (
	// rateLimiterIdleTTL - через сколько простоя бакет клиента выбрасывается.
	rateLimiterIdleTTL    = 10 * time.Minute
	systemMetricsInterval = 15 * time.Second

	allocationTimeoutFactor = 3
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(zap_adapter.WithService("bidding-service"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting bidding-service application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	if err := zapLogger.SetLevel(cfg.Log.Level); err != nil {
		mainLog.Warn("keeping default log level", logger.NewField("error", err))
	}

	err = run(context.Background(), cfg, appLogger, zapLogger.LevelHandler())
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger, logLevel http.Handler) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	producer, err := kafka.NewProducer(ctx, log, &cfg.Kafka, kafka.ParseBrokers(cfg.Kafka.Brokers))
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close Kafka producer",
				logger.NewField("error", err),
			)
		}
	}()

	// workersCtx отменяется раньше pool.Close: sweep и relay не должны
	// остаться посреди транзакции на закрытом пуле
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	businessApp, err := application.InitializeApplication(workersCtx, log, pool, pgxv5.DefaultCtxGetter, producer, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(workersCtx, systemMetricsInterval)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, pool, businessApp, cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second, // SSE handler снимает deadline для своего соединения
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, pool, logLevel),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// SSE соединения живут бесконечно, закрываем подписки до Shutdown,
	// иначе он будет ждать их до shutdownPeriod
	businessApp.Hub.Close()

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	stopWorkers()
	businessApp.BackgroundWorkers.Wait()
	runLog.Info("Background tasks stopped")

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	pool *pgxpool.Pool,
	app *application.Application,
	cfg *config.Config,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	// select и cancel идут через serializable транзакцию с повторами
	allocationTimeout := allocationTimeoutFactor * cfg.Server.RequestTimeout
	router.Use(timeout.Middleware(cfg.Server.RequestTimeout,
		timeout.WithRouteTimeout("/bids/{id}/select", allocationTimeout),
		timeout.WithRouteTimeout("/packages/{id}/cancel", allocationTimeout),
	))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(
		log,
		cfg.Server.RateLimiterQPS,
		token_bucket.NewKeyedBuckets(cfg.Server.RateLimiterQPS, float64(cfg.Server.RateLimiterBurst), rateLimiterIdleTTL),
	))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, healthcheck_head.Dependency{Name: "postgres", Pinger: pool})).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/packages", package_post.New(log, app.ServicePackage)).Methods("POST")
	router.Handle("/packages/{id}", package_get.New(log, app.ServicePackage)).Methods("GET")
	router.Handle("/packages/{id}/cancel", package_cancel_post.New(log, app.ServiceAllocation)).Methods("POST")
	router.Handle("/packages/{id}/bids", bid_post.New(log, app.ServiceBid)).Methods("POST")
	router.Handle("/packages/{id}/bids", package_bids_get.New(log, app.ServiceBid)).Methods("GET")
	router.Handle("/packages/{id}/events", package_events_get.New(log, app.ServiceEvents)).Methods("GET")

	router.Handle("/bids/{id}/withdraw", bid_withdraw_post.New(log, app.ServiceBid)).Methods("POST")
	router.Handle("/bids/{id}/select", bid_select_post.New(log, app.ServiceAllocation)).Methods("POST")

	router.Handle("/couriers/{id}/bids", courier_bids_get.New(log, app.ServiceBid)).Methods("GET")

	heartbeat := cfg.SSE.HeartbeatInterval
	router.Handle("/packages/{id}/stream", stream_get.New(log, app.Hub, hub.TopicPackage, heartbeat)).Methods("GET")
	router.Handle("/couriers/{id}/stream", stream_get.New(log, app.Hub, hub.TopicCourier, heartbeat)).Methods("GET")
	router.Handle("/senders/{id}/stream", stream_get.New(log, app.Hub, hub.TopicSender, heartbeat)).Methods("GET")

	return router
}

// initPprofRouter - служебный сервер, наружу не публикуется.
func initPprofRouter(isShuttingDown *atomic.Bool, pool *pgxpool.Pool, logLevel http.Handler) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, healthcheck_head.Dependency{Name: "postgres", Pinger: pool})).Methods("HEAD")
	router.Handle("/debug/log-level", logLevel).Methods("GET", "PUT")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
