package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"bidding-service/internal/app"
	packagestatushandler "bidding-service/internal/handlers/kafka-consumer/package_status_changed"
	"bidding-service/internal/handlers/rest/healthcheck_head"
	"bidding-service/internal/pkg/config"
	"bidding-service/internal/pkg/dotenv"
	"bidding-service/internal/pkg/grpcclient"
	"bidding-service/internal/pkg/kafka"
	"bidding-service/internal/pkg/postgres"
	"bidding-service/pkg/logger"
	"bidding-service/pkg/logger/zap_adapter"
)

const (
	shutdownPeriod      = 15 * time.Second
	readinessDrainDelay = 5 * time.Second
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(zap_adapter.WithService("worker-package-status-changed"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	log := zapLogger.With(logger.NewField("component", "worker"))
	log.Info("starting package-status-changed worker")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			log.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", logger.NewField("error", err))
		return
	}
	if err := zapLogger.SetLevel(cfg.Log.Level); err != nil {
		log.Warn("keeping default log level", logger.NewField("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, zapLogger, cfg); err != nil {
		log.Error("worker failed", logger.NewField("error", err))
		return
	}
	log.Info("worker stopped")
}

// run держит две долгоживущие части: consumer и healthcheck-сервер.
// Падение любой из них останавливает вторую через общий контекст errgroup.
//
//nolint:contextcheck // consumer и сервер наследуются от context.Background(): они должны пережить SIGTERM до дренажа
func run(ctx context.Context, log logger.Logger, cfg *config.Config) error {
	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	conn, err := grpcclient.NewConnClient(ctx, log, &cfg.TrackingService)
	if err != nil {
		return fmt.Errorf("gRPC client: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Error("failed to close gRPC connection", logger.NewField("error", err))
		}
	}()

	worker, err := app.InitializeKafkaWorkerApp(ctx, log, pool, pgxv5.DefaultCtxGetter, conn, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	handler := packagestatushandler.New(log, worker.ParcelService, cfg.Kafka.Handlers.PackageStatusChanged.ProcessTimeout)
	consumer, err := kafka.NewConsumer(ctx, log, &cfg.Kafka, handler)
	if err != nil {
		return fmt.Errorf("kafka consumer: %w", err)
	}

	// consumeCtx не наследует ctx: после SIGTERM consumer дочитывает начатое,
	// пока балансировщик выводит инстанс из ротации
	consumeCtx, stopConsuming := context.WithCancel(context.Background())
	defer stopConsuming()

	var isShuttingDown atomic.Bool
	healthServer := &http.Server{
		Addr:    net.JoinHostPort("", cfg.Kafka.PortHealthcheck),
		Handler: initHealthcheckRouter(&isShuttingDown, pool, grpcclient.NewHealthPinger(conn)),
		BaseContext: func(_ net.Listener) context.Context {
			return consumeCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(consumeCtx)

	g.Go(func() error {
		log.Info("healthcheck server starting", logger.NewField("port", cfg.Kafka.PortHealthcheck))
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("healthcheck server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("kafka consumer starting",
			logger.NewField("brokers", cfg.Kafka.Brokers),
			logger.NewField("topic", cfg.Kafka.Topic),
			logger.NewField("group", cfg.Kafka.ConsumerGroup),
		)
		err := consumer.Start(gCtx)
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
			return nil
		}
		return fmt.Errorf("consumer: %w", err)
	})

	g.Go(func() error {
		select {
		case <-gCtx.Done():
			// одна из частей упала, сигнала не было
		case <-ctx.Done():
			log.Info("shutdown signal received")
			isShuttingDown.Store(true)
			time.Sleep(readinessDrainDelay)
		}

		log.Info("draining kafka messages")
		stopConsuming()
		if err := consumer.Close(); err != nil {
			log.Error("failed to close kafka consumer", logger.NewField("error", err))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
		defer cancel()
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("healthcheck server shutdown timeout, forcing close", logger.NewField("error", err))
			return healthServer.Close()
		}
		return nil
	})

	return g.Wait()
}

func initHealthcheckRouter(isShuttingDown *atomic.Bool, pool *pgxpool.Pool, tracking healthcheck_head.Pinger) http.Handler {
	mux := http.NewServeMux()
	// без tracking-service воркер не может подтвердить статус посылки и только копит лаг
	mux.Handle("/healthcheck", healthcheck_head.New(isShuttingDown,
		healthcheck_head.Dependency{Name: "postgres", Pinger: pool},
		healthcheck_head.Dependency{Name: "tracking-service", Pinger: tracking},
	))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
