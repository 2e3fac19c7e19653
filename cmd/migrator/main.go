package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"bidding-service/internal/pkg/config"
	"bidding-service/internal/pkg/dotenv"
	"bidding-service/internal/pkg/postgres"
	"bidding-service/migrations"
	"bidding-service/pkg/logger"
	"bidding-service/pkg/logger/zap_adapter"
)

const (
	commandUp     = "up"
	commandDown   = "down"
	commandStatus = "status"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(zap_adapter.WithService("migrator"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With(logger.NewField("component", "migrator"))

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	command := commandUp
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		os.Exit(1)
	}

	if err := run(context.Background(), appLogger, cfg, command); err != nil {
		mainLog.Error("migration failed",
			logger.NewField("command", command),
			logger.NewField("error", err),
		)
		os.Exit(1)
	}

	mainLog.Info("migration finished", logger.NewField("command", command))
}

func run(ctx context.Context, log logger.Logger, cfg *config.Database, command string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	pool, err := postgres.NewConnPool(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close sql.DB", logger.NewField("error", err))
		}
	}()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	switch command {
	case commandUp:
		return goose.UpContext(ctx, db, ".")
	case commandDown:
		return goose.DownContext(ctx, db, ".")
	case commandStatus:
		return goose.StatusContext(ctx, db, ".")
	default:
		return fmt.Errorf("unknown command %q, expected one of: up, down, status", command)
	}
}
