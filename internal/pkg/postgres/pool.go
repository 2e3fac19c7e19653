package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bidding-service/internal/pkg/config"
	"bidding-service/pkg/logger"
	retrierconfig "bidding-service/pkg/retrier"
	"bidding-service/pkg/retrier/backoff_adapter"
)

const (
	applicationName   = "bidding-service"
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 30 * time.Second
)

// пул поднимается вместе с postgres в docker-compose, поэтому ждем его до двух минут
var pingRetry = retrierconfig.Config{
	InitialInterval: 2 * time.Second,
	MaxInterval:     30 * time.Second,
	MaxElapsedTime:  2 * time.Minute,
	Randomization:   0.5,
	Multiplier:      2,
}

func NewConnPool(ctx context.Context, log logger.Logger, cfg *config.Database) (*pgxpool.Pool, error) {
	poolCfg, err := newPoolConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("pool config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connection pool: %w", err)
	}

	dbLog := log.With(
		logger.NewField("host", cfg.Host),
		logger.NewField("port", cfg.Port),
		logger.NewField("db", cfg.DBName),
		logger.NewField("max_conns", cfg.MaxConns),
	)

	if err := ping(ctx, dbLog, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database connection: %w", err)
	}

	return pool, nil
}

// newPoolConfig собирает DSN через url.URL: пароль с @ или / не ломает строку.
// statement_timeout ограничивает любой запрос сессии, включая sweep и relay под блокировкой посылки.
func newPoolConfig(cfg *config.Database) (*pgxpool.Config, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   "/" + cfg.DBName,
		RawQuery: url.Values{
			"sslmode": []string{cfg.SSLMode},
		}.Encode(),
	}

	poolCfg, err := pgxpool.ParseConfig(dsn.String())
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = maxConnLifetime
	poolCfg.MaxConnIdleTime = maxConnIdleTime
	poolCfg.HealthCheckPeriod = healthCheckPeriod

	runtime := poolCfg.ConnConfig.RuntimeParams
	runtime["application_name"] = applicationName
	if cfg.StatementTimeout > 0 {
		runtime["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}

	return poolCfg, nil
}

func ping(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	var attempt uint64
	err := backoff_adapter.New(pingRetry).ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.Info("pinging database", logger.NewField("attempt", attempt))
		return pool.Ping(ctx)
	})
	if err != nil {
		log.Error("database unreachable",
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		)
		return fmt.Errorf("ping: %w", err)
	}

	log.Info("database connection established", logger.NewField("attempts", attempt))
	return nil
}
