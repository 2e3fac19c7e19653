// Package integration_test поднимает общий пул к тестовой базе для тестов с тегом integration.
// Переменные POSTGRES_* подгружает Makefile из .env.test.
package integration_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"bidding-service/internal/pkg/config"
	"bidding-service/internal/pkg/postgres"
	"bidding-service/migrations"
	"bidding-service/pkg/logger"
	"bidding-service/pkg/querier"
	"bidding-service/pkg/tx"
)

const (
	statementTimeout = 2 * time.Second
	// конкурентные тесты координатора держат несколько транзакций одновременно
	minPoolSize = 10
)

// порядок важен только для читаемости, CASCADE все равно снимает зависимости
const truncateAll = `TRUNCATE TABLE bid_events, bids, packages RESTART IDENTITY CASCADE`

var (
	setupOnce sync.Once
	setupErr  error
	pool      *pgxpool.Pool
	q         *querier.Querier
)

func connect() (*querier.Querier, error) {
	setupOnce.Do(func() {
		cfg, err := config.LoadDatabase()
		if err != nil {
			setupErr = fmt.Errorf("test database config: %w", err)
			return
		}
		cfg.MaxConns = max(cfg.MaxConns, minPoolSize)

		ctx := context.Background()
		pool, err = postgres.NewConnPool(ctx, logger.Nop(), cfg)
		if err != nil {
			setupErr = fmt.Errorf("test database pool: %w", err)
			return
		}

		if err := migrate(ctx, pool); err != nil {
			setupErr = fmt.Errorf("test database migrations: %w", err)
			return
		}

		q = querier.New(pool, pgxv5.DefaultCtxGetter)
	})

	return q, setupErr
}

// GetQuerier возвращает общий querier, тест падает сразу, если базы нет.
func GetQuerier() *querier.Querier {
	q, err := connect()
	if err != nil {
		panic(err)
	}
	return q
}

// GetTxManager - менеджер транзакций поверх того же пула, что и GetQuerier.
func GetTxManager() *tx.Manager {
	GetQuerier()
	return tx.New(pool)
}

func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// SetupDB очищает таблицы, применяет seed и чистит за тестом через t.Cleanup.
func SetupDB(t *testing.T, seed string) {
	t.Helper()

	q, err := connect()
	require.NoError(t, err)

	exec(t, q, truncateAll)
	if seed != "" {
		exec(t, q, seed)
	}

	t.Cleanup(func() { TeardownDB(t) })
}

func TeardownDB(t *testing.T) {
	t.Helper()
	exec(t, GetQuerier(), truncateAll)
}

func exec(t *testing.T, q *querier.Querier, sql string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := q.Exec(ctx, sql)
	require.NoError(t, err)
}
