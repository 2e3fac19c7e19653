package querier

import (
	"context"
	"errors"
	"strconv"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrNoTransaction - блокирующий запрос (FOR UPDATE, SKIP LOCKED) вызван вне транзакции:
// lock снялся бы сразу после запроса.
var ErrNoTransaction = errors.New("row lock requested outside of transaction")

var queriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_queries_total",
		Help: "Queries sent to postgres by kind and whether they ran inside a transaction",
	},
	[]string{"kind", "in_tx"},
)

// Querier выполняет запросы в транзакции из контекста (если она есть) или напрямую в пуле.
type Querier struct {
	pool   *pgxpool.Pool
	getter *pgxv5.CtxGetter
}

func New(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Querier {
	return &Querier{
		pool:   pool,
		getter: getter,
	}
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return q.get(ctx, "exec").Exec(ctx, sql, args...)
}

func (q *Querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.get(ctx, "query").Query(ctx, sql, args...)
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.get(ctx, "query_row").QueryRow(ctx, sql, args...)
}

// SendBatch отправляет пачку запросов за один round trip. Результат нужно закрыть.
func (q *Querier) SendBatch(ctx context.Context, batch *pgx.Batch) pgx.BatchResults {
	return q.get(ctx, "batch").SendBatch(ctx, batch)
}

// QueryLocked - Query для запросов с row lock, требует открытой транзакции.
func (q *Querier) QueryLocked(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if !q.InTx(ctx) {
		return nil, ErrNoTransaction
	}
	return q.Query(ctx, sql, args...)
}

// QueryRowLocked - QueryRow для запросов с row lock, требует открытой транзакции.
func (q *Querier) QueryRowLocked(ctx context.Context, sql string, args ...any) pgx.Row {
	if !q.InTx(ctx) {
		return errRow{err: ErrNoTransaction}
	}
	return q.QueryRow(ctx, sql, args...)
}

// InTx сообщает, есть ли в контексте транзакция от tx.Manager.
func (q *Querier) InTx(ctx context.Context) bool {
	return q.getter.DefaultTrOrDB(ctx, q.pool) != pgxv5.Tr(q.pool)
}

// Ping проверяет доступность базы, используется healthcheck-ом.
func (q *Querier) Ping(ctx context.Context) error {
	return q.pool.Ping(ctx)
}

func (q *Querier) get(ctx context.Context, kind string) pgxv5.Tr {
	tr := q.getter.DefaultTrOrDB(ctx, q.pool)
	queriesTotal.WithLabelValues(kind, strconv.FormatBool(tr != pgxv5.Tr(q.pool))).Inc()
	return tr
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
