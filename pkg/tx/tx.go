package tx

import (
	"context"
	"errors"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	retrierconfig "bidding-service/pkg/retrier"
	"bidding-service/pkg/retrier/backoff_adapter"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
)

const (
	initialInterval = 10 * time.Millisecond
	maxInterval     = 200 * time.Millisecond
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2
)

type ctxKey struct{}

// Manager инкапсулирует логику управления транзакциями.
//
// Все транзакции выполняются на уровне Serializable. Конфликты сериализации
// и дедлоки повторяются целиком (вся fn), но только на внешнем уровне:
// вложенный Do присоединяется к уже открытой транзакции.
type Manager struct {
	internal *manager.Manager
	retrier  retrierconfig.Retrier
}

type Option func(cfg *retrierconfig.Config)

// WithRetryNotify позволяет подписаться на повторы (метрики, логи).
func WithRetryNotify(fn retrierconfig.NotifyFunc) Option {
	return func(cfg *retrierconfig.Config) {
		cfg.OnRetry = fn
	}
}

// New создаёт новый менеджер транзакций.
func New(db pgxv5.Transactional, opts ...Option) *Manager {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     IsRetryable,
	}
	for _, opt := range opts {
		opt(&retryConfig)
	}

	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		retrier:  backoff_adapter.New(retryConfig),
	}
}

func (m *Manager) execWithIsoLevel(
	ctx context.Context,
	level pgx.TxIsoLevel,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level}),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return m.execWithIsoLevel(ctx, pgx.Serializable, fn)
	}

	return m.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return m.execWithIsoLevel(context.WithValue(ctx, ctxKey{}, true), pgx.Serializable, fn)
	})
}

// IsRetryable сообщает, можно ли повторить транзакцию целиком.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrSerializationFailure || pgErr.Code == pgErrDeadlockDetected
}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(ctxKey{}).(bool)
	return ok && v
}
