package bid_expiry

import (
	"context"
	"errors"
	"time"

	"bidding-service/internal/service/deadline"
	"bidding-service/pkg/logger"
)

type Service interface {
	SweepExpired(ctx context.Context) (int64, error)
}

type BidExpiry struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewBidExpiry(log logger.Logger, service Service, interval time.Duration) *BidExpiry {
	return &BidExpiry{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (b *BidExpiry) TTL() time.Duration {
	return b.interval
}

// Do прогоняет один sweep. Сбой отдельных посылок не считается ошибкой задачи:
// они остаются в выборке и подхватываются следующим тиком.
func (b *BidExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, b.interval)
	defer cancel()

	expired, err := b.service.SweepExpired(ctxWithTimeout)

	if expired > 0 {
		b.log.With(
			logger.NewField("expired_bids", expired),
		).Info("bid expiry")
	}

	if errors.Is(err, deadline.ErrSweep) {
		b.log.With(
			logger.NewField("error", err),
		).Warn("bid expiry partially failed")
		return nil
	}

	return err
}

func (b *BidExpiry) Info() string {
	return "bid expiry"
}
