package event_relay

import (
	"context"
	"time"

	"bidding-service/pkg/logger"
)

type Service interface {
	RelayPending(ctx context.Context) (int, error)
}

// EventRelay выгребает outbox событий пачками до опустошения или таймаута тика.
type EventRelay struct {
	log        logger.Logger
	service    Service
	interval   time.Duration
	maxBatches int
}

func NewEventRelay(log logger.Logger, service Service, interval time.Duration, maxBatches int) *EventRelay {
	if maxBatches <= 0 {
		maxBatches = 1
	}

	return &EventRelay{
		log:        log,
		service:    service,
		interval:   interval,
		maxBatches: maxBatches,
	}
}

func (e *EventRelay) TTL() time.Duration {
	return e.interval
}

func (e *EventRelay) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, e.interval)
	defer cancel()

	var total int
	defer func() {
		if total > 0 {
			e.log.With(
				logger.NewField("published_events", total),
			).Debug("event relay")
		}
	}()

	for range e.maxBatches {
		published, err := e.service.RelayPending(ctxWithTimeout)
		total += published
		if err != nil {
			return err
		}
		if published == 0 {
			return nil
		}
	}

	return nil
}

func (e *EventRelay) Info() string {
	return "event relay"
}
