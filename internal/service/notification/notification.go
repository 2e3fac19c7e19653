package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bidding-service/internal/entities"
	"bidding-service/internal/pkg/metrics"
)

const (
	defaultEventsLimit uint64 = 100
	maxEventsLimit     uint64 = 500
)

// Service - раздача событий по ставкам: relay outbox-а в kafka и SSE, pull-лента.
type Service struct {
	eventRepository   EventRepository
	packageRepository PackageRepository
	publisher         Publisher
	broadcaster       Broadcaster
	txManager         TxManager
	batchSize         uint64
}

func New(
	eventRepository EventRepository,
	packageRepository PackageRepository,
	publisher Publisher,
	broadcaster Broadcaster,
	txManager TxManager,
	batchSize uint64,
) *Service {
	return &Service{
		eventRepository:   eventRepository,
		packageRepository: packageRepository,
		publisher:         publisher,
		broadcaster:       broadcaster,
		txManager:         txManager,
		batchSize:         batchSize,
	}
}

// RelayPending публикует пачку неопубликованных событий и помечает их опубликованными.
// Доставка at-least-once: при сбое после publish пачка уйдет повторно в следующий тик.
// SSE получают события только после коммита.
func (s *Service) RelayPending(ctx context.Context) (int, error) {
	var published []entities.BidEvent

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		published = nil

		events, err := s.eventRepository.ClaimUnpublished(ctx, s.batchSize)
		if err != nil {
			return fmt.Errorf("claim unpublished events: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		if err := s.publisher.Publish(ctx, events); err != nil {
			return fmt.Errorf("%w: %w", ErrPublish, err)
		}

		ids := make([]int64, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}

		if _, err := s.eventRepository.MarkPublished(ctx, ids, time.Now().UTC()); err != nil {
			return fmt.Errorf("mark events published: %w", err)
		}

		published = events
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(published) == 0 {
		return 0, nil
	}

	now := time.Now()
	for _, e := range published {
		metrics.OutboxRelayLag.Observe(now.Sub(e.OccurredAt).Seconds())
	}
	metrics.OutboxPublishedTotal.Add(float64(len(published)))

	s.broadcaster.Broadcast(published)

	return len(published), nil
}

// ListEvents - pull-лента событий посылки после курсора AfterID.
func (s *Service) ListEvents(ctx context.Context, filter entities.EventFilter) ([]entities.BidEvent, error) {
	if strings.TrimSpace(filter.PackageID) == "" {
		return nil, fmt.Errorf("%w: package id is required", ErrInvalidFilter)
	}
	if filter.AfterID < 0 {
		return nil, fmt.Errorf("%w: negative cursor", ErrInvalidFilter)
	}

	if filter.Limit == 0 {
		filter.Limit = defaultEventsLimit
	}
	filter.Limit = min(filter.Limit, maxEventsLimit)

	if _, err := s.packageRepository.GetByTrackingID(ctx, filter.PackageID); err != nil {
		return nil, fmt.Errorf("get package: %w", err)
	}

	events, err := s.eventRepository.ListByPackage(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}
