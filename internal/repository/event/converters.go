package event

import "bidding-service/internal/entities"

func ToDomain(e *BidEventDB) *entities.BidEvent {
	if e == nil {
		return nil
	}

	event := &entities.BidEvent{
		ID:         e.ID,
		EventID:    e.EventID,
		Type:       entities.BidEventType(e.Type),
		BidID:      e.BidID,
		PackageID:  e.PackageID,
		CourierID:  e.CourierID,
		SenderID:   e.SenderID,
		Status:     entities.BidStatusType(e.Status),
		Reason:     entities.EventReason(e.Reason),
		OccurredAt: e.OccurredAt.UTC(),
	}
	if e.PublishedAt != nil {
		publishedAt := e.PublishedAt.UTC()
		event.PublishedAt = &publishedAt
	}
	return event
}

func ToDomainList(events []BidEventDB) []entities.BidEvent {
	result := make([]entities.BidEvent, 0, len(events))
	for i := range events {
		result = append(result, *ToDomain(&events[i]))
	}
	return result
}

func FromDomain(e *entities.BidEvent) *BidEventDB {
	if e == nil {
		return nil
	}
	return &BidEventDB{
		ID:          e.ID,
		EventID:     e.EventID,
		Type:        e.Type.String(),
		BidID:       e.BidID,
		PackageID:   e.PackageID,
		CourierID:   e.CourierID,
		SenderID:    e.SenderID,
		Status:      e.Status.String(),
		Reason:      e.Reason.String(),
		OccurredAt:  e.OccurredAt,
		PublishedAt: e.PublishedAt,
	}
}
