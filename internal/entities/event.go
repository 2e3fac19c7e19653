package entities

import (
	"time"

	"github.com/google/uuid"
)

type BidEventType string

const (
	EventBidSubmitted BidEventType = "bid_submitted"
	EventBidWithdrawn BidEventType = "bid_withdrawn"
	EventBidSelected  BidEventType = "bid_selected"
	EventBidRejected  BidEventType = "bid_rejected"
	EventBidExpired   BidEventType = "bid_expired"
)

func (t BidEventType) String() string {
	return string(t)
}

// EventReason уточняет причину перехода, не расширяя enum статусов ставки.
type EventReason string

const (
	ReasonNone             EventReason = ""
	ReasonOutbid           EventReason = "outbid"
	ReasonPackageCancelled EventReason = "package_cancelled"
	ReasonDeadlineElapsed  EventReason = "deadline_elapsed"
)

func (r EventReason) String() string {
	return string(r)
}

type BidEvent struct {
	ID          int64
	EventID     uuid.UUID
	Type        BidEventType
	BidID       int64
	PackageID   string
	CourierID   int64
	SenderID    int64
	Status      BidStatusType
	Reason      EventReason
	OccurredAt  time.Time
	PublishedAt *time.Time
}

func NewBidEvent(bid Bid, senderID int64, reason EventReason, at time.Time) BidEvent {
	return BidEvent{
		EventID:    uuid.New(),
		Type:       EventTypeForStatus(bid.Status),
		BidID:      bid.ID,
		PackageID:  bid.PackageID,
		CourierID:  bid.CourierID,
		SenderID:   senderID,
		Status:     bid.Status,
		Reason:     reason,
		OccurredAt: at,
	}
}

func EventTypeForStatus(status BidStatusType) BidEventType {
	switch status {
	case BidSelected:
		return EventBidSelected
	case BidRejected:
		return EventBidRejected
	case BidWithdrawn:
		return EventBidWithdrawn
	case BidExpired:
		return EventBidExpired
	default:
		return EventBidSubmitted
	}
}

type EventFilter struct {
	PackageID string
	AfterID   int64
	Limit     uint64
}
