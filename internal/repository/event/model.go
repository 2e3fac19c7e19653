package event

import (
	"time"

	"github.com/google/uuid"
)

type BidEventDB struct {
	ID          int64
	EventID     uuid.UUID
	Type        string
	BidID       int64
	PackageID   string
	CourierID   int64
	SenderID    int64
	Status      string
	Reason      string
	OccurredAt  time.Time
	PublishedAt *time.Time
}
