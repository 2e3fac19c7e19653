package entities

import "time"

// Parcel - посылка в том виде, в каком ее отдает tracking-service.
type Parcel struct {
	TrackingID string
	SenderID   int64
	Status     ParcelStatusType
	CreatedAt  time.Time
}

type ParcelStatusType string

const (
	ParcelCreated   ParcelStatusType = "created"
	ParcelCancelled ParcelStatusType = "cancelled"
	ParcelDelivered ParcelStatusType = "delivered"
)

func (s ParcelStatusType) String() string {
	return string(s)
}

type ParcelModify struct {
	TrackingID *string
	Status     *ParcelStatusType
}
