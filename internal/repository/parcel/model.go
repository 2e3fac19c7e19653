package parcel

import "time"

type PackageDB struct {
	TrackingID         string
	SenderID           int64
	Status             string
	BidCount           int64
	BidDeadline        *time.Time
	DeadlineDisarmedAt *time.Time
	SelectedBidID      *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type PackageModifyDB struct {
	TrackingID    *string
	SenderID      *int64
	Status        *string
	SelectedBidID *int64
}
