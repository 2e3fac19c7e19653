package bid

import "time"

type BidDB struct {
	ID                     int64
	PackageID              string
	CourierID              int64
	ProposedPrice          string
	EstimatedDeliveryHours *int32
	EstimatedPickupTime    *time.Time
	Message                *string
	Status                 string
	CreatedAt              time.Time
	UpdatedAt              time.Time
	SelectedAt             *time.Time
}

type BidModifyDB struct {
	PackageID              *string
	CourierID              *int64
	ProposedPrice          *string
	EstimatedDeliveryHours *int32
	EstimatedPickupTime    *time.Time
	Message                *string
	Status                 *string
	CreatedAt              *time.Time
}
