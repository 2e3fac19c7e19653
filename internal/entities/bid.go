package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bid struct {
	ID                     int64
	PackageID              string
	CourierID              int64
	ProposedPrice          decimal.Decimal
	EstimatedDeliveryHours *int32
	EstimatedPickupTime    *time.Time
	Message                *string
	Status                 BidStatusType
	CreatedAt              time.Time
	UpdatedAt              time.Time
	SelectedAt             *time.Time
}

type BidStatusType string

const (
	BidPending   BidStatusType = "pending"
	BidSelected  BidStatusType = "selected"
	BidRejected  BidStatusType = "rejected"
	BidWithdrawn BidStatusType = "withdrawn"
	BidExpired   BidStatusType = "expired"
)

func (s BidStatusType) String() string {
	return string(s)
}

func (s BidStatusType) IsValid() bool {
	switch s {
	case BidPending, BidSelected, BidRejected, BidWithdrawn, BidExpired:
		return true
	default:
		return false
	}
}

// IsTerminal: из терминального статуса переходов нет.
func (s BidStatusType) IsTerminal() bool {
	return s.IsValid() && s != BidPending
}

// CanTransitionTo описывает автомат ставки: все переходы только из pending.
func (s BidStatusType) CanTransitionTo(next BidStatusType) bool {
	return s == BidPending && next.IsTerminal()
}

type BidModify struct {
	ID                     *int64
	PackageID              *string
	CourierID              *int64
	ProposedPrice          *decimal.Decimal
	EstimatedDeliveryHours *int32
	EstimatedPickupTime    *time.Time
	Message                *string
	Status                 *BidStatusType
	CreatedAt              *time.Time
}

type CourierBidsFilter struct {
	CourierID int64
	Status    *BidStatusType
	Limit     uint64
}
