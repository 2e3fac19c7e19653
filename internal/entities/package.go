package entities

import "time"

// Package - посылка, на которую курьеры делают ставки.
type Package struct {
	TrackingID         string
	SenderID           int64
	Status             PackageStatusType
	BidCount           int64
	BidDeadline        *time.Time
	DeadlineDisarmedAt *time.Time
	SelectedBidID      *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type PackageStatusType string

const (
	PackageOpen      PackageStatusType = "open"
	PackageAllocated PackageStatusType = "allocated"
	PackageExpired   PackageStatusType = "expired"
	PackageCancelled PackageStatusType = "cancelled"
)

func (s PackageStatusType) String() string {
	return string(s)
}

// IsOpenForBidding: статус open и дедлайн либо не взведен, либо еще не наступил.
// Граница строгая: в момент now == deadline торги уже закрыты.
func (p *Package) IsOpenForBidding(now time.Time) bool {
	if p.Status != PackageOpen {
		return false
	}
	if p.BidDeadline == nil {
		return true
	}
	return now.Before(*p.BidDeadline)
}

// DeadlineElapsed сообщает, должен ли sweep экспирить посылку.
func (p *Package) DeadlineElapsed(now time.Time) bool {
	return p.Status == PackageOpen &&
		p.DeadlineDisarmedAt == nil &&
		p.BidDeadline != nil &&
		!now.Before(*p.BidDeadline)
}

type PackageModify struct {
	TrackingID    *string
	SenderID      *int64
	Status        *PackageStatusType
	SelectedBidID *int64
}

// PackageBids - ответ listBids: посылка и ставки в порядке отображения.
type PackageBids struct {
	Package Package
	Bids    []Bid
}

type Allocation struct {
	Package  Package
	Winner   Bid
	Rejected []Bid
}

type Cancellation struct {
	Package  Package
	Rejected []Bid
}
