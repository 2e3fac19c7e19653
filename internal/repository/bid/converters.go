package bid

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bidding-service/internal/entities"
)

func ToDomain(b *BidDB) (*entities.Bid, error) {
	if b == nil {
		return nil, nil
	}

	price, err := decimal.NewFromString(b.ProposedPrice)
	if err != nil {
		return nil, fmt.Errorf("parse proposed price %q: %w", b.ProposedPrice, err)
	}

	return &entities.Bid{
		ID:                     b.ID,
		PackageID:              b.PackageID,
		CourierID:              b.CourierID,
		ProposedPrice:          price,
		EstimatedDeliveryHours: b.EstimatedDeliveryHours,
		EstimatedPickupTime:    toUTC(b.EstimatedPickupTime),
		Message:                b.Message,
		Status:                 entities.BidStatusType(b.Status),
		CreatedAt:              b.CreatedAt.UTC(),
		UpdatedAt:              b.UpdatedAt.UTC(),
		SelectedAt:             toUTC(b.SelectedAt),
	}, nil
}

func ToDomainList(bids []BidDB) ([]entities.Bid, error) {
	result := make([]entities.Bid, 0, len(bids))
	for i := range bids {
		bid, err := ToDomain(&bids[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *bid)
	}
	return result, nil
}

func FromDomainModify(b *entities.BidModify) *BidModifyDB {
	if b == nil {
		return nil
	}
	bidModifyDB := &BidModifyDB{
		PackageID:              b.PackageID,
		CourierID:              b.CourierID,
		EstimatedDeliveryHours: b.EstimatedDeliveryHours,
		EstimatedPickupTime:    b.EstimatedPickupTime,
		Message:                b.Message,
		CreatedAt:              b.CreatedAt,
	}

	if b.ProposedPrice != nil {
		price := b.ProposedPrice.String()
		bidModifyDB.ProposedPrice = &price
	}
	if b.Status != nil {
		status := b.Status.String()
		bidModifyDB.Status = &status
	}

	return bidModifyDB
}

func toUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
