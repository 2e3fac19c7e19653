package converters

import (
	"math"
	"time"

	"bidding-service/internal/entities"
	"bidding-service/internal/generated/dto"
)

func FromPackage(pkg entities.Package) dto.Package {
	return dto.Package{
		TrackingID:    pkg.TrackingID,
		SenderID:      pkg.SenderID,
		Status:        dto.PackageStatus(pkg.Status),
		BidCount:      pkg.BidCount,
		BidDeadline:   pkg.BidDeadline,
		SelectedBidID: pkg.SelectedBidID,
		CreatedAt:     pkg.CreatedAt,
	}
}

func FromBid(bid entities.Bid) dto.Bid {
	return dto.Bid{
		ID:                     bid.ID,
		PackageID:              bid.PackageID,
		CourierID:              bid.CourierID,
		ProposedPrice:          bid.ProposedPrice,
		EstimatedDeliveryHours: bid.EstimatedDeliveryHours,
		EstimatedPickupTime:    bid.EstimatedPickupTime,
		Message:                bid.Message,
		Status:                 dto.BidStatus(bid.Status),
		CreatedAt:              bid.CreatedAt,
		SelectedAt:             bid.SelectedAt,
	}
}

func FromBids(bids []entities.Bid) []dto.Bid {
	result := make([]dto.Bid, 0, len(bids))
	for _, bid := range bids {
		result = append(result, FromBid(bid))
	}
	return result
}

// FromPackageBids считает остаток времени торгов относительно now.
// Пока дедлайн не взведен, SecondsRemaining = nil.
func FromPackageBids(packageBids entities.PackageBids, now time.Time) dto.PackageBids {
	pkg := packageBids.Package

	var remaining *int64
	if pkg.BidDeadline != nil && pkg.Status == entities.PackageOpen {
		seconds := max(int64(math.Ceil(pkg.BidDeadline.Sub(now).Seconds())), 0)
		remaining = &seconds
	}

	return dto.PackageBids{
		PackageID:        pkg.TrackingID,
		Status:           dto.PackageStatus(pkg.Status),
		BidCount:         pkg.BidCount,
		BidDeadline:      pkg.BidDeadline,
		SecondsRemaining: remaining,
		SelectedBidID:    pkg.SelectedBidID,
		Bids:             FromBids(packageBids.Bids),
	}
}

func FromAllocation(allocation entities.Allocation) dto.Allocation {
	return dto.Allocation{
		Package:  FromPackage(allocation.Package),
		Winner:   FromBid(allocation.Winner),
		Rejected: FromBids(allocation.Rejected),
	}
}

func FromCancellation(cancellation entities.Cancellation) dto.Cancellation {
	return dto.Cancellation{
		Package:  FromPackage(cancellation.Package),
		Rejected: FromBids(cancellation.Rejected),
	}
}

func FromEvent(event entities.BidEvent) dto.Event {
	var reason *dto.EventReason
	if event.Reason != entities.ReasonNone {
		r := dto.EventReason(event.Reason)
		reason = &r
	}

	return dto.Event{
		ID:        event.ID,
		EventID:   event.EventID.String(),
		Type:      dto.EventType(event.Type),
		BidID:     event.BidID,
		PackageID: event.PackageID,
		CourierID: event.CourierID,
		Status:    dto.BidStatus(event.Status),
		Reason:    reason,
		Timestamp: event.OccurredAt,
	}
}

// FromEvents возвращает ленту и курсор для следующего запроса.
// На пустой странице курсор остается прежним.
func FromEvents(events []entities.BidEvent, after int64) dto.Events {
	result := dto.Events{
		Events:     make([]dto.Event, 0, len(events)),
		NextCursor: after,
	}
	for _, event := range events {
		result.Events = append(result.Events, FromEvent(event))
		result.NextCursor = max(result.NextCursor, event.ID)
	}
	return result
}
