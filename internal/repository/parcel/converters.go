package parcel

import (
	"time"

	"bidding-service/internal/entities"
)

func ToDomain(p *PackageDB) *entities.Package {
	if p == nil {
		return nil
	}
	return &entities.Package{
		TrackingID:         p.TrackingID,
		SenderID:           p.SenderID,
		Status:             entities.PackageStatusType(p.Status),
		BidCount:           p.BidCount,
		BidDeadline:        toUTC(p.BidDeadline),
		DeadlineDisarmedAt: toUTC(p.DeadlineDisarmedAt),
		SelectedBidID:      p.SelectedBidID,
		CreatedAt:          p.CreatedAt.UTC(),
		UpdatedAt:          p.UpdatedAt.UTC(),
	}
}

func FromDomainModify(p *entities.PackageModify) *PackageModifyDB {
	if p == nil {
		return nil
	}
	packageModifyDB := &PackageModifyDB{
		TrackingID:    p.TrackingID,
		SenderID:      p.SenderID,
		SelectedBidID: p.SelectedBidID,
	}

	if p.Status != nil {
		status := p.Status.String()
		packageModifyDB.Status = &status
	}

	return packageModifyDB
}

func toUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
