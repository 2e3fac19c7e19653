package parcel

import (
	"fmt"

	"bidding-service/internal/entities"
	proto "bidding-service/internal/generated/proto/tracking"
)

// toDomain возвращает nil, если в ответе нет посылки.
func toDomain(resp *proto.GetPackageResponse) (*entities.Parcel, error) {
	protoPackage := resp.GetPackage()
	if protoPackage == nil {
		return nil, nil
	}

	if protoPackage.GetTrackingId() == "" {
		return nil, fmt.Errorf("tracking-service response without tracking_id")
	}
	if protoPackage.GetSenderId() <= 0 {
		return nil, fmt.Errorf("tracking-service response without sender_id")
	}

	parcel := &entities.Parcel{
		TrackingID: protoPackage.GetTrackingId(),
		SenderID:   protoPackage.GetSenderId(),
		Status:     entities.ParcelStatusType(protoPackage.GetStatus()),
	}
	if protoPackage.GetCreatedAt() != nil {
		parcel.CreatedAt = protoPackage.GetCreatedAt().AsTime()
	}

	return parcel, nil
}
