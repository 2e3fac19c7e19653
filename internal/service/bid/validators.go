package bid

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"bidding-service/internal/entities"
)

const maxMessageLength = 500

func isValidBidID(id int64) bool {
	return id > 0
}

func isValidCourierID(id int64) bool {
	return id > 0
}

func isValidPackageID(packageID string) bool {
	return strings.TrimSpace(packageID) != ""
}

// validateSubmit возвращает ошибку, обернутую в ErrInvalidBid, с конкретной причиной.
func validateSubmit(bidModify entities.BidModify) error {
	if bidModify.PackageID == nil || bidModify.CourierID == nil || bidModify.ProposedPrice == nil {
		return fmt.Errorf("%w: %w", ErrInvalidBid, ErrMissingRequiredFields)
	}

	if !isValidPackageID(*bidModify.PackageID) {
		return fmt.Errorf("%w: %w", ErrInvalidBid, ErrInvalidPackageID)
	}

	if !isValidCourierID(*bidModify.CourierID) {
		return fmt.Errorf("%w: %w", ErrInvalidBid, ErrInvalidCourierID)
	}

	if !bidModify.ProposedPrice.IsPositive() {
		return fmt.Errorf("%w: %w", ErrInvalidBid, ErrInvalidPrice)
	}

	if bidModify.EstimatedDeliveryHours != nil && *bidModify.EstimatedDeliveryHours <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidBid, ErrInvalidEstimate)
	}

	if bidModify.Message != nil && utf8.RuneCountInString(*bidModify.Message) > maxMessageLength {
		return fmt.Errorf("%w: %w", ErrInvalidBid, ErrMessageTooLong)
	}

	return nil
}
