package bid

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidBidID          = errors.New("invalid bid id")
	ErrInvalidCourierID      = errors.New("invalid courier id")
	ErrInvalidPackageID      = errors.New("invalid package id")

	// ErrInvalidBid оборачивает все ошибки валидации ставки.
	ErrInvalidBid      = errors.New("invalid bid")
	ErrInvalidPrice    = errors.New("proposed price must be positive")
	ErrMessageTooLong  = errors.New("message exceeds 500 characters")
	ErrInvalidEstimate = errors.New("estimated delivery hours must be positive")

	ErrBidNotFound   = errors.New("bid not found")
	ErrDuplicateBid  = errors.New("courier already has a pending bid on this package")
	ErrBiddingClosed = errors.New("bidding is closed for this package")
	ErrForbidden     = errors.New("bid belongs to another courier")
	ErrInvalidState  = errors.New("bid is not pending")
)
