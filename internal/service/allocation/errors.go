package allocation

import "errors"

var (
	ErrInvalidBidID       = errors.New("invalid bid id")
	ErrInvalidPackageID   = errors.New("invalid package id")
	ErrInvalidRequesterID = errors.New("invalid requester id")

	ErrForbidden            = errors.New("requester is not the package sender")
	ErrBidNoLongerAvailable = errors.New("bid is no longer available")
	ErrPackageNotOpen       = errors.New("package is not open for bidding")
)
