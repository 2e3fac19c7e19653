package deadline

import "errors"

var (
	ErrInvalidPackageID = errors.New("invalid package id")
	ErrSweep            = errors.New("expiry sweep failed")
)
