package parcel

import "errors"

var (
	ErrInvalidTrackingID = errors.New("invalid tracking id")
	ErrInvalidSenderID   = errors.New("invalid sender id")

	ErrPackageNotFound = errors.New("package not found")
	ErrPackageConflict = errors.New("package already registered by another sender")

	ErrUndefinedStatus = errors.New("undefined package status")
)
