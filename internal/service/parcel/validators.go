package parcel

import (
	"strings"
	"unicode/utf8"
)

const maxTrackingIDLength = 64

func isValidTrackingID(trackingID string) bool {
	trimmed := strings.TrimSpace(trackingID)
	return trimmed != "" && trimmed == trackingID && utf8.RuneCountInString(trackingID) <= maxTrackingIDLength
}

func isValidSenderID(senderID int64) bool {
	return senderID > 0
}
