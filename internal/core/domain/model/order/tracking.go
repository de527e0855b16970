package order

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// TrackingPrefix is the fixed prefix of every tracking number.
const TrackingPrefix = "TRK-"

const (
	trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	trackingLength   = 10
)

var trackingPattern = regexp.MustCompile(`^TRK-[A-Z0-9]{10}$`)

// GenerateTrackingNumber produces a tracking token of the form
// "TRK-" followed by 10 random uppercase alphanumeric characters.
// Ten base-36 characters give roughly 51 bits of entropy, which is
// collision-resistant in practice; uniqueness is additionally enforced by a
// unique index at the store level.
func GenerateTrackingNumber() string {
	var sb strings.Builder
	sb.Grow(len(TrackingPrefix) + trackingLength)
	sb.WriteString(TrackingPrefix)
	for range trackingLength {
		sb.WriteByte(trackingAlphabet[rand.IntN(len(trackingAlphabet))])
	}
	return sb.String()
}

// IsValidTrackingNumber reports whether s matches the TRK-XXXXXXXXXX format.
func IsValidTrackingNumber(s string) bool {
	return trackingPattern.MatchString(s)
}
