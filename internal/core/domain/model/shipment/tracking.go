package shipment

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

const (
	// TrackingPrefix starts every tracking number.
	TrackingPrefix = "CS"
	// TrackingAlphabet is the alphabet of the random part.
	TrackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// TrackingRandomLength is the number of random characters after the prefix.
	TrackingRandomLength = 10

	// ETAOffset is added to the creation time to obtain the expected delivery date.
	ETAOffset = 5 * 24 * time.Hour
)

var (
	ErrTrackingNumberIsNotConstructed = errors.New("TrackingNumber must be created via NewTrackingNumber constructor")

	trackingNumberPattern = regexp.MustCompile(`^CS[A-Z0-9]{10}$`)
)

// TrackingNumber is the short human-readable code printed on labels and used
// for scanner lookups. It is assigned once at creation and never changes.
type TrackingNumber struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewTrackingNumber validates the CS + 10 × [A-Z0-9] format.
func NewTrackingNumber(value string) (TrackingNumber, error) {
	if value == "" {
		return TrackingNumber{}, errs.NewValueIsRequiredError("trackingNumber")
	}
	if !trackingNumberPattern.MatchString(value) {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber",
			fmt.Errorf("%q does not match %s", value, trackingNumberPattern),
		)
	}
	return TrackingNumber{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (t TrackingNumber) Validate() error {
	return t.guard.Validate(ErrTrackingNumberIsNotConstructed)
}

func (t TrackingNumber) String() string {
	return t.value
}

// ETA returns the expected delivery date for a shipment created at createdAt.
func ETA(createdAt time.Time) time.Time {
	return createdAt.Add(ETAOffset)
}
