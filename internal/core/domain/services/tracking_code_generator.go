package services

import (
	"math/rand/v2"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/shipment"
)

// TrackingCodeGenerator produces tracking numbers and expected delivery dates.
//
// Codes are CS followed by 10 characters drawn uniformly from [A-Z0-9].
// Uniqueness is probabilistic (36^10 codes); the database unique index on the
// tracking number is the only hard guarantee.
type TrackingCodeGenerator struct {
	intN func(n int) int
}

// NewTrackingCodeGenerator draws from the runtime's auto-seeded generator,
// which is safe for concurrent use.
func NewTrackingCodeGenerator() TrackingCodeGenerator {
	return TrackingCodeGenerator{intN: rand.IntN}
}

// NewTrackingCodeGeneratorWithSource uses intN, which must return a value in [0, n).
func NewTrackingCodeGeneratorWithSource(intN func(n int) int) TrackingCodeGenerator {
	return TrackingCodeGenerator{intN: intN}
}

func (g TrackingCodeGenerator) Generate() (shipment.TrackingNumber, error) {
	intN := g.intN
	if intN == nil {
		intN = rand.IntN
	}

	var b strings.Builder
	b.Grow(len(shipment.TrackingPrefix) + shipment.TrackingRandomLength)
	b.WriteString(shipment.TrackingPrefix)
	for range shipment.TrackingRandomLength {
		b.WriteByte(shipment.TrackingAlphabet[intN(len(shipment.TrackingAlphabet))])
	}
	return shipment.NewTrackingNumber(b.String())
}

func (g TrackingCodeGenerator) ETA(createdAt time.Time) time.Time {
	return shipment.ETA(createdAt)
}
