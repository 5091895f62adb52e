// Package ports defines the contracts between the lifecycle engine and the
// infrastructure around it: persistence, blob storage, payment, event
// publishing and caching.
package ports

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
)

// ShipmentRepository persists Shipment aggregates together with their status history.
type ShipmentRepository interface {
	// Add stores a new shipment and its first history entry.
	Add(ctx context.Context, s *shipment.Shipment) error

	// Get returns errs.ObjectNotFoundError when no shipment has the id.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	GetByTrackingNumber(ctx context.Context, trackingNumber shipment.TrackingNumber) (*shipment.Shipment, error)

	// ListByParticipant returns shipments where email is sender or receiver,
	// newest first.
	ListByParticipant(ctx context.Context, email kernel.Email) ([]*shipment.Shipment, error)

	// UpdateStatus writes the current status of s and its last history entry,
	// but only if the stored status still equals expected. Otherwise it writes
	// nothing and returns errs.ConflictError.
	UpdateStatus(ctx context.Context, s *shipment.Shipment, expected shipment.Status) error

	UpdateDescription(ctx context.Context, s *shipment.Shipment) error

	// AppendDocuments appends references to the stored list without reading
	// it first, so concurrent appends are all kept.
	AppendDocuments(ctx context.Context, id kernel.UUID, references []string) error

	// SetFeedback writes the feedback of s only if none is stored yet.
	// It returns errs.AlreadyExistsError when feedback is already present and
	// errs.ConflictError when the shipment changed in a way that forbids feedback.
	SetFeedback(ctx context.Context, s *shipment.Shipment) error

	// Delete removes the shipment, its history and its comments. It returns
	// errs.ConflictError when the stored status no longer matches s.Status().
	Delete(ctx context.Context, s *shipment.Shipment) error

	ExistsByTrackingNumber(ctx context.Context, trackingNumber string) (bool, error)
}

// CommentRepository stores the append-only discussion thread of shipments.
type CommentRepository interface {
	Add(ctx context.Context, c *shipment.Comment) error

	// ListByShipment returns comments oldest first.
	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.Comment, error)
}

// TrackingCache remembers which shipment a tracking number belongs to.
// The mapping never changes once written, so entries only expire.
type TrackingCache interface {
	// Get reports found=false on a miss; err is reserved for cache failures.
	Get(ctx context.Context, trackingNumber string) (id kernel.UUID, found bool, err error)
	Set(ctx context.Context, trackingNumber string, id kernel.UUID, ttl time.Duration) error
	Delete(ctx context.Context, trackingNumber string) error
}
