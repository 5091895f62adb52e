package shipment

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
)

// DomainEvent is something that happened to a shipment and is published
// after the unit of work that caused it commits.
type DomainEvent interface {
	EventName() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

type CreatedEvent struct {
	ShipmentID     kernel.UUID
	TrackingNumber string
	Sender         string
	Receiver       string
	Amount         int
	PaymentSkipped bool
	At             time.Time
}

func (e CreatedEvent) EventName() string        { return "shipment.created" }
func (e CreatedEvent) AggregateID() kernel.UUID { return e.ShipmentID }
func (e CreatedEvent) OccurredAt() time.Time    { return e.At }

type StatusChangedEvent struct {
	ShipmentID     kernel.UUID
	TrackingNumber string
	From           Status
	To             Status
	By             string
	At             time.Time
}

func (e StatusChangedEvent) EventName() string        { return "shipment.status_changed" }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.ShipmentID }
func (e StatusChangedEvent) OccurredAt() time.Time    { return e.At }

type FeedbackSubmittedEvent struct {
	ShipmentID     kernel.UUID
	TrackingNumber string
	Rating         int
	By             string
	At             time.Time
}

func (e FeedbackSubmittedEvent) EventName() string        { return "shipment.feedback_submitted" }
func (e FeedbackSubmittedEvent) AggregateID() kernel.UUID { return e.ShipmentID }
func (e FeedbackSubmittedEvent) OccurredAt() time.Time    { return e.At }

type CancelledEvent struct {
	ShipmentID     kernel.UUID
	TrackingNumber string
	By             string
	At             time.Time
}

func (e CancelledEvent) EventName() string        { return "shipment.cancelled" }
func (e CancelledEvent) AggregateID() kernel.UUID { return e.ShipmentID }
func (e CancelledEvent) OccurredAt() time.Time    { return e.At }
