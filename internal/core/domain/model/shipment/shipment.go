package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// MinimumAmount is the base charge of every shipment, in INR.
const MinimumAmount = 50

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment was not created
	// through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

	// ErrHistoryIsInconsistent is returned by RestoreShipment for stored data
	// that breaks the status history invariants.
	ErrHistoryIsInconsistent = errors.New("status history is inconsistent")
)

// Shipment is the aggregate root of the lifecycle engine.
//
// Invariants:
//   - history is never empty and starts with Dispatched
//   - status equals the status of the last history entry
//   - history timestamps never decrease
//   - trackingNumber is set once and never changes
//   - feedback is written at most once, only while Delivered
//
// Comments are a separate collection keyed by the shipment id and are not
// loaded with the aggregate.
type Shipment struct {
	id             kernel.UUID
	trackingNumber TrackingNumber
	sender         kernel.Email
	parcel         Parcel
	amount         int
	payment        *Payment
	status         Status
	history        []HistoryEntry
	documents      []string
	createdAt      time.Time
	eta            time.Time
	feedback       *Feedback

	domainEvents []DomainEvent

	isConstructed bool
}

// NewShipment creates a shipment in Dispatched with a single history entry
// authored by the sender. A nil payment means payment was skipped.
func NewShipment(
	id kernel.UUID,
	trackingNumber TrackingNumber,
	sender kernel.Email,
	parcel Parcel,
	amount int,
	payment *Payment,
	documents []string,
	createdAt time.Time,
) (*Shipment, error) {
	createdAt = createdAt.UTC()

	var amountErr error
	if amount < MinimumAmount {
		amountErr = errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%d is less than %d", amount, MinimumAmount))
	}
	if err := errors.Join(
		id.Validate(),
		trackingNumber.Validate(),
		sender.Validate(),
		parcel.Validate(),
		amountErr,
	); err != nil {
		return nil, err
	}

	first, err := NewHistoryEntry(Dispatched, createdAt, sender)
	if err != nil {
		return nil, err
	}

	s := &Shipment{
		id:             id,
		trackingNumber: trackingNumber,
		sender:         sender,
		parcel:         parcel,
		amount:         amount,
		payment:        payment,
		status:         Dispatched,
		history:        []HistoryEntry{first},
		documents:      cleanDocuments(documents),
		createdAt:      createdAt,
		eta:            ETA(createdAt),
		isConstructed:  true,
	}

	s.raise(CreatedEvent{
		ShipmentID:     id,
		TrackingNumber: trackingNumber.String(),
		Sender:         sender.String(),
		Receiver:       parcel.Receiver().String(),
		Amount:         amount,
		PaymentSkipped: payment == nil,
		At:             createdAt,
	})

	return s, nil
}

// Snapshot carries the persisted state of a shipment into RestoreShipment.
type Snapshot struct {
	ID             kernel.UUID
	TrackingNumber TrackingNumber
	Sender         kernel.Email
	Parcel         Parcel
	Amount         int
	Payment        *Payment
	Status         Status
	History        []HistoryEntry
	Documents      []string
	CreatedAt      time.Time
	ETA            time.Time
	Feedback       *Feedback
}

// RestoreShipment rebuilds a shipment from storage and re-checks the history
// invariants. It raises no domain events.
func RestoreShipment(snap Snapshot) (*Shipment, error) {
	if err := errors.Join(
		snap.ID.Validate(),
		snap.TrackingNumber.Validate(),
		snap.Sender.Validate(),
		snap.Parcel.Validate(),
		snap.Status.Validate(),
	); err != nil {
		return nil, err
	}
	if err := validateHistory(snap.Status, snap.History); err != nil {
		return nil, err
	}

	history := make([]HistoryEntry, len(snap.History))
	copy(history, snap.History)

	return &Shipment{
		id:             snap.ID,
		trackingNumber: snap.TrackingNumber,
		sender:         snap.Sender,
		parcel:         snap.Parcel,
		amount:         snap.Amount,
		payment:        snap.Payment,
		status:         snap.Status,
		history:        history,
		documents:      cleanDocuments(snap.Documents),
		createdAt:      snap.CreatedAt.UTC(),
		eta:            snap.ETA.UTC(),
		feedback:       snap.Feedback,
		isConstructed:  true,
	}, nil
}

func validateHistory(status Status, history []HistoryEntry) error {
	if len(history) == 0 {
		return fmt.Errorf("%w: history is empty", ErrHistoryIsInconsistent)
	}
	if history[0].Status() != Dispatched {
		return fmt.Errorf("%w: first entry is %s", ErrHistoryIsInconsistent, history[0].Status())
	}
	if last := history[len(history)-1].Status(); last != status {
		return fmt.Errorf("%w: status %s but last entry is %s", ErrHistoryIsInconsistent, status, last)
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp().Before(history[i-1].Timestamp()) {
			return fmt.Errorf("%w: entry %d is older than entry %d", ErrHistoryIsInconsistent, i, i-1)
		}
	}
	return nil
}

func cleanDocuments(documents []string) []string {
	out := make([]string, 0, len(documents))
	for _, d := range documents {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Shipment) ID() kernel.UUID                { return s.id }
func (s *Shipment) TrackingNumber() TrackingNumber { return s.trackingNumber }
func (s *Shipment) Sender() kernel.Email           { return s.sender }
func (s *Shipment) Receiver() kernel.Email         { return s.parcel.Receiver() }
func (s *Shipment) Parcel() Parcel                 { return s.parcel }
func (s *Shipment) Amount() int                    { return s.amount }
func (s *Shipment) Status() Status                 { return s.status }
func (s *Shipment) CreatedAt() time.Time           { return s.createdAt }
func (s *Shipment) ETA() time.Time                 { return s.eta }

// Payment returns nil when payment was skipped.
func (s *Shipment) Payment() *Payment { return s.payment }

// Feedback returns nil until the receiver has rated the shipment.
func (s *Shipment) Feedback() *Feedback { return s.feedback }

// History returns a copy of the status history, oldest first.
func (s *Shipment) History() []HistoryEntry {
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Documents returns a copy of the attached document references.
func (s *Shipment) Documents() []string {
	out := make([]string, len(s.documents))
	copy(out, s.documents)
	return out
}

func (s *Shipment) IsSender(email kernel.Email) bool {
	return s.sender.IsEqual(email)
}

func (s *Shipment) IsReceiver(email kernel.Email) bool {
	return s.parcel.Receiver().IsEqual(email)
}

// IsParticipant reports whether email is the sender or the receiver.
func (s *Shipment) IsParticipant(email kernel.Email) bool {
	return s.IsSender(email) || s.IsReceiver(email)
}

// AllowedTargets returns the statuses the shipment may move to next.
func (s *Shipment) AllowedTargets() []Status {
	return s.status.AllowedTargets()
}

// TransitionTo moves the shipment to target and appends a history entry.
//
// Authorization is not checked here. A timestamp older than the last history
// entry is raised to it so the history never goes backwards in time.
func (s *Shipment) TransitionTo(target Status, by kernel.Email, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := s.status.ValidateTransition(target); err != nil {
		return err
	}

	at = at.UTC()
	if last := s.history[len(s.history)-1].Timestamp(); at.Before(last) {
		at = last
	}

	entry, err := NewHistoryEntry(target, at, by)
	if err != nil {
		return err
	}

	from := s.status
	s.history = append(s.history, entry)
	s.status = target

	s.raise(StatusChangedEvent{
		ShipmentID:     s.id,
		TrackingNumber: s.trackingNumber.String(),
		From:           from,
		To:             target,
		By:             by.String(),
		At:             at,
	})
	return nil
}

// LastHistoryEntry returns the entry that produced the current status.
func (s *Shipment) LastHistoryEntry() HistoryEntry {
	return s.history[len(s.history)-1]
}

// EditDescription replaces the description. The amount is not recomputed.
func (s *Shipment) EditDescription(description string) {
	s.parcel = s.parcel.withDescription(description)
}

// AttachDocuments appends document references in the given order.
func (s *Shipment) AttachDocuments(references ...string) error {
	cleaned := cleanDocuments(references)
	if len(cleaned) == 0 {
		return errs.NewValueIsRequiredError("documents")
	}
	s.documents = append(s.documents, cleaned...)
	return nil
}

// SubmitFeedback stores the receiver's rating. It fails with an
// AlreadyExistsError when feedback is present and refuses any status other
// than Delivered.
func (s *Shipment) SubmitFeedback(feedback *Feedback) error {
	if feedback == nil {
		return errs.NewValueIsRequiredError("feedback")
	}
	if s.feedback != nil {
		return errs.NewAlreadyExistsError("feedback", s.id)
	}
	if s.status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("feedback requires %s, shipment is %s", Delivered, s.status))
	}

	s.feedback = feedback
	s.raise(FeedbackSubmittedEvent{
		ShipmentID:     s.id,
		TrackingNumber: s.trackingNumber.String(),
		Rating:         feedback.Rating(),
		By:             feedback.By().String(),
		At:             feedback.SubmittedAt(),
	})
	return nil
}

// Withdraw records that the sender cancelled the shipment. The record itself
// is removed by the repository; this only raises the event.
func (s *Shipment) Withdraw(by kernel.Email, at time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	s.raise(CancelledEvent{
		ShipmentID:     s.id,
		TrackingNumber: s.trackingNumber.String(),
		By:             by.String(),
		At:             at.UTC(),
	})
	return nil
}

func (s *Shipment) raise(event DomainEvent) {
	s.domainEvents = append(s.domainEvents, event)
}

// PullDomainEvents returns the events raised since the last call and clears them.
func (s *Shipment) PullDomainEvents() []DomainEvent {
	events := s.domainEvents
	s.domainEvents = nil
	return events
}
