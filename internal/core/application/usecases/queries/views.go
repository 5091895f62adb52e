// Package queries contains read-only operations. Handlers that only list
// rows read the tables directly with SQL; handlers that must authorize against
// a shipment load the aggregate through a ShipmentReader first.
package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/addressbook"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
)

// ShipmentReader loads single shipments. ports.ShipmentRepository satisfies it.
type ShipmentReader interface {
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber shipment.TrackingNumber) (*shipment.Shipment, error)
}

type HistoryEntryView struct {
	Status    shipment.Status
	UpdatedBy string
	Timestamp time.Time
}

type PaymentView struct {
	PaymentID  string
	OrderID    string
	PayerEmail string
	PaidAt     time.Time
}

type FeedbackView struct {
	Rating      int
	Comment     string
	By          string
	SubmittedAt time.Time
}

// ShipmentView is the full read model of one shipment as seen by a principal.
// AllowedTargets lists the statuses that principal may move it to next.
type ShipmentView struct {
	ID              kernel.UUID
	TrackingNumber  string
	Sender          string
	Receiver        string
	Description     string
	WeightGrams     int
	PackageSize     string
	DeliveryAddress string
	Amount          int
	Status          shipment.Status
	History         []HistoryEntryView
	Documents       []string
	CreatedAt       time.Time
	ETA             time.Time
	Payment         *PaymentView
	Feedback        *FeedbackView
	AllowedTargets  []shipment.Status
}

func NewShipmentView(s *shipment.Shipment, allowedTargets []shipment.Status) ShipmentView {
	parcel := s.Parcel()

	history := make([]HistoryEntryView, 0, len(s.History()))
	for _, h := range s.History() {
		history = append(history, HistoryEntryView{
			Status:    h.Status(),
			UpdatedBy: h.UpdatedBy().String(),
			Timestamp: h.Timestamp(),
		})
	}

	view := ShipmentView{
		ID:              s.ID(),
		TrackingNumber:  s.TrackingNumber().String(),
		Sender:          s.Sender().String(),
		Receiver:        s.Receiver().String(),
		Description:     parcel.Description(),
		WeightGrams:     parcel.WeightGrams(),
		PackageSize:     parcel.PackageSize(),
		DeliveryAddress: parcel.DeliveryAddress(),
		Amount:          s.Amount(),
		Status:          s.Status(),
		History:         history,
		Documents:       s.Documents(),
		CreatedAt:       s.CreatedAt(),
		ETA:             s.ETA(),
		AllowedTargets:  allowedTargets,
	}
	if view.AllowedTargets == nil {
		view.AllowedTargets = []shipment.Status{}
	}

	if p := s.Payment(); p != nil {
		view.Payment = &PaymentView{
			PaymentID:  p.PaymentID(),
			OrderID:    p.OrderID(),
			PayerEmail: p.PayerEmail().String(),
			PaidAt:     p.PaidAt(),
		}
	}
	if f := s.Feedback(); f != nil {
		view.Feedback = &FeedbackView{
			Rating:      f.Rating(),
			Comment:     f.Comment(),
			By:          f.By().String(),
			SubmittedAt: f.SubmittedAt(),
		}
	}
	return view
}

// ShipmentSummary is one row of a shipment list.
// Outgoing is true when the listing principal is the sender.
type ShipmentSummary struct {
	ID             kernel.UUID
	TrackingNumber string
	Sender         string
	Receiver       string
	Description    string
	Status         shipment.Status
	Amount         int
	CreatedAt      time.Time
	ETA            time.Time
	Outgoing       bool
}

type CommentView struct {
	ID          kernel.UUID
	Text        string
	AuthorEmail string
	AuthorName  string
	CreatedAt   time.Time
}

func NewCommentView(c *shipment.Comment) CommentView {
	return CommentView{
		ID:          c.ID(),
		Text:        c.Text(),
		AuthorEmail: c.AuthorEmail().String(),
		AuthorName:  c.AuthorName(),
		CreatedAt:   c.CreatedAt(),
	}
}

type AddressBookEntryView struct {
	ID        kernel.UUID
	Name      string
	Email     string
	Address   string
	UpdatedAt time.Time
}

func NewAddressBookEntryView(e *addressbook.Entry) AddressBookEntryView {
	return AddressBookEntryView{
		ID:        e.ID(),
		Name:      e.Name(),
		Email:     e.Email().String(),
		Address:   e.Address(),
		UpdatedAt: e.UpdatedAt(),
	}
}
