// Package shipmentrepo persists Shipment aggregates, their status history and
// their comment threads.
package shipmentrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ShipmentDTO is one row of the shipments table. Payment and feedback are
// flattened into nullable columns.
type ShipmentDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TrackingNumber  string         `gorm:"type:varchar(12);not null;uniqueIndex"`
	Sender          string         `gorm:"type:varchar(320);not null;index"`
	Receiver        string         `gorm:"type:varchar(320);not null;index"`
	Description     string         `gorm:"type:text;not null;default:''"`
	WeightGrams     int            `gorm:"type:int;not null"`
	PackageSize     string         `gorm:"type:varchar(64);not null"`
	DeliveryAddress string         `gorm:"type:text;not null"`
	Amount          int            `gorm:"type:int;not null"`
	Status          int16          `gorm:"type:smallint;not null;index"`
	Documents       pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt       time.Time      `gorm:"not null;index"`
	ETA             time.Time      `gorm:"column:eta;not null"`

	PaymentID      *string `gorm:"type:varchar(255)"`
	PaymentOrderID *string `gorm:"type:varchar(255)"`
	PaymentPayer   *string `gorm:"type:varchar(320)"`
	PaidAt         *time.Time

	FeedbackRating  *int16  `gorm:"type:smallint;check:chk_shipments_feedback_rating,feedback_rating BETWEEN 1 AND 5"`
	FeedbackComment *string `gorm:"type:text"`
	FeedbackBy      *string `gorm:"type:varchar(320)"`
	FeedbackAt      *time.Time

	History  []HistoryEntryDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Comments []CommentDTO      `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// HistoryEntryDTO is one status change. Seq orders the entries of a shipment
// and is unique per shipment, so two writers can never append the same step.
type HistoryEntryDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shipment_history_seq,priority:1"`
	Seq        int       `gorm:"type:int;not null;uniqueIndex:idx_shipment_history_seq,priority:2"`
	Status     int16     `gorm:"type:smallint;not null"`
	UpdatedBy  string    `gorm:"type:varchar(320);not null"`
	Timestamp  time.Time `gorm:"not null"`
}

func (HistoryEntryDTO) TableName() string {
	return "shipment_history"
}

type CommentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Text        string    `gorm:"type:text;not null"`
	AuthorEmail string    `gorm:"type:varchar(320);not null"`
	AuthorName  string    `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

func (CommentDTO) TableName() string {
	return "shipment_comments"
}

func historyFromDomain(shipmentID uuid.UUID, seq int, h shipment.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ShipmentID: shipmentID,
		Seq:        seq,
		Status:     int16(h.Status()),
		UpdatedBy:  h.UpdatedBy().String(),
		Timestamp:  h.Timestamp(),
	}
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	id := s.ID().Bytes()
	parcel := s.Parcel()

	history := make([]HistoryEntryDTO, 0, len(s.History()))
	for i, h := range s.History() {
		history = append(history, historyFromDomain(id, i, h))
	}

	dto := ShipmentDTO{
		ID:              id,
		TrackingNumber:  s.TrackingNumber().String(),
		Sender:          s.Sender().String(),
		Receiver:        parcel.Receiver().String(),
		Description:     parcel.Description(),
		WeightGrams:     parcel.WeightGrams(),
		PackageSize:     parcel.PackageSize(),
		DeliveryAddress: parcel.DeliveryAddress(),
		Amount:          s.Amount(),
		Status:          int16(s.Status()),
		Documents:       pq.StringArray(s.Documents()),
		CreatedAt:       s.CreatedAt(),
		ETA:             s.ETA(),
		History:         history,
	}

	if p := s.Payment(); p != nil {
		paymentID, orderID, payer, paidAt := p.PaymentID(), p.OrderID(), p.PayerEmail().String(), p.PaidAt()
		dto.PaymentID, dto.PaymentOrderID, dto.PaymentPayer, dto.PaidAt = &paymentID, &orderID, &payer, &paidAt
	}
	if f := s.Feedback(); f != nil {
		rating, comment, by, at := int16(f.Rating()), f.Comment(), f.By().String(), f.SubmittedAt()
		dto.FeedbackRating, dto.FeedbackComment, dto.FeedbackBy, dto.FeedbackAt = &rating, &comment, &by, &at
	}

	return dto
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	trackingNumber, err := shipment.NewTrackingNumber(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}
	sender, err := kernel.NewEmail(dto.Sender)
	if err != nil {
		return nil, err
	}
	receiver, err := kernel.NewEmail(dto.Receiver)
	if err != nil {
		return nil, err
	}
	parcel, err := shipment.NewParcel(receiver, dto.Description, dto.WeightGrams, dto.PackageSize, dto.DeliveryAddress)
	if err != nil {
		return nil, err
	}

	history := make([]shipment.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		by, byErr := kernel.NewEmail(h.UpdatedBy)
		if byErr != nil {
			return nil, byErr
		}
		entry, entryErr := shipment.NewHistoryEntry(shipment.Status(h.Status), h.Timestamp, by)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	var payment *shipment.Payment
	if dto.PaymentID != nil {
		if payment, err = paymentToDomain(dto); err != nil {
			return nil, err
		}
	}

	var feedback *shipment.Feedback
	if dto.FeedbackRating != nil {
		if feedback, err = feedbackToDomain(dto); err != nil {
			return nil, err
		}
	}

	return shipment.RestoreShipment(shipment.Snapshot{
		ID:             id,
		TrackingNumber: trackingNumber,
		Sender:         sender,
		Parcel:         parcel,
		Amount:         dto.Amount,
		Payment:        payment,
		Status:         shipment.Status(dto.Status),
		History:        history,
		Documents:      dto.Documents,
		CreatedAt:      dto.CreatedAt,
		ETA:            dto.ETA,
		Feedback:       feedback,
	})
}

func paymentToDomain(dto ShipmentDTO) (*shipment.Payment, error) {
	var payer kernel.Email
	if dto.PaymentPayer != nil {
		var err error
		if payer, err = kernel.NewEmail(*dto.PaymentPayer); err != nil {
			return nil, err
		}
	}
	var orderID string
	if dto.PaymentOrderID != nil {
		orderID = *dto.PaymentOrderID
	}
	var paidAt time.Time
	if dto.PaidAt != nil {
		paidAt = *dto.PaidAt
	}
	return shipment.NewPayment(*dto.PaymentID, orderID, payer, paidAt)
}

func feedbackToDomain(dto ShipmentDTO) (*shipment.Feedback, error) {
	var by kernel.Email
	if dto.FeedbackBy != nil {
		var err error
		if by, err = kernel.NewEmail(*dto.FeedbackBy); err != nil {
			return nil, err
		}
	}
	var comment string
	if dto.FeedbackComment != nil {
		comment = *dto.FeedbackComment
	}
	var at time.Time
	if dto.FeedbackAt != nil {
		at = *dto.FeedbackAt
	}
	return shipment.NewFeedback(int(*dto.FeedbackRating), comment, by, at)
}

func commentFromDomain(c *shipment.Comment) CommentDTO {
	return CommentDTO{
		ID:          c.ID().Bytes(),
		ShipmentID:  c.ShipmentID().Bytes(),
		Text:        c.Text(),
		AuthorEmail: c.AuthorEmail().String(),
		AuthorName:  c.AuthorName(),
		CreatedAt:   c.CreatedAt(),
	}
}

func commentToDomain(dto CommentDTO) (*shipment.Comment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	author, err := kernel.NewEmail(dto.AuthorEmail)
	if err != nil {
		return nil, err
	}
	return shipment.RestoreComment(id, shipmentID, dto.Text, author, dto.AuthorName, dto.CreatedAt)
}
