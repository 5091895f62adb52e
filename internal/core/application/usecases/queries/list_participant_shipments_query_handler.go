package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListParticipantShipmentsQueryHandler reads shipment summaries straight from
// the shipments table, newest first.
type ListParticipantShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListParticipantShipmentsQueryHandler(db *gorm.DB) ListParticipantShipmentsQueryHandler {
	return ListParticipantShipmentsQueryHandler{db: db}
}

func (h ListParticipantShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListParticipantShipmentsQuery,
) ([]ShipmentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	email := query.Principal().Email().String()
	summaries := make([]ShipmentSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			sender,
			receiver,
			description,
			status,
			amount,
			created_at,
			eta
		FROM shipments
		WHERE sender = ? OR receiver = ?
		ORDER BY created_at DESC, id
	`, email, email).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary ShipmentSummary
		var id uuid.UUID
		var status int16
		var createdAt, eta time.Time

		err = rows.Scan(
			&id,
			&summary.TrackingNumber,
			&summary.Sender,
			&summary.Receiver,
			&summary.Description,
			&status,
			&summary.Amount,
			&createdAt,
			&eta,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = shipmentID
		summary.Status = shipment.Status(status)
		summary.CreatedAt = createdAt.UTC()
		summary.ETA = eta.UTC()
		summary.Outgoing = summary.Sender == email

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
