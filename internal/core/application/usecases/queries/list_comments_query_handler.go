package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListCommentsQueryHandler shows the thread to the sender and the receiver only.
type ListCommentsQueryHandler struct {
	db        *gorm.DB
	shipments ShipmentReader
	authz     services.AuthorizationPolicy
}

func NewListCommentsQueryHandler(
	db *gorm.DB,
	shipments ShipmentReader,
	authz services.AuthorizationPolicy,
) ListCommentsQueryHandler {
	return ListCommentsQueryHandler{db: db, shipments: shipments, authz: authz}
}

func (h ListCommentsQueryHandler) Handle(ctx context.Context, query ListCommentsQuery) ([]CommentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s, err := h.shipments.Get(ctx, query.ShipmentID())
	if err != nil {
		return nil, err
	}
	if err = h.authz.CanComment(query.Principal(), s); err != nil {
		return nil, err
	}

	comments := make([]CommentView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			text,
			author_email,
			author_name,
			created_at
		FROM shipment_comments
		WHERE shipment_id = ?
		ORDER BY created_at, id
	`, s.ID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view CommentView
		var id uuid.UUID
		var createdAt time.Time

		if err = rows.Scan(&id, &view.Text, &view.AuthorEmail, &view.AuthorName, &createdAt); err != nil {
			return nil, err
		}

		commentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = commentID
		view.CreatedAt = createdAt.UTC()
		comments = append(comments, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
