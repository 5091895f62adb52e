package shipmentrepo

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GormCommentRepository implements ports.CommentRepository. Comments are
// insert-only, so there is nothing to track for event publishing.
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Add(ctx context.Context, c *shipment.Comment) error {
	if err := c.Validate(); err != nil {
		return err
	}
	dto := commentFromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByShipment returns the thread oldest first. Ties on created_at are
// broken by id so the order is stable between reads.
func (r *GormCommentRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.Comment, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CommentDTO
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	comments := make([]*shipment.Comment, 0, len(dtos))
	for _, dto := range dtos {
		c, err := commentToDomain(dto)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}
