package shipmentrepo

import (
	"context"
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
//
// Every mutation other than Add is a conditional UPDATE whose WHERE clause
// carries the precondition the caller decided on. A write that matches no row
// is told apart from a missing shipment by a second read.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{db: db, tracker: tracker}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "shipment", id.String(), "id = ?", id.Bytes())
}

func (r *GormShipmentRepository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber shipment.TrackingNumber,
) (*shipment.Shipment, error) {
	if err := trackingNumber.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "trackingNumber", trackingNumber.String(), "tracking_number = ?", trackingNumber.String())
}

func (r *GormShipmentRepository) first(ctx context.Context, param, key string, query string, args ...any) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	err := r.withHistory(ctx).Where(query, args...).First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError(param, key)
	}
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormShipmentRepository) withHistory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("History", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	})
}

func (r *GormShipmentRepository) ListByParticipant(ctx context.Context, email kernel.Email) ([]*shipment.Shipment, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	if err := r.withHistory(ctx).
		Where("sender = ? OR receiver = ?", email.String(), email.String()).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

func (r *GormShipmentRepository) UpdateStatus(
	ctx context.Context,
	aggregate *shipment.Shipment,
	expected shipment.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	db := r.db.WithContext(ctx)

	res := db.Model(&ShipmentDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int16(expected)).
		Update("status", int16(aggregate.Status()))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrConflict(ctx, id, fmt.Sprintf("status %s", expected))
	}

	history := aggregate.History()
	entry := historyFromDomain(id.Bytes(), len(history)-1, aggregate.LastHistoryEntry())
	if err := db.Create(&entry).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *GormShipmentRepository) UpdateDescription(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	res := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ? AND status NOT IN ?", id.Bytes(), []int16{int16(shipment.Delivered), int16(shipment.Cancelled)}).
		Update("description", aggregate.Parcel().Description())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrConflict(ctx, id, "an editable status")
	}

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *GormShipmentRepository) AppendDocuments(ctx context.Context, id kernel.UUID, references []string) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if len(references) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ?", id.Bytes()).
		Update("documents", gorm.Expr("array_cat(documents, ?::text[])", pq.StringArray(references)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}
	return nil
}

func (r *GormShipmentRepository) SetFeedback(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	f := aggregate.Feedback()
	if f == nil {
		return errs.NewValueIsRequiredError("feedback")
	}

	id := aggregate.ID()
	res := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ? AND feedback_rating IS NULL AND status = ?", id.Bytes(), int16(shipment.Delivered)).
		Updates(map[string]any{
			"feedback_rating":  int16(f.Rating()),
			"feedback_comment": f.Comment(),
			"feedback_by":      f.By().String(),
			"feedback_at":      f.SubmittedAt(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var stored ShipmentDTO
		err := r.db.WithContext(ctx).Select("id", "feedback_rating").Where("id = ?", id.Bytes()).Take(&stored).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return errs.NewObjectNotFoundError("shipment", id.String())
		case err != nil:
			return err
		case stored.FeedbackRating != nil:
			return errs.NewAlreadyExistsError("feedback", id.String())
		default:
			return errs.NewConflictError("shipment", id.String(), "status Delivered")
		}
	}

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

// Delete removes the shipment with its history and comments, but only while
// the stored status is still the one the aggregate was read with and that
// status is not final. Otherwise nothing is removed and a ConflictError is
// returned.
func (r *GormShipmentRepository) Delete(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	observed := aggregate.Status()
	if observed.IsTerminal() {
		return errs.NewConflictError("shipment", id.String(), "a cancellable status")
	}

	db := r.db.WithContext(ctx)
	res := db.Where("id = ? AND status = ?", id.Bytes(), int16(observed)).Delete(&ShipmentDTO{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrConflict(ctx, id, fmt.Sprintf("status %s", observed))
	}

	if err := db.Where("shipment_id = ?", id.Bytes()).Delete(&CommentDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("shipment_id = ?", id.Bytes()).Delete(&HistoryEntryDTO{}).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *GormShipmentRepository) ExistsByTrackingNumber(ctx context.Context, trackingNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("tracking_number = ?", trackingNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormShipmentRepository) missOrConflict(ctx context.Context, id kernel.UUID, expected string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}
	return errs.NewConflictError("shipment", id.String(), expected)
}
