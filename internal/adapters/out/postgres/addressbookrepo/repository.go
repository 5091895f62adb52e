package addressbookrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/addressbook"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAddressBookRepository implements ports.AddressBookRepository using GORM.
type GormAddressBookRepository struct {
	db *gorm.DB
}

func NewGormAddressBookRepository(db *gorm.DB) *GormAddressBookRepository {
	return &GormAddressBookRepository{db: db}
}

func (r *GormAddressBookRepository) Add(ctx context.Context, e *addressbook.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	dto := fromDomain(e)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update never changes the owner of an entry.
func (r *GormAddressBookRepository) Update(ctx context.Context, e *addressbook.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	res := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Where("id = ? AND owner = ?", dto.ID, dto.Owner).
		Updates(map[string]any{
			"name":       dto.Name,
			"email":      dto.Email,
			"address":    dto.Address,
			"updated_at": dto.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("addressBookEntry", e.ID().String())
	}
	return nil
}

func (r *GormAddressBookRepository) Get(ctx context.Context, id kernel.UUID) (*addressbook.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("addressBookEntry", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormAddressBookRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&EntryDTO{}, "id = ?", id.Bytes())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("addressBookEntry", id.String())
	}
	return nil
}

func (r *GormAddressBookRepository) ListByOwner(ctx context.Context, owner kernel.Email) ([]*addressbook.Entry, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner.String()).
		Order("lower(name), id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*addressbook.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
