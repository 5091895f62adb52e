package userrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add inserts the user; a concurrent first sign-in for the same email is a no-op.
func (r *GormUserRepository) Add(ctx context.Context, u *identity.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	dto := fromDomain(u)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}

func (r *GormUserRepository) Update(ctx context.Context, u *identity.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	res := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("email = ?", dto.Email).
		Updates(map[string]any{"role": dto.Role, "display_name": dto.DisplayName})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", dto.Email)
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, email kernel.Email) (*identity.User, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", email.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormUserRepository) List(ctx context.Context) ([]*identity.User, error) {
	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Order("email").Find(&dtos).Error; err != nil {
		return nil, err
	}

	users := make([]*identity.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
