// Package userrepo persists the locally known users and their roles.
package userrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
)

type UserDTO struct {
	Email       string    `gorm:"type:varchar(320);primaryKey"`
	DisplayName string    `gorm:"type:varchar(255);not null;default:''"`
	Role        int16     `gorm:"type:smallint;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *identity.User) UserDTO {
	return UserDTO{
		Email:       u.Email().String(),
		DisplayName: u.DisplayName(),
		Role:        int16(u.Role()),
		CreatedAt:   u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*identity.User, error) {
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	return identity.RestoreUser(email, dto.DisplayName, identity.Role(dto.Role), dto.CreatedAt)
}
