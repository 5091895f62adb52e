// Package addressbookrepo persists the saved contacts of each user.
package addressbookrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/addressbook"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type EntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Owner     string    `gorm:"type:varchar(320);not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(320);not null"`
	Address   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (EntryDTO) TableName() string {
	return "address_book_entries"
}

func fromDomain(e *addressbook.Entry) EntryDTO {
	return EntryDTO{
		ID:        e.ID().Bytes(),
		Owner:     e.Owner().String(),
		Name:      e.Name(),
		Email:     e.Email().String(),
		Address:   e.Address(),
		UpdatedAt: e.UpdatedAt(),
	}
}

func toDomain(dto EntryDTO) (*addressbook.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	owner, err := kernel.NewEmail(dto.Owner)
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	return addressbook.RestoreEntry(id, owner, dto.Name, email, dto.Address, dto.UpdatedAt)
}
