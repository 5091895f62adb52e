package queries

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListAddressBookQueryHandler returns the principal's contacts sorted by name.
type ListAddressBookQueryHandler struct {
	db *gorm.DB
}

func NewListAddressBookQueryHandler(db *gorm.DB) ListAddressBookQueryHandler {
	return ListAddressBookQueryHandler{db: db}
}

func (h ListAddressBookQueryHandler) Handle(ctx context.Context, query ListAddressBookQuery) ([]AddressBookEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]AddressBookEntryView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			address,
			updated_at
		FROM address_book_entries
		WHERE owner = ?
		ORDER BY lower(name), id
	`, query.Principal().Email().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view AddressBookEntryView
		var id uuid.UUID
		var updatedAt time.Time

		if err = rows.Scan(&id, &view.Name, &view.Email, &view.Address, &updatedAt); err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = entryID
		view.UpdatedAt = updatedAt.UTC()
		entries = append(entries, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
