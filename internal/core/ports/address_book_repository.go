package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/addressbook"
	"parceltrack/internal/core/domain/model/kernel"
)

type AddressBookRepository interface {
	Add(ctx context.Context, e *addressbook.Entry) error
	Update(ctx context.Context, e *addressbook.Entry) error
	Get(ctx context.Context, id kernel.UUID) (*addressbook.Entry, error)
	Delete(ctx context.Context, id kernel.UUID) error

	// ListByOwner returns the owner's entries ordered by name.
	ListByOwner(ctx context.Context, owner kernel.Email) ([]*addressbook.Entry, error)
}
