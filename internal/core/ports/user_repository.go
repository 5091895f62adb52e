package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
)

type UserRepository interface {
	// Add inserts the user unless one with the same email exists; it never
	// overwrites a stored role.
	Add(ctx context.Context, u *identity.User) error
	Update(ctx context.Context, u *identity.User) error
	Get(ctx context.Context, email kernel.Email) (*identity.User, error)
	List(ctx context.Context) ([]*identity.User, error)
}
