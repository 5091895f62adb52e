package identity

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal constructor")

// Principal is the authenticated actor of one operation. It is passed
// explicitly into every command; there is no ambient "current user".
type Principal struct { //nolint:recvcheck //using for validation
	email       kernel.Email
	displayName string
	role        Role
	guard       guard.ConstructorGuard
}

// NewPrincipal combines the identity provider's email and optional display name
// with the locally stored role.
func NewPrincipal(email kernel.Email, displayName string, role Role) (Principal, error) {
	if err := errors.Join(email.Validate(), role.Validate()); err != nil {
		return Principal{}, err
	}
	return Principal{
		email:       email,
		displayName: displayName,
		role:        role,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

func (p Principal) Email() kernel.Email {
	return p.email
}

func (p Principal) Role() Role {
	return p.role
}

// DisplayName falls back to the email when the identity provider supplied no name.
func (p Principal) DisplayName() string {
	if p.displayName != "" {
		return p.displayName
	}
	return p.email.String()
}

func (p Principal) IsAdmin() bool {
	return p.role == RoleAdmin
}
