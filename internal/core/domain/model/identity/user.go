package identity

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User is the locally tracked record of an identity provider account.
// Its only mutable property is the role.
type User struct {
	email         kernel.Email
	displayName   string
	role          Role
	createdAt     time.Time
	isConstructed bool
}

// NewUser registers a user on first sign-in with the default RoleUser.
func NewUser(email kernel.Email, displayName string, createdAt time.Time) (*User, error) {
	return RestoreUser(email, displayName, RoleUser, createdAt)
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(email kernel.Email, displayName string, role Role, createdAt time.Time) (*User, error) {
	if err := errors.Join(email.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	return &User{
		email:         email,
		displayName:   displayName,
		role:          role,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) Email() kernel.Email  { return u.email }
func (u *User) DisplayName() string  { return u.displayName }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// ChangeRole sets a new role. Authorization is the caller's concern.
func (u *User) ChangeRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

// Principal projects the user into the actor of an operation.
func (u *User) Principal() (Principal, error) {
	return NewPrincipal(u.email, u.displayName, u.role)
}
