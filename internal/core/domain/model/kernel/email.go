package kernel

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrEmailIsNotConstructed is returned when a zero-value Email is used.
var ErrEmailIsNotConstructed = errors.New("Email must be created via NewEmail constructor")

// Email is a syntactically plausible mailbox address, normalized to lower case.
// Principals, senders, receivers and address book contacts are all identified by it.
type Email struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewEmail trims and lower-cases raw and checks it has the shape local@domain.
// Display-name forms such as "Alice <alice@example.com>" are rejected; the
// address is stored and compared as a bare mailbox.
func NewEmail(raw string) (Email, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}

	addr, err := mail.ParseAddress(value)
	if err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if addr.Address != value || addr.Name != "" {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a bare address", raw))
	}

	at := strings.LastIndex(value, "@")
	if at <= 0 || !strings.Contains(value[at+1:], ".") {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q has no domain", raw))
	}

	return Email{value: value, guard: guard.NewConstructorGuard()}, nil
}

// MustEmail is NewEmail for literals known to be valid.
func MustEmail(raw string) Email {
	e, err := NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Email) Validate() error {
	return e.guard.Validate(ErrEmailIsNotConstructed)
}

func (e Email) String() string {
	return e.value
}

// IsEqual compares normalized addresses. Zero values are never equal to anything.
func (e Email) IsEqual(other Email) bool {
	return e.value != "" && e.value == other.value
}
