package addressbook

import (
	"errors"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is a saved contact of one owner. It only pre-fills shipment creation:
// once its receiver and address are copied into a shipment, later edits to the
// entry do not affect that shipment.
type Entry struct {
	id        kernel.UUID
	owner     kernel.Email
	name      string
	email     kernel.Email
	address   string
	updatedAt time.Time

	isConstructed bool
}

func NewEntry(owner kernel.Email, name string, email kernel.Email, address string, at time.Time) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), owner, name, email, address, at)
}

func RestoreEntry(
	id kernel.UUID,
	owner kernel.Email,
	name string,
	email kernel.Email,
	address string,
	updatedAt time.Time,
) (*Entry, error) {
	e := &Entry{id: id, owner: owner, isConstructed: true}
	if err := errors.Join(id.Validate(), owner.Validate(), e.set(name, email, address, updatedAt)); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces name, email and address together.
func (e *Entry) Update(name string, email kernel.Email, address string, at time.Time) error {
	updated := *e
	if err := updated.set(name, email, address, at); err != nil {
		return err
	}
	*e = updated
	return nil
}

func (e *Entry) set(name string, email kernel.Email, address string, at time.Time) error {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)

	var nameErr, addressErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	if address == "" {
		addressErr = errs.NewValueIsRequiredError("address")
	}
	if err := errors.Join(nameErr, email.Validate(), addressErr); err != nil {
		return err
	}

	e.name = name
	e.email = email
	e.address = address
	e.updatedAt = at.UTC()
	return nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// IsOwnedBy reports whether principal email owns the entry.
func (e *Entry) IsOwnedBy(email kernel.Email) bool {
	return e.owner.IsEqual(email)
}

func (e *Entry) ID() kernel.UUID      { return e.id }
func (e *Entry) Owner() kernel.Email  { return e.owner }
func (e *Entry) Name() string         { return e.name }
func (e *Entry) Email() kernel.Email  { return e.email }
func (e *Entry) Address() string      { return e.address }
func (e *Entry) UpdatedAt() time.Time { return e.updatedAt }
