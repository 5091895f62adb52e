package commands

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/addressbook"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/guard"
)

var ErrSaveAddressBookEntryCommandIsNotConstructed = errors.New(
	"SaveAddressBookEntryCommand must be created via NewSaveAddressBookEntryCommand constructor",
)

// SaveAddressBookEntryCommand creates an entry, or replaces one when entryID is set.
type SaveAddressBookEntryCommand struct { //nolint:recvcheck //using for validation
	principal identity.Principal
	entryID   *kernel.UUID
	input     services.ContactInput

	guard guard.ConstructorGuard
}

func NewSaveAddressBookEntryCommand(
	principal identity.Principal,
	entryID *kernel.UUID,
	input services.ContactInput,
) (SaveAddressBookEntryCommand, error) {
	var idErr error
	if entryID != nil {
		idErr = entryID.Validate()
	}
	if err := errors.Join(principal.Validate(), idErr); err != nil {
		return SaveAddressBookEntryCommand{}, err
	}
	return SaveAddressBookEntryCommand{
		principal: principal,
		entryID:   entryID,
		input:     input,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SaveAddressBookEntryCommand) Validate() error {
	return c.guard.Validate(ErrSaveAddressBookEntryCommandIsNotConstructed)
}

func (c SaveAddressBookEntryCommand) Principal() identity.Principal { return c.principal }
func (c SaveAddressBookEntryCommand) EntryID() *kernel.UUID         { return c.entryID }
func (c SaveAddressBookEntryCommand) Input() services.ContactInput  { return c.input }

type SaveAddressBookEntryCommandHandler struct {
	uowFactory AddressBookUoWFactory
	policy     services.ValidationPolicy
	authz      services.AuthorizationPolicy
	now        func() time.Time
}

func NewSaveAddressBookEntryCommandHandler(
	uowFactory AddressBookUoWFactory,
	policy services.ValidationPolicy,
	authz services.AuthorizationPolicy,
) SaveAddressBookEntryCommandHandler {
	return SaveAddressBookEntryCommandHandler{uowFactory: uowFactory, policy: policy, authz: authz, now: time.Now}
}

func (h SaveAddressBookEntryCommandHandler) Handle(
	ctx context.Context,
	cmd SaveAddressBookEntryCommand,
) (*addressbook.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	in := cmd.Input()
	email, err := h.policy.ValidateContact(in)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AddressBookRepository()

	var entry *addressbook.Entry
	if id := cmd.EntryID(); id != nil {
		if entry, err = repo.Get(ctx, *id); err != nil {
			return nil, err
		}
		if err = h.authz.CanManageEntry(cmd.Principal(), entry); err != nil {
			return nil, err
		}
		if err = entry.Update(in.Name, email, in.Address, h.now()); err != nil {
			return nil, err
		}
		err = repo.Update(ctx, entry)
	} else {
		if entry, err = addressbook.NewEntry(cmd.Principal().Email(), in.Name, email, in.Address, h.now()); err != nil {
			return nil, err
		}
		err = repo.Add(ctx, entry)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}
