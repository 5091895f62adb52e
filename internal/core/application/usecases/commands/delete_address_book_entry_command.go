package commands

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/guard"
)

var ErrDeleteAddressBookEntryCommandIsNotConstructed = errors.New(
	"DeleteAddressBookEntryCommand must be created via NewDeleteAddressBookEntryCommand constructor",
)

type DeleteAddressBookEntryCommand struct { //nolint:recvcheck //using for validation
	principal identity.Principal
	entryID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteAddressBookEntryCommand(principal identity.Principal, entryID kernel.UUID) (DeleteAddressBookEntryCommand, error) {
	if err := errors.Join(principal.Validate(), entryID.Validate()); err != nil {
		return DeleteAddressBookEntryCommand{}, err
	}
	return DeleteAddressBookEntryCommand{principal: principal, entryID: entryID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteAddressBookEntryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAddressBookEntryCommandIsNotConstructed)
}

func (c DeleteAddressBookEntryCommand) Principal() identity.Principal { return c.principal }
func (c DeleteAddressBookEntryCommand) EntryID() kernel.UUID          { return c.entryID }

type DeleteAddressBookEntryCommandHandler struct {
	uowFactory AddressBookUoWFactory
	authz      services.AuthorizationPolicy
}

func NewDeleteAddressBookEntryCommandHandler(
	uowFactory AddressBookUoWFactory,
	authz services.AuthorizationPolicy,
) DeleteAddressBookEntryCommandHandler {
	return DeleteAddressBookEntryCommandHandler{uowFactory: uowFactory, authz: authz}
}

func (h DeleteAddressBookEntryCommandHandler) Handle(ctx context.Context, cmd DeleteAddressBookEntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AddressBookRepository()
	entry, err := repo.Get(ctx, cmd.EntryID())
	if err != nil {
		return err
	}
	if err = h.authz.CanManageEntry(cmd.Principal(), entry); err != nil {
		return err
	}
	if err = repo.Delete(ctx, entry.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
