package commands

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/guard"
)

var ErrChangeUserRoleCommandIsNotConstructed = errors.New(
	"ChangeUserRoleCommand must be created via NewChangeUserRoleCommand constructor",
)

type ChangeUserRoleCommand struct { //nolint:recvcheck //using for validation
	principal identity.Principal
	target    kernel.Email
	role      identity.Role

	guard guard.ConstructorGuard
}

func NewChangeUserRoleCommand(
	principal identity.Principal,
	target kernel.Email,
	role identity.Role,
) (ChangeUserRoleCommand, error) {
	if err := errors.Join(principal.Validate(), target.Validate(), role.Validate()); err != nil {
		return ChangeUserRoleCommand{}, err
	}
	return ChangeUserRoleCommand{principal: principal, target: target, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (c ChangeUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrChangeUserRoleCommandIsNotConstructed)
}

func (c ChangeUserRoleCommand) Principal() identity.Principal { return c.principal }
func (c ChangeUserRoleCommand) Target() kernel.Email          { return c.target }
func (c ChangeUserRoleCommand) Role() identity.Role           { return c.role }

// ChangeUserRoleCommandHandler lets an admin set the role of any user.
type ChangeUserRoleCommandHandler struct {
	uowFactory UserUoWFactory
	authz      services.AuthorizationPolicy
}

func NewChangeUserRoleCommandHandler(
	uowFactory UserUoWFactory,
	authz services.AuthorizationPolicy,
) ChangeUserRoleCommandHandler {
	return ChangeUserRoleCommandHandler{uowFactory: uowFactory, authz: authz}
}

func (h ChangeUserRoleCommandHandler) Handle(ctx context.Context, cmd ChangeUserRoleCommand) (*identity.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.authz.CanManageRoles(cmd.Principal()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	user, err := repo.Get(ctx, cmd.Target())
	if err != nil {
		return nil, err
	}
	if err = user.ChangeRole(cmd.Role()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return user, nil
}
