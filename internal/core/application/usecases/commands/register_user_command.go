package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand records an identity provider account on first sight.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	email       kernel.Email
	displayName string

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(email kernel.Email, displayName string) (RegisterUserCommand, error) {
	if err := email.Validate(); err != nil {
		return RegisterUserCommand{}, err
	}
	return RegisterUserCommand{
		email:       email,
		displayName: strings.TrimSpace(displayName),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Email() kernel.Email { return c.email }
func (c RegisterUserCommand) DisplayName() string { return c.displayName }

// RegisterUserCommandHandler returns the stored user for an email, creating
// it with the default role when it does not exist yet. It is what turns an
// authenticated identity into a Principal with a role.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	now        func() time.Time
}

func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory, now: time.Now}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*identity.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	repo := uow.UserRepository()

	user, err := repo.Get(ctx, cmd.Email())
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if user, err = identity.NewUser(cmd.Email(), cmd.DisplayName(), h.now()); err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, user); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// A concurrent first sign-in may have won; the stored role is authoritative.
	return uow.UserRepository().Get(ctx, cmd.Email())
}
