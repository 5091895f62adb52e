package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
)

// AddCommentCommand appends a message to a shipment's thread.
type AddCommentCommand struct {
	shipmentTarget
	text string
}

func NewAddCommentCommand(principal identity.Principal, shipmentID kernel.UUID, text string) (AddCommentCommand, error) {
	target, err := newShipmentTarget(principal, shipmentID)
	if err != nil {
		return AddCommentCommand{}, err
	}
	return AddCommentCommand{shipmentTarget: target, text: text}, nil
}

func (c AddCommentCommand) Text() string { return c.text }

// AddCommentCommandHandler lets the sender or the receiver comment in any status.
type AddCommentCommandHandler struct {
	uowFactory CommentUoWFactory
	authz      services.AuthorizationPolicy
	now        func() time.Time
}

func NewAddCommentCommandHandler(uowFactory CommentUoWFactory, authz services.AuthorizationPolicy) AddCommentCommandHandler {
	return AddCommentCommandHandler{uowFactory: uowFactory, authz: authz, now: time.Now}
}

func (h AddCommentCommandHandler) Handle(ctx context.Context, cmd AddCommentCommand) (*shipment.Comment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	p := cmd.Principal()
	if err = h.authz.CanComment(p, s); err != nil {
		return nil, err
	}

	comment, err := shipment.NewComment(s.ID(), cmd.Text(), p.Email(), p.DisplayName(), h.now())
	if err != nil {
		return nil, err
	}

	if err = uow.CommentRepository().Add(ctx, comment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return comment, nil
}
