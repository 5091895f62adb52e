package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
)

// EditShipmentDescriptionCommand replaces the description of a shipment.
type EditShipmentDescriptionCommand struct {
	shipmentTarget
	description string
}

func NewEditShipmentDescriptionCommand(
	principal identity.Principal,
	shipmentID kernel.UUID,
	description string,
) (EditShipmentDescriptionCommand, error) {
	target, err := newShipmentTarget(principal, shipmentID)
	if err != nil {
		return EditShipmentDescriptionCommand{}, err
	}
	return EditShipmentDescriptionCommand{shipmentTarget: target, description: description}, nil
}

func (c EditShipmentDescriptionCommand) Description() string { return c.description }

// EditShipmentDescriptionCommandHandler lets the sender edit the description
// until the shipment is delivered or cancelled. The amount stays as charged.
type EditShipmentDescriptionCommandHandler struct {
	uowFactory ShipmentUoWFactory
	authz      services.AuthorizationPolicy
}

func NewEditShipmentDescriptionCommandHandler(
	uowFactory ShipmentUoWFactory,
	authz services.AuthorizationPolicy,
) EditShipmentDescriptionCommandHandler {
	return EditShipmentDescriptionCommandHandler{uowFactory: uowFactory, authz: authz}
}

func (h EditShipmentDescriptionCommandHandler) Handle(
	ctx context.Context,
	cmd EditShipmentDescriptionCommand,
) (*shipment.Shipment, error) {
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

	repo := uow.ShipmentRepository()
	s, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	if err = h.authz.CanEditOrCancel(cmd.Principal(), s, services.ActionEdit); err != nil {
		return nil, err
	}

	s.EditDescription(cmd.Description())
	if err = repo.UpdateDescription(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
