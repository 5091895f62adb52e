package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/guard"
)

var ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
	"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
)

// UpdateShipmentStatusCommand asks to move a shipment to a later status.
type UpdateShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	principal  identity.Principal
	shipmentID kernel.UUID
	target     shipment.Status

	guard guard.ConstructorGuard
}

func NewUpdateShipmentStatusCommand(
	principal identity.Principal,
	shipmentID kernel.UUID,
	target shipment.Status,
) (UpdateShipmentStatusCommand, error) {
	if err := errors.Join(principal.Validate(), shipmentID.Validate(), target.Validate()); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}
	return UpdateShipmentStatusCommand{
		principal:  principal,
		shipmentID: shipmentID,
		target:     target,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}

func (c UpdateShipmentStatusCommand) Principal() identity.Principal { return c.principal }
func (c UpdateShipmentStatusCommand) ShipmentID() kernel.UUID       { return c.shipmentID }
func (c UpdateShipmentStatusCommand) Target() shipment.Status       { return c.target }
