package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrShipmentCommandIsNotConstructed = errors.New("shipment command must be created via its constructor")

// shipmentTarget is the part shared by commands that act on one existing shipment.
type shipmentTarget struct { //nolint:recvcheck //using for validation
	principal  identity.Principal
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func newShipmentTarget(principal identity.Principal, shipmentID kernel.UUID) (shipmentTarget, error) {
	if err := errors.Join(principal.Validate(), shipmentID.Validate()); err != nil {
		return shipmentTarget{}, err
	}
	return shipmentTarget{principal: principal, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (t shipmentTarget) Validate() error {
	return t.guard.Validate(ErrShipmentCommandIsNotConstructed)
}

func (t shipmentTarget) Principal() identity.Principal { return t.principal }
func (t shipmentTarget) ShipmentID() kernel.UUID       { return t.shipmentID }
