package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery reads one shipment by id on behalf of principal.
type GetShipmentQuery struct { //nolint:recvcheck //using for validation
	principal  identity.Principal
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(principal identity.Principal, shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := errors.Join(principal.Validate(), shipmentID.Validate()); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{principal: principal, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) Principal() identity.Principal { return q.principal }
func (q GetShipmentQuery) ShipmentID() kernel.UUID       { return q.shipmentID }
