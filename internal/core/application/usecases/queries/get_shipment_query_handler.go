package queries

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// GetShipmentQueryHandler returns the shipment to participants, agents and
// admins, together with the statuses the principal may move it to.
type GetShipmentQueryHandler struct {
	shipments ShipmentReader
	engine    services.StatusTransitionEngine
	authz     services.AuthorizationPolicy
}

func NewGetShipmentQueryHandler(
	shipments ShipmentReader,
	engine services.StatusTransitionEngine,
	authz services.AuthorizationPolicy,
) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{shipments: shipments, engine: engine, authz: authz}
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	s, err := h.shipments.Get(ctx, query.ShipmentID())
	if err != nil {
		return ShipmentView{}, err
	}

	p := query.Principal()
	if err = h.authz.CanView(p, s); err != nil {
		return ShipmentView{}, err
	}

	return NewShipmentView(s, h.engine.AllowedTargets(p, s)), nil
}
