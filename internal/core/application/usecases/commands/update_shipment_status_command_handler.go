package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
)

// UpdateShipmentStatusCommandHandler applies a status change through the
// StatusTransitionEngine and stores it conditionally on the status the
// decision was made against.
//
// Two concurrent requests on one shipment cannot both succeed: the loser's
// conditional write matches no row and it gets an errs.ConflictError. It is
// not retried here; the caller re-reads and decides again.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
	engine     services.StatusTransitionEngine
	now        func() time.Time
}

func NewUpdateShipmentStatusCommandHandler(
	uowFactory ShipmentUoWFactory,
	engine services.StatusTransitionEngine,
) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{uowFactory: uowFactory, engine: engine, now: time.Now}
}

func (h UpdateShipmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateShipmentStatusCommand,
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

	observed, err := h.engine.Transition(cmd.Principal(), s, cmd.Target(), h.now())
	if err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, s, observed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
