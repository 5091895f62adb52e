package commands

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// CancelShipmentCommand withdraws a shipment before delivery.
type CancelShipmentCommand struct {
	shipmentTarget
}

func NewCancelShipmentCommand(principal identity.Principal, shipmentID kernel.UUID) (CancelShipmentCommand, error) {
	target, err := newShipmentTarget(principal, shipmentID)
	if err != nil {
		return CancelShipmentCommand{}, err
	}
	return CancelShipmentCommand{shipmentTarget: target}, nil
}

// CancelShipmentCommandHandler deletes a shipment on its sender's request,
// together with its history and comments. Its documents and cache entry are
// removed after commit on a best-effort basis.
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	authz      services.AuthorizationPolicy
	blobs      ports.BlobStore
	cache      ports.TrackingCache
	now        func() time.Time
	logger     *slog.Logger
}

func NewCancelShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	authz services.AuthorizationPolicy,
	blobs ports.BlobStore,
	cache ports.TrackingCache,
	logger *slog.Logger,
) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		authz:      authz,
		blobs:      blobs,
		cache:      cache,
		now:        time.Now,
		logger:     logger.With("component", "cancel_shipment"),
	}
}

func (h CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
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

	repo := uow.ShipmentRepository()
	s, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = h.authz.CanEditOrCancel(cmd.Principal(), s, services.ActionCancel); err != nil {
		return err
	}

	if err = s.Withdraw(cmd.Principal().Email(), h.now()); err != nil {
		return err
	}

	if err = repo.Delete(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	trackingNumber := s.TrackingNumber().String()
	if err = h.cache.Delete(ctx, trackingNumber); err != nil {
		h.logger.WarnContext(ctx, "Tracking cache entry not removed", "trackingNumber", trackingNumber, "error", err)
	}
	if len(s.Documents()) > 0 {
		if err = h.blobs.DeleteNamespace(ctx, trackingNumber); err != nil {
			h.logger.WarnContext(ctx, "Documents of cancelled shipment left for the sweep",
				"trackingNumber", trackingNumber, "error", err)
		}
	}

	return nil
}
