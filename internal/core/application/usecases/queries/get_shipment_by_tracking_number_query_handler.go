package queries

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// DefaultTrackingCacheTTL is how long a tracking number stays mapped to its
// shipment id in the cache.
const DefaultTrackingCacheTTL = 24 * time.Hour

// GetShipmentByTrackingNumberQueryHandler resolves a tracking number through
// the TrackingCache and falls back to the database on a miss.
//
// The cache is an accelerator only. Its failures are logged and the lookup
// continues against the database. A cached id whose shipment is gone (it was
// cancelled) is evicted and reported as not found.
type GetShipmentByTrackingNumberQueryHandler struct {
	shipments ShipmentReader
	cache     ports.TrackingCache
	engine    services.StatusTransitionEngine
	ttl       time.Duration
	logger    *slog.Logger
}

func NewGetShipmentByTrackingNumberQueryHandler(
	shipments ShipmentReader,
	cache ports.TrackingCache,
	engine services.StatusTransitionEngine,
	ttl time.Duration,
	logger *slog.Logger,
) GetShipmentByTrackingNumberQueryHandler {
	if ttl <= 0 {
		ttl = DefaultTrackingCacheTTL
	}
	return GetShipmentByTrackingNumberQueryHandler{
		shipments: shipments,
		cache:     cache,
		engine:    engine,
		ttl:       ttl,
		logger:    logger.With("component", "tracking_lookup"),
	}
}

func (h GetShipmentByTrackingNumberQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentByTrackingNumberQuery,
) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	s, err := h.load(ctx, query.TrackingNumber())
	if err != nil {
		return ShipmentView{}, err
	}

	return NewShipmentView(s, h.engine.AllowedTargets(query.Principal(), s)), nil
}

func (h GetShipmentByTrackingNumberQueryHandler) load(
	ctx context.Context,
	tn shipment.TrackingNumber,
) (*shipment.Shipment, error) {
	code := tn.String()

	id, found, err := h.cache.Get(ctx, code)
	if err != nil {
		h.logger.WarnContext(ctx, "Tracking cache read failed", "trackingNumber", code, "error", err)
		found = false
	}

	if found {
		s, getErr := h.shipments.Get(ctx, id)
		if getErr == nil {
			return s, nil
		}
		if !errors.Is(getErr, errs.ErrObjectNotFound) {
			return nil, getErr
		}
		if delErr := h.cache.Delete(ctx, code); delErr != nil {
			h.logger.WarnContext(ctx, "Tracking cache eviction failed", "trackingNumber", code, "error", delErr)
		}
		return nil, errs.NewObjectNotFoundError("trackingNumber", code)
	}

	s, err := h.shipments.GetByTrackingNumber(ctx, tn)
	if err != nil {
		return nil, err
	}

	if setErr := h.cache.Set(ctx, code, s.ID(), h.ttl); setErr != nil {
		h.logger.WarnContext(ctx, "Tracking cache write failed", "trackingNumber", code, "error", setErr)
	}
	return s, nil
}
