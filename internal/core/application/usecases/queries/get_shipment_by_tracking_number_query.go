package queries

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/guard"
)

var ErrGetShipmentByTrackingNumberQueryIsNotConstructed = errors.New(
	"GetShipmentByTrackingNumberQuery must be created via NewGetShipmentByTrackingNumberQuery constructor",
)

// GetShipmentByTrackingNumberQuery is the scanner lookup: any signed-in
// principal holding the label may read the shipment.
type GetShipmentByTrackingNumberQuery struct { //nolint:recvcheck //using for validation
	principal      identity.Principal
	trackingNumber shipment.TrackingNumber

	guard guard.ConstructorGuard
}

// NewGetShipmentByTrackingNumberQuery accepts the code in any letter case,
// as scanners and people type it.
func NewGetShipmentByTrackingNumberQuery(
	principal identity.Principal,
	trackingNumber string,
) (GetShipmentByTrackingNumberQuery, error) {
	tn, tnErr := shipment.NewTrackingNumber(strings.ToUpper(strings.TrimSpace(trackingNumber)))
	if err := errors.Join(principal.Validate(), tnErr); err != nil {
		return GetShipmentByTrackingNumberQuery{}, err
	}
	return GetShipmentByTrackingNumberQuery{
		principal:      principal,
		trackingNumber: tn,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q GetShipmentByTrackingNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentByTrackingNumberQueryIsNotConstructed)
}

func (q GetShipmentByTrackingNumberQuery) Principal() identity.Principal { return q.principal }

func (q GetShipmentByTrackingNumberQuery) TrackingNumber() shipment.TrackingNumber {
	return q.trackingNumber
}
