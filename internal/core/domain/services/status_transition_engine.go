package services

import (
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/shipment"
)

// StatusTransitionEngine applies a status change requested by a principal.
//
// The order of checks is fixed: authorization first, then reachability of the
// target. On success the shipment holds the new status and history entry, and
// the status it was decided against is returned so the caller can persist the
// change conditionally on it.
type StatusTransitionEngine struct {
	authz AuthorizationPolicy
}

func NewStatusTransitionEngine(authz AuthorizationPolicy) StatusTransitionEngine {
	return StatusTransitionEngine{authz: authz}
}

func (e StatusTransitionEngine) Transition(
	p identity.Principal,
	s *shipment.Shipment,
	target shipment.Status,
	at time.Time,
) (observed shipment.Status, err error) {
	if err = s.Validate(); err != nil {
		return shipment.Unknown, err
	}
	if err = e.authz.CanUpdateStatus(p, s); err != nil {
		return shipment.Unknown, err
	}

	observed = s.Status()
	if err = s.TransitionTo(target, p.Email(), at); err != nil {
		return shipment.Unknown, err
	}
	return observed, nil
}

// AllowedTargets lists the statuses p could move s to right now.
func (e StatusTransitionEngine) AllowedTargets(p identity.Principal, s *shipment.Shipment) []shipment.Status {
	if e.authz.CanUpdateStatus(p, s) != nil {
		return []shipment.Status{}
	}
	return s.AllowedTargets()
}
