package services

import (
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/addressbook"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/errs"
)

// Actions named in authorization errors.
const (
	ActionEdit           = "edit shipment"
	ActionCancel         = "cancel shipment"
	ActionAttach         = "attach documents"
	ActionUpdateStatus   = "update status"
	ActionComment        = "comment"
	ActionGiveFeedback   = "give feedback"
	ActionManageRoles    = "manage roles"
	ActionViewShipment   = "view shipment"
	ActionManageContacts = "manage address book entry"
)

// AuthorizationPolicy decides which mutations a principal may perform on a shipment.
//
// Every check returns nil when permitted and an *errs.AuthorizationError
// otherwise. Roles grant nothing on a shipment by id; only the sender and
// the receiver read or act on it.
type AuthorizationPolicy struct{}

func NewAuthorizationPolicy() AuthorizationPolicy {
	return AuthorizationPolicy{}
}

// CanEditOrCancel: the sender, while the shipment is neither Delivered nor Cancelled.
func (AuthorizationPolicy) CanEditOrCancel(p identity.Principal, s *shipment.Shipment, action string) error {
	if !s.IsSender(p.Email()) {
		return deny(action, p, "only the sender may do this")
	}
	if s.Status().IsTerminal() {
		return deny(action, p, fmt.Sprintf("shipment is %s", s.Status()))
	}
	return nil
}

// CanUpdateStatus: sender or receiver, while the shipment is neither Delivered nor Cancelled.
func (AuthorizationPolicy) CanUpdateStatus(p identity.Principal, s *shipment.Shipment) error {
	if !s.IsParticipant(p.Email()) {
		return deny(ActionUpdateStatus, p, "not a participant")
	}
	if s.Status().IsTerminal() {
		return deny(ActionUpdateStatus, p, fmt.Sprintf("shipment is %s", s.Status()))
	}
	return nil
}

// CanComment: sender or receiver, in any status.
func (AuthorizationPolicy) CanComment(p identity.Principal, s *shipment.Shipment) error {
	if !s.IsParticipant(p.Email()) {
		return deny(ActionComment, p, "not a participant")
	}
	return nil
}

// CanGiveFeedback: the receiver, once Delivered, while no feedback exists.
func (AuthorizationPolicy) CanGiveFeedback(p identity.Principal, s *shipment.Shipment) error {
	if !s.IsReceiver(p.Email()) {
		return deny(ActionGiveFeedback, p, "only the receiver may do this")
	}
	if s.Status() != shipment.Delivered {
		return deny(ActionGiveFeedback, p, fmt.Sprintf("shipment is %s", s.Status()))
	}
	if s.Feedback() != nil {
		return deny(ActionGiveFeedback, p, "feedback already given")
	}
	return nil
}

// CanView: the sender or the receiver, whatever their role.
func (AuthorizationPolicy) CanView(p identity.Principal, s *shipment.Shipment) error {
	if s.IsParticipant(p.Email()) {
		return nil
	}
	return deny(ActionViewShipment, p, "not a participant")
}

// CanManageEntry: only the owner of an address book entry.
func (AuthorizationPolicy) CanManageEntry(p identity.Principal, e *addressbook.Entry) error {
	if !e.IsOwnedBy(p.Email()) {
		return deny(ActionManageContacts, p, "not the owner")
	}
	return nil
}

func (AuthorizationPolicy) CanManageRoles(p identity.Principal) error {
	if !p.IsAdmin() {
		return deny(ActionManageRoles, p, fmt.Sprintf("role is %s", p.Role()))
	}
	return nil
}

func deny(action string, p identity.Principal, reason string) error {
	return errs.NewAuthorizationErrorWithCause(action, p.Email().String(), errors.New(reason))
}
