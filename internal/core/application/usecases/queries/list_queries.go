package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrListQueryIsNotConstructed = errors.New("list query must be created via its constructor")

// principalScope is the part shared by list queries that only need to know who asks.
type principalScope struct { //nolint:recvcheck //using for validation
	principal identity.Principal
	guard     guard.ConstructorGuard
}

func newPrincipalScope(principal identity.Principal) (principalScope, error) {
	if err := principal.Validate(); err != nil {
		return principalScope{}, err
	}
	return principalScope{principal: principal, guard: guard.NewConstructorGuard()}, nil
}

func (s principalScope) Validate() error {
	return s.guard.Validate(ErrListQueryIsNotConstructed)
}

func (s principalScope) Principal() identity.Principal { return s.principal }

// ListParticipantShipmentsQuery lists the shipments the principal sent or receives.
type ListParticipantShipmentsQuery struct {
	principalScope
}

func NewListParticipantShipmentsQuery(principal identity.Principal) (ListParticipantShipmentsQuery, error) {
	scope, err := newPrincipalScope(principal)
	return ListParticipantShipmentsQuery{principalScope: scope}, err
}

// ListAddressBookQuery lists the principal's own address book.
type ListAddressBookQuery struct {
	principalScope
}

func NewListAddressBookQuery(principal identity.Principal) (ListAddressBookQuery, error) {
	scope, err := newPrincipalScope(principal)
	return ListAddressBookQuery{principalScope: scope}, err
}

// ListUsersQuery lists every known user. Admins only.
type ListUsersQuery struct {
	principalScope
}

func NewListUsersQuery(principal identity.Principal) (ListUsersQuery, error) {
	scope, err := newPrincipalScope(principal)
	return ListUsersQuery{principalScope: scope}, err
}

var ErrListCommentsQueryIsNotConstructed = errors.New(
	"ListCommentsQuery must be created via NewListCommentsQuery constructor",
)

// ListCommentsQuery reads a shipment's thread, oldest first.
type ListCommentsQuery struct { //nolint:recvcheck //using for validation
	principal  identity.Principal
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListCommentsQuery(principal identity.Principal, shipmentID kernel.UUID) (ListCommentsQuery, error) {
	if err := errors.Join(principal.Validate(), shipmentID.Validate()); err != nil {
		return ListCommentsQuery{}, err
	}
	return ListCommentsQuery{principal: principal, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCommentsQuery) Validate() error {
	return q.guard.Validate(ErrListCommentsQueryIsNotConstructed)
}

func (q ListCommentsQuery) Principal() identity.Principal { return q.principal }
func (q ListCommentsQuery) ShipmentID() kernel.UUID       { return q.shipmentID }
