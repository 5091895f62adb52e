package services_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/addressbook"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPermitted(t *testing.T, permitted bool, err error) {
	t.Helper()
	if permitted {
		require.NoError(t, err)
		return
	}
	require.ErrorIs(t, err, errs.ErrNotPermitted)
	assert.NotErrorIs(t, err, errs.ErrValidation)
	var authErr *errs.AuthorizationError
	require.ErrorAs(t, err, &authErr)
}

func TestAuthorizationPolicy_CanEditOrCancel(t *testing.T) {
	policy := services.NewAuthorizationPolicy()

	for _, status := range shipment.Statuses() {
		t.Run(status.String(), func(t *testing.T) {
			s := shipmentIn(t, status)
			open := status != shipment.Delivered && status != shipment.Cancelled

			assertPermitted(t, open, policy.CanEditOrCancel(principal(t, senderEmail, identity.RoleUser), s, services.ActionEdit))
			assertPermitted(t, false, policy.CanEditOrCancel(principal(t, receiverEmail, identity.RoleUser), s, services.ActionEdit))
			assertPermitted(t, false, policy.CanEditOrCancel(principal(t, strangerEmail, identity.RoleAdmin), s, services.ActionCancel))
		})
	}
}

func TestAuthorizationPolicy_CanUpdateStatus(t *testing.T) {
	policy := services.NewAuthorizationPolicy()

	for _, status := range shipment.Statuses() {
		t.Run(status.String(), func(t *testing.T) {
			s := shipmentIn(t, status)
			open := !status.IsTerminal()

			assertPermitted(t, open, policy.CanUpdateStatus(principal(t, senderEmail, identity.RoleUser), s))
			assertPermitted(t, open, policy.CanUpdateStatus(principal(t, receiverEmail, identity.RoleUser), s))
			for _, role := range []identity.Role{identity.RoleUser, identity.RoleAgent, identity.RoleAdmin} {
				assertPermitted(t, false, policy.CanUpdateStatus(principal(t, strangerEmail, role), s))
			}
		})
	}
}

func TestAuthorizationPolicy_CanComment(t *testing.T) {
	policy := services.NewAuthorizationPolicy()

	for _, status := range shipment.Statuses() {
		s := shipmentIn(t, status)
		assertPermitted(t, true, policy.CanComment(principal(t, senderEmail, identity.RoleUser), s))
		assertPermitted(t, true, policy.CanComment(principal(t, receiverEmail, identity.RoleUser), s))
		assertPermitted(t, false, policy.CanComment(principal(t, strangerEmail, identity.RoleAdmin), s))
	}
}

func TestAuthorizationPolicy_CanGiveFeedback(t *testing.T) {
	policy := services.NewAuthorizationPolicy()

	t.Run("receiver of a delivered shipment", func(t *testing.T) {
		s := shipmentIn(t, shipment.Delivered)
		assertPermitted(t, true, policy.CanGiveFeedback(principal(t, receiverEmail, identity.RoleUser), s))
		assertPermitted(t, false, policy.CanGiveFeedback(principal(t, senderEmail, identity.RoleUser), s))
	})

	t.Run("not before delivery or after return", func(t *testing.T) {
		for _, status := range []shipment.Status{shipment.Dispatched, shipment.InTransit, shipment.Returned, shipment.Cancelled} {
			assertPermitted(t, false, policy.CanGiveFeedback(principal(t, receiverEmail, identity.RoleUser), shipmentIn(t, status)))
		}
	})

	t.Run("not twice", func(t *testing.T) {
		s := shipmentIn(t, shipment.Delivered)
		fb, err := shipment.NewFeedback(4, "ok", receiverEmail, createdAt.Add(2*time.Hour))
		require.NoError(t, err)
		require.NoError(t, s.SubmitFeedback(fb))

		assertPermitted(t, false, policy.CanGiveFeedback(principal(t, receiverEmail, identity.RoleUser), s))
	})
}

func TestAuthorizationPolicy_CanView(t *testing.T) {
	policy := services.NewAuthorizationPolicy()
	s := shipmentIn(t, shipment.InTransit)

	assertPermitted(t, true, policy.CanView(principal(t, receiverEmail, identity.RoleUser), s))
	assertPermitted(t, true, policy.CanView(principal(t, senderEmail, identity.RoleAgent), s))
	assertPermitted(t, false, policy.CanView(principal(t, strangerEmail, identity.RoleAgent), s))
	assertPermitted(t, false, policy.CanView(principal(t, strangerEmail, identity.RoleAdmin), s))
	assertPermitted(t, false, policy.CanView(principal(t, strangerEmail, identity.RoleUser), s))
}

func TestAuthorizationPolicy_CanManageRoles(t *testing.T) {
	policy := services.NewAuthorizationPolicy()

	assertPermitted(t, true, policy.CanManageRoles(principal(t, strangerEmail, identity.RoleAdmin)))
	assertPermitted(t, false, policy.CanManageRoles(principal(t, strangerEmail, identity.RoleAgent)))
	assertPermitted(t, false, policy.CanManageRoles(principal(t, strangerEmail, identity.RoleUser)))
}

func TestAuthorizationPolicy_CanManageEntry(t *testing.T) {
	policy := services.NewAuthorizationPolicy()
	entry, err := addressbook.NewEntry(senderEmail, "Asha", kernel.MustEmail("asha@example.com"), "4 Park St", createdAt)
	require.NoError(t, err)

	assertPermitted(t, true, policy.CanManageEntry(principal(t, senderEmail, identity.RoleUser), entry))
	assertPermitted(t, false, policy.CanManageEntry(principal(t, strangerEmail, identity.RoleAdmin), entry))
}
