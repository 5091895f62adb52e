package services_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

var (
	senderEmail   = kernel.MustEmail("sender@example.com")
	receiverEmail = kernel.MustEmail("receiver@example.com")
	strangerEmail = kernel.MustEmail("stranger@example.com")
	createdAt     = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
)

func principal(t *testing.T, email kernel.Email, role identity.Role) identity.Principal {
	t.Helper()
	p, err := identity.NewPrincipal(email, "", role)
	require.NoError(t, err)
	return p
}

// shipmentIn returns a shipment from sender to receiver walked forward to status.
func shipmentIn(t *testing.T, status shipment.Status) *shipment.Shipment {
	t.Helper()
	tn, err := shipment.NewTrackingNumber("CSAAAAABBBBB")
	require.NoError(t, err)
	parcel, err := shipment.NewParcel(receiverEmail, "books", 900, "Medium", "1 Ring Rd")
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), tn, senderEmail, parcel, 140, nil, nil, createdAt)
	require.NoError(t, err)
	if status != shipment.Dispatched {
		require.NoError(t, s.TransitionTo(status, senderEmail, createdAt.Add(time.Hour)))
	}
	s.PullDomainEvents()
	return s
}
