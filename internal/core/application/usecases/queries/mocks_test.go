package queries_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	senderEmail   = kernel.MustEmail("sender@example.com")
	receiverEmail = kernel.MustEmail("receiver@example.com")
	agentEmail    = kernel.MustEmail("agent@example.com")
	strangerEmail = kernel.MustEmail("stranger@example.com")
	fixedNow      = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func principal(t *testing.T, email kernel.Email, role identity.Role) identity.Principal {
	t.Helper()
	p, err := identity.NewPrincipal(email, "", role)
	require.NoError(t, err)
	return p
}

func newShipment(t *testing.T, code string, status shipment.Status) *shipment.Shipment {
	t.Helper()
	tn, err := shipment.NewTrackingNumber(code)
	require.NoError(t, err)
	parcel, err := shipment.NewParcel(receiverEmail, "two hardcover books", 900, "Medium", "221B Baker St")
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), tn, senderEmail, parcel, 140, nil, nil, fixedNow)
	require.NoError(t, err)
	if status != shipment.Dispatched {
		require.NoError(t, s.TransitionTo(status, receiverEmail, fixedNow.Add(time.Hour)))
	}
	s.PullDomainEvents()
	return s
}

type MockShipmentReader struct{ mock.Mock }

func (m *MockShipmentReader) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentReader) GetByTrackingNumber(
	ctx context.Context,
	tn shipment.TrackingNumber,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, tn)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

type MockTrackingCache struct{ mock.Mock }

func (m *MockTrackingCache) Get(ctx context.Context, trackingNumber string) (kernel.UUID, bool, error) {
	args := m.Called(ctx, trackingNumber)
	id, _ := args.Get(0).(kernel.UUID)
	return id, args.Bool(1), args.Error(2)
}

func (m *MockTrackingCache) Set(ctx context.Context, trackingNumber string, id kernel.UUID, ttl time.Duration) error {
	return m.Called(ctx, trackingNumber, id, ttl).Error(0)
}

func (m *MockTrackingCache) Delete(ctx context.Context, trackingNumber string) error {
	return m.Called(ctx, trackingNumber).Error(0)
}
