package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/addressbook"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	senderEmail   = kernel.MustEmail("sender@example.com")
	receiverEmail = kernel.MustEmail("receiver@example.com")
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

// storedShipment returns a shipment from sender to receiver moved forward to status.
func storedShipment(t *testing.T, status shipment.Status, documents ...string) *shipment.Shipment {
	t.Helper()
	tn, err := shipment.NewTrackingNumber("CSQWERTY1234")
	require.NoError(t, err)
	parcel, err := shipment.NewParcel(receiverEmail, "two hardcover books", 900, "Medium", "221B Baker St")
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), tn, senderEmail, parcel, 140, nil, documents, fixedNow.Add(-48*time.Hour))
	require.NoError(t, err)
	if status != shipment.Dispatched {
		require.NoError(t, s.TransitionTo(status, senderEmail, fixedNow.Add(-24*time.Hour)))
	}
	s.PullDomainEvents()
	return s
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingNumber(
	ctx context.Context,
	tn shipment.TrackingNumber,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, tn)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) ListByParticipant(ctx context.Context, email kernel.Email) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, email)
	list, _ := args.Get(0).([]*shipment.Shipment)
	return list, args.Error(1)
}

func (m *MockShipmentRepository) UpdateStatus(ctx context.Context, s *shipment.Shipment, expected shipment.Status) error {
	return m.Called(ctx, s, expected).Error(0)
}

func (m *MockShipmentRepository) UpdateDescription(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) AppendDocuments(ctx context.Context, id kernel.UUID, refs []string) error {
	return m.Called(ctx, id, refs).Error(0)
}

func (m *MockShipmentRepository) SetFeedback(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) ExistsByTrackingNumber(ctx context.Context, tn string) (bool, error) {
	args := m.Called(ctx, tn)
	return args.Bool(0), args.Error(1)
}

type MockCommentRepository struct{ mock.Mock }

func (m *MockCommentRepository) Add(ctx context.Context, c *shipment.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommentRepository) ListByShipment(ctx context.Context, id kernel.UUID) ([]*shipment.Comment, error) {
	args := m.Called(ctx, id)
	list, _ := args.Get(0).([]*shipment.Comment)
	return list, args.Error(1)
}

type MockAddressBookRepository struct{ mock.Mock }

func (m *MockAddressBookRepository) Add(ctx context.Context, e *addressbook.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockAddressBookRepository) Update(ctx context.Context, e *addressbook.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockAddressBookRepository) Get(ctx context.Context, id kernel.UUID) (*addressbook.Entry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*addressbook.Entry)
	return e, args.Error(1)
}

func (m *MockAddressBookRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAddressBookRepository) ListByOwner(ctx context.Context, owner kernel.Email) ([]*addressbook.Entry, error) {
	args := m.Called(ctx, owner)
	list, _ := args.Get(0).([]*addressbook.Entry)
	return list, args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, email kernel.Email) (*identity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*identity.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*identity.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*identity.User)
	return list, args.Error(1)
}

// MockUoW implements every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) CommentRepository() ports.CommentRepository {
	return m.Called().Get(0).(ports.CommentRepository)
}

func (m *MockUoW) AddressBookRepository() ports.AddressBookRepository {
	return m.Called().Get(0).(ports.AddressBookRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	return m.Called().Get(0).(commands.ShipmentUoW)
}

type MockCommentUoWFactory struct{ mock.Mock }

func (m *MockCommentUoWFactory) Create() commands.CommentUoW {
	return m.Called().Get(0).(commands.CommentUoW)
}

type MockAddressBookUoWFactory struct{ mock.Mock }

func (m *MockAddressBookUoWFactory) Create() commands.AddressBookUoW {
	return m.Called().Get(0).(commands.AddressBookUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	return m.Called().Get(0).(commands.UserUoW)
}

type MockBlobStore struct{ mock.Mock }

func (m *MockBlobStore) Put(ctx context.Context, namespace string, doc ports.Document) (string, error) {
	args := m.Called(ctx, namespace, doc)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) DeleteNamespace(ctx context.Context, namespace string) error {
	return m.Called(ctx, namespace).Error(0)
}

func (m *MockBlobStore) ListNamespaces(ctx context.Context, olderThan time.Time) ([]string, error) {
	args := m.Called(ctx, olderThan)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Capture(ctx context.Context, req ports.PaymentRequest) (ports.PaymentConfirmation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.PaymentConfirmation), args.Error(1)
}

type MockTrackingCache struct{ mock.Mock }

func (m *MockTrackingCache) Get(ctx context.Context, tn string) (kernel.UUID, bool, error) {
	args := m.Called(ctx, tn)
	return args.Get(0).(kernel.UUID), args.Bool(1), args.Error(2)
}

func (m *MockTrackingCache) Set(ctx context.Context, tn string, id kernel.UUID, ttl time.Duration) error {
	return m.Called(ctx, tn, id, ttl).Error(0)
}

func (m *MockTrackingCache) Delete(ctx context.Context, tn string) error {
	return m.Called(ctx, tn).Error(0)
}
