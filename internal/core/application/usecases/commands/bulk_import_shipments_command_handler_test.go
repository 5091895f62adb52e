package commands_test

import (
	"strings"
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const bulkCSV = `receiver,description,weight,packageSize,deliveryAddress
a@example.com,books,100,Small,1 Main St
b@example.com,lamp,2500,Large,2 Main St
c@example.com,rug,,Large,3 Main St
d@example.com,,40,Small,4 Main St

e@example.com,"chair, folding",7000,Large,5 Main St
`

// permissiveUoW accepts any number of concurrent creations.
func permissiveUoW(repo *MockShipmentRepository) *MockShipmentUoWFactory {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("ShipmentRepository").Return(repo)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow)
	return factory
}

func newBulkHandler(factory commands.ShipmentUoWFactory) commands.BulkImportShipmentsCommandHandler {
	policy := services.NewValidationPolicy()
	pricing := services.NewPricingCalculator(policy)
	coordinator := newCoordinator(new(MockBlobStore), new(MockPaymentGateway), factory)
	return commands.NewBulkImportShipmentsCommandHandler(coordinator, pricing, 3, discardLogger())
}

func TestBulkImportShipmentsCommandHandler_Handle_PartialSuccess(t *testing.T) {
	ctx := t.Context()
	sender := principal(t, senderEmail, identity.RoleUser)

	repo := new(MockShipmentRepository)
	repo.On("Add", mock.Anything, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return s.Amount() == 50 && s.Payment() == nil && s.Status() == shipment.Dispatched
	})).Return(nil).Times(4)

	cmd, err := commands.NewBulkImportShipmentsCommand(sender, []byte(bulkCSV))
	require.NoError(t, err)

	res, err := newBulkHandler(permissiveUoW(repo)).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 4, res.SuccessCount)
	assert.Equal(t, 1, res.FailedCount)
	require.Len(t, res.Errors, 1)
	assert.True(t, strings.HasPrefix(res.Errors[0], "row 3: "), res.Errors[0])
	assert.Contains(t, res.Errors[0], "weight")
	assert.Len(t, res.TrackingNumbers, 4)
	repo.AssertExpectations(t)
}

func TestBulkImportShipmentsCommandHandler_Handle_RepositoryFailureIsPerRow(t *testing.T) {
	ctx := t.Context()
	sender := principal(t, senderEmail, identity.RoleUser)

	repo := new(MockShipmentRepository)
	repo.On("Add", mock.Anything, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return s.Receiver().String() == "b@example.com"
	})).Return(assert.AnError)
	repo.On("Add", mock.Anything, mock.Anything).Return(nil)

	csv := "Receiver,Weight,PackageSize,DeliveryAddress\n" +
		"a@example.com,10,Small,1 Main St\n" +
		"b@example.com,10,Small,2 Main St\n"
	cmd, err := commands.NewBulkImportShipmentsCommand(sender, []byte(csv))
	require.NoError(t, err)

	res, err := newBulkHandler(permissiveUoW(repo)).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 1, res.FailedCount)
	assert.Equal(t, []string{"row 2: " + assert.AnError.Error()}, res.Errors)
}

func TestBulkImportShipmentsCommandHandler_Handle_UnreadableInput(t *testing.T) {
	ctx := t.Context()
	sender := principal(t, senderEmail, identity.RoleUser)
	factory := new(MockShipmentUoWFactory)

	cmd, err := commands.NewBulkImportShipmentsCommand(sender, []byte("\"receiver,weight\na,1\n"))
	require.NoError(t, err)

	_, err = newBulkHandler(factory).Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBulkInputUnreadable)
	factory.AssertNotCalled(t, "Create")
}

func TestBulkImportShipmentsCommandHandler_Handle_HeaderOnly(t *testing.T) {
	ctx := t.Context()
	sender := principal(t, senderEmail, identity.RoleUser)

	cmd, err := commands.NewBulkImportShipmentsCommand(sender, []byte("receiver,weight\n"))
	require.NoError(t, err)

	res, err := newBulkHandler(new(MockShipmentUoWFactory)).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, res.SuccessCount)
	assert.Zero(t, res.FailedCount)
	assert.Empty(t, res.Errors)
}

func TestNewBulkImportShipmentsCommand(t *testing.T) {
	sender := principal(t, senderEmail, identity.RoleUser)

	_, err := commands.NewBulkImportShipmentsCommand(sender, nil)
	require.ErrorIs(t, err, commands.ErrBulkContentIsRequired)

	_, err = commands.NewBulkImportShipmentsCommand(identity.Principal{}, []byte("x"))
	require.ErrorIs(t, err, identity.ErrPrincipalIsNotConstructed)

	var zero commands.BulkImportShipmentsCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrBulkImportShipmentsCommandIsNotConstructed)
}

func TestParseBulkRows(t *testing.T) {
	rows, err := commands.ParseBulkRows(strings.NewReader("\ufeffRECEIVER , weight,notes\nx@example.com,5\n,,\ny@example.com,7,fragile\n"))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, "x@example.com", rows[0].Input.Receiver)
	assert.Equal(t, "5", rows[0].Input.Weight)
	assert.Empty(t, rows[0].Input.PackageSize)
	assert.Equal(t, 2, rows[1].Number)
	assert.Equal(t, "y@example.com", rows[1].Input.Receiver)

	_, err = commands.ParseBulkRows(strings.NewReader(""))
	require.ErrorIs(t, err, commands.ErrBulkInputUnreadable)
}
