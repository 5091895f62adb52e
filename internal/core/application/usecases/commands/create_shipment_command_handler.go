package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// CreateShipmentCommandHandler resolves an optional address book entry and
// hands the request to the AttachmentCoordinator.
type CreateShipmentCommandHandler struct {
	coordinator *AttachmentCoordinator
	addressBook AddressBookUoWFactory
	authz       services.AuthorizationPolicy
}

func NewCreateShipmentCommandHandler(
	coordinator *AttachmentCoordinator,
	addressBook AddressBookUoWFactory,
	authz services.AuthorizationPolicy,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		coordinator: coordinator,
		addressBook: addressBook,
		authz:       authz,
	}
}

// Handle returns the stored shipment. Upload failures are listed in the
// result; every other failure means no shipment was stored.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (CreationResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreationResult{}, err
	}

	input := cmd.Input()
	if id := cmd.AddressBookID(); id != nil {
		entry, err := h.addressBook.Create().AddressBookRepository().Get(ctx, *id)
		if err != nil {
			return CreationResult{}, err
		}
		if err = h.authz.CanManageEntry(cmd.Principal(), entry); err != nil {
			return CreationResult{}, err
		}
		input.Receiver = entry.Email().String()
		input.DeliveryAddress = entry.Address()
	}

	req := CreationRequest{
		Sender:    cmd.Principal(),
		Input:     input,
		Documents: cmd.Documents(),
	}
	if !cmd.SkipPayment() {
		req.Payment = &PaymentInstruction{PaymentMethod: cmd.PaymentMethod()}
	}

	return h.coordinator.Create(ctx, req)
}
