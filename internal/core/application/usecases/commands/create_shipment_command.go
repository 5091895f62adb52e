package commands

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrPaymentMethodIsRequired = errors.New("payment method is required unless payment is skipped")
)

// CreateShipmentCommand represents a sender's request to create one shipment.
//
// Field contents are checked by the validation policy when the command is
// handled, so that every bad field is reported together. The constructor only
// checks what the caller must always supply.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(principal, input, nil, docs, "pm_card_visa", false)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	principal     identity.Principal
	input         services.ShipmentInput
	addressBookID *kernel.UUID
	documents     []ports.Document
	paymentMethod string
	skipPayment   bool

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates the command. When addressBookID is set, the
// receiver and delivery address of input are replaced by the entry's.
func NewCreateShipmentCommand(
	principal identity.Principal,
	input services.ShipmentInput,
	addressBookID *kernel.UUID,
	documents []ports.Document,
	paymentMethod string,
	skipPayment bool,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		input:       input,
		documents:   documents,
		skipPayment: skipPayment,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setAddressBookID(addressBookID),
		cmd.setPaymentMethod(paymentMethod, skipPayment),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) Principal() identity.Principal { return c.principal }
func (c CreateShipmentCommand) Input() services.ShipmentInput { return c.input }
func (c CreateShipmentCommand) AddressBookID() *kernel.UUID   { return c.addressBookID }
func (c CreateShipmentCommand) Documents() []ports.Document   { return c.documents }
func (c CreateShipmentCommand) PaymentMethod() string         { return c.paymentMethod }
func (c CreateShipmentCommand) SkipPayment() bool             { return c.skipPayment }

func (c *CreateShipmentCommand) setPrincipal(p identity.Principal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.principal = p
	return nil
}

func (c *CreateShipmentCommand) setAddressBookID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	c.addressBookID = id
	return nil
}

func (c *CreateShipmentCommand) setPaymentMethod(method string, skip bool) error {
	method = strings.TrimSpace(method)
	if !skip && method == "" {
		return ErrPaymentMethodIsRequired
	}
	if !skip {
		c.paymentMethod = method
	}
	return nil
}
