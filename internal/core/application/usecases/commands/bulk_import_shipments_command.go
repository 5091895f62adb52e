package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrBulkImportShipmentsCommandIsNotConstructed = errors.New(
		"BulkImportShipmentsCommand must be created via NewBulkImportShipmentsCommand constructor",
	)
	ErrBulkContentIsRequired = errors.New("bulk content is required")
)

// BulkImportShipmentsCommand carries a CSV document whose rows become
// shipments sent by the principal.
type BulkImportShipmentsCommand struct { //nolint:recvcheck //using for validation
	principal identity.Principal
	content   []byte

	guard guard.ConstructorGuard
}

func NewBulkImportShipmentsCommand(principal identity.Principal, content []byte) (BulkImportShipmentsCommand, error) {
	var contentErr error
	if len(content) == 0 {
		contentErr = ErrBulkContentIsRequired
	}
	if err := errors.Join(principal.Validate(), contentErr); err != nil {
		return BulkImportShipmentsCommand{}, err
	}
	return BulkImportShipmentsCommand{
		principal: principal,
		content:   content,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c BulkImportShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrBulkImportShipmentsCommandIsNotConstructed)
}

func (c BulkImportShipmentsCommand) Principal() identity.Principal { return c.principal }
func (c BulkImportShipmentsCommand) Content() []byte               { return c.content }
