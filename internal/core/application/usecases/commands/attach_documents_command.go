package commands

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

var ErrDocumentsAreRequired = errors.New("at least one document is required")

// AttachDocumentsCommand uploads more documents to an existing shipment.
type AttachDocumentsCommand struct {
	shipmentTarget
	documents []ports.Document
}

func NewAttachDocumentsCommand(
	principal identity.Principal,
	shipmentID kernel.UUID,
	documents []ports.Document,
) (AttachDocumentsCommand, error) {
	target, err := newShipmentTarget(principal, shipmentID)
	var docsErr error
	if len(documents) == 0 {
		docsErr = ErrDocumentsAreRequired
	}
	if err = errors.Join(err, docsErr); err != nil {
		return AttachDocumentsCommand{}, err
	}
	return AttachDocumentsCommand{shipmentTarget: target, documents: documents}, nil
}

func (c AttachDocumentsCommand) Documents() []ports.Document { return c.documents }

// AttachDocumentsResult lists the stored references and the failed uploads.
type AttachDocumentsResult struct {
	References   []string
	UploadErrors []error
}

// AttachDocumentsCommandHandler lets the sender add documents while the
// shipment can still be edited. References are appended without a
// conditional write; concurrent appends are all kept in some order.
type AttachDocumentsCommandHandler struct {
	coordinator *AttachmentCoordinator
	uowFactory  ShipmentUoWFactory
	authz       services.AuthorizationPolicy
}

func NewAttachDocumentsCommandHandler(
	coordinator *AttachmentCoordinator,
	uowFactory ShipmentUoWFactory,
	authz services.AuthorizationPolicy,
) AttachDocumentsCommandHandler {
	return AttachDocumentsCommandHandler{coordinator: coordinator, uowFactory: uowFactory, authz: authz}
}

// Handle fails only when authorization fails or no document could be
// uploaded; partial upload failures are listed in the result.
func (h AttachDocumentsCommandHandler) Handle(
	ctx context.Context,
	cmd AttachDocumentsCommand,
) (AttachDocumentsResult, error) {
	if err := cmd.Validate(); err != nil {
		return AttachDocumentsResult{}, err
	}

	uow := h.uowFactory.Create()
	repo := uow.ShipmentRepository()

	s, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return AttachDocumentsResult{}, err
	}
	if err = h.authz.CanEditOrCancel(cmd.Principal(), s, services.ActionAttach); err != nil {
		return AttachDocumentsResult{}, err
	}

	refs, uploadErrs := h.coordinator.Upload(ctx, s.TrackingNumber().String(), cmd.Documents())
	if len(refs) == 0 {
		return AttachDocumentsResult{}, errors.Join(uploadErrs...)
	}

	if err = uow.Begin(ctx); err != nil {
		return AttachDocumentsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().AppendDocuments(ctx, s.ID(), refs); err != nil {
		return AttachDocumentsResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AttachDocumentsResult{}, err
	}

	return AttachDocumentsResult{References: refs, UploadErrors: uploadErrs}, nil
}
