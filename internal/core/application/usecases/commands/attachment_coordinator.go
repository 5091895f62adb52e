package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

const (
	// DefaultCollaboratorTimeout bounds a single upload or payment capture.
	DefaultCollaboratorTimeout = 30 * time.Second

	// PaymentCurrency is the only currency shipments are charged in.
	PaymentCurrency = "INR"
)

// PaymentInstruction asks for the shipment to be paid before it is stored.
// A nil instruction means payment is skipped.
type PaymentInstruction struct {
	PaymentMethod string
}

// CreationRequest is one shipment to create.
type CreationRequest struct {
	Sender    identity.Principal
	Input     services.ShipmentInput
	Documents []ports.Document
	Payment   *PaymentInstruction

	// FlatAmount replaces the computed price when set.
	FlatAmount *int
}

// CreationResult is the stored shipment plus the uploads that failed along the way.
type CreationResult struct {
	Shipment     *shipment.Shipment
	UploadErrors []error
}

// AttachmentCoordinator runs the creation sequence of a single shipment:
// validate, price, assign a tracking number, upload documents, capture the
// payment and persist.
//
// The steps span collaborators with no shared transaction, so it compensates:
// documents uploaded for a shipment that is never stored are deleted again.
// Whatever that deletion misses is picked up by the orphan document sweep.
type AttachmentCoordinator struct {
	policy   services.ValidationPolicy
	pricing  services.PricingCalculator
	codes    services.TrackingCodeGenerator
	blobs    ports.BlobStore
	payments ports.PaymentGateway
	uow      ShipmentUoWFactory

	uploadTimeout  time.Duration
	paymentTimeout time.Duration
	now            func() time.Time
	logger         *slog.Logger
}

// CoordinatorOption tunes an AttachmentCoordinator.
type CoordinatorOption func(*AttachmentCoordinator)

func WithUploadTimeout(d time.Duration) CoordinatorOption {
	return func(c *AttachmentCoordinator) {
		if d > 0 {
			c.uploadTimeout = d
		}
	}
}

func WithPaymentTimeout(d time.Duration) CoordinatorOption {
	return func(c *AttachmentCoordinator) {
		if d > 0 {
			c.paymentTimeout = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *AttachmentCoordinator) {
		c.now = now
	}
}

func NewAttachmentCoordinator(
	policy services.ValidationPolicy,
	pricing services.PricingCalculator,
	codes services.TrackingCodeGenerator,
	blobs ports.BlobStore,
	payments ports.PaymentGateway,
	uow ShipmentUoWFactory,
	logger *slog.Logger,
	opts ...CoordinatorOption,
) *AttachmentCoordinator {
	c := &AttachmentCoordinator{
		policy:         policy,
		pricing:        pricing,
		codes:          codes,
		blobs:          blobs,
		payments:       payments,
		uow:            uow,
		uploadTimeout:  DefaultCollaboratorTimeout,
		paymentTimeout: DefaultCollaboratorTimeout,
		now:            time.Now,
		logger:         logger.With("component", "attachment_coordinator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create runs the creation sequence.
//
// Validation failures return before anything is uploaded or charged. Upload
// failures are reported in the result and do not stop creation. A payment
// failure stops creation with an errs.PaymentError and nothing is stored.
func (c *AttachmentCoordinator) Create(ctx context.Context, req CreationRequest) (CreationResult, error) {
	if err := req.Sender.Validate(); err != nil {
		return CreationResult{}, err
	}

	parcel, err := c.policy.ValidateShipment(req.Input)
	if err != nil {
		return CreationResult{}, err
	}

	amount := 0
	if req.FlatAmount != nil {
		amount = *req.FlatAmount
	} else if amount, err = c.pricing.Price(parcel.WeightGrams(), parcel.Description()); err != nil {
		return CreationResult{}, err
	}

	trackingNumber, err := c.codes.Generate()
	if err != nil {
		return CreationResult{}, err
	}
	namespace := trackingNumber.String()

	references, uploadErrs := c.Upload(ctx, namespace, req.Documents)

	var payment *shipment.Payment
	if req.Payment != nil {
		payment, err = c.capture(ctx, req.Sender, parcel, amount, *req.Payment)
		if err != nil {
			c.compensate(ctx, namespace, references)
			return CreationResult{}, err
		}
	}

	createdAt := c.now().UTC()
	s, err := shipment.NewShipment(
		kernel.NewUUID(), trackingNumber, req.Sender.Email(), parcel, amount, payment, references, createdAt)
	if err != nil {
		c.compensate(ctx, namespace, references)
		return CreationResult{}, err
	}

	if err = c.persist(ctx, s); err != nil {
		c.compensate(ctx, namespace, references)
		if payment != nil {
			c.logger.ErrorContext(ctx, "Shipment not stored after payment was captured",
				"trackingNumber", namespace, "paymentId", payment.PaymentID(), "error", err)
		}
		return CreationResult{}, err
	}

	return CreationResult{Shipment: s, UploadErrors: uploadErrs}, nil
}

// Upload stores each document under namespace with its own timeout and
// returns the references of the successful uploads in input order.
func (c *AttachmentCoordinator) Upload(
	ctx context.Context,
	namespace string,
	docs []ports.Document,
) ([]string, []error) {
	references := make([]string, 0, len(docs))
	var failures []error

	for _, doc := range docs {
		ref, err := c.uploadOne(ctx, namespace, doc)
		if err != nil {
			c.logger.WarnContext(ctx, "Document upload failed",
				"namespace", namespace, "file", doc.FileName, "error", err)
			failures = append(failures, errs.NewUploadError(doc.FileName, err))
			continue
		}
		references = append(references, ref)
	}
	return references, failures
}

func (c *AttachmentCoordinator) uploadOne(ctx context.Context, namespace string, doc ports.Document) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()
	return c.blobs.Put(ctx, namespace, doc)
}

func (c *AttachmentCoordinator) capture(
	ctx context.Context,
	sender identity.Principal,
	parcel shipment.Parcel,
	amount int,
	instruction PaymentInstruction,
) (*shipment.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, c.paymentTimeout)
	defer cancel()

	confirmation, err := c.payments.Capture(ctx, ports.PaymentRequest{
		AmountINR:     amount,
		Currency:      PaymentCurrency,
		Description:   parcel.Description(),
		PayerEmail:    sender.Email().String(),
		PaymentMethod: instruction.PaymentMethod,
	})
	if err != nil {
		var paymentErr *errs.PaymentError
		if errors.As(err, &paymentErr) {
			return nil, err
		}
		return nil, errs.NewPaymentErrorWithCause("capture failed", err)
	}

	return shipment.NewPayment(confirmation.PaymentID, confirmation.OrderID, sender.Email(), c.now())
}

func (c *AttachmentCoordinator) persist(ctx context.Context, s *shipment.Shipment) error {
	uow := c.uow.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// compensate deletes documents uploaded for a shipment that will not exist.
// It runs detached from ctx, which may already be cancelled.
//
// A namespace that a stored shipment owns is left alone: the tracking number
// collided with that shipment and the objects are its documents too. When
// ownership cannot be checked the namespace is also left for the sweep, which
// deletes only namespaces no shipment owns.
func (c *AttachmentCoordinator) compensate(ctx context.Context, namespace string, references []string) {
	if len(references) == 0 {
		return
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.uploadTimeout)
	defer cancel()

	owned, err := c.uow.Create().ShipmentRepository().ExistsByTrackingNumber(cleanupCtx, namespace)
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "Orphaned documents left for the sweep",
			"namespace", namespace, "documents", len(references), "error", err)
		return
	case owned:
		c.logger.WarnContext(ctx, "Tracking number belongs to a stored shipment, documents kept",
			"namespace", namespace, "documents", len(references))
		return
	}

	if err := c.blobs.DeleteNamespace(cleanupCtx, namespace); err != nil {
		c.logger.WarnContext(ctx, "Orphaned documents left for the sweep",
			"namespace", namespace, "documents", len(references), "error", err)
	}
}
