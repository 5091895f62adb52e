package ports

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/shipment"
)

// Document is one uploaded file.
type Document struct {
	FileName    string
	ContentType string
	Content     []byte
}

// BlobStore keeps uploaded documents grouped by namespace (the tracking number).
type BlobStore interface {
	// Put stores the document and returns a URL it can be fetched from.
	Put(ctx context.Context, namespace string, doc Document) (string, error)

	// DeleteNamespace removes every object of the namespace. Deleting an
	// empty or unknown namespace is not an error.
	DeleteNamespace(ctx context.Context, namespace string) error

	// ListNamespaces returns namespaces whose newest object is older than olderThan.
	ListNamespaces(ctx context.Context, olderThan time.Time) ([]string, error)
}

// PaymentRequest asks the payment collaborator to capture an amount.
// PaymentMethod is the opaque token produced by the client side payment widget.
type PaymentRequest struct {
	AmountINR     int
	Currency      string
	Description   string
	PayerEmail    string
	PaymentMethod string
}

// PaymentConfirmation is returned on successful capture.
type PaymentConfirmation struct {
	PaymentID string
	OrderID   string
}

type PaymentGateway interface {
	// Capture returns errs.PaymentError when the payment failed or was cancelled.
	Capture(ctx context.Context, req PaymentRequest) (PaymentConfirmation, error)
}

// EventPublisher hands domain events to the notification collaborator.
type EventPublisher interface {
	Publish(ctx context.Context, events ...shipment.DomainEvent) error
}
