package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/guard"
)

var ErrSweepOrphanDocumentsCommandIsNotConstructed = errors.New(
	"SweepOrphanDocumentsCommand must be created via NewSweepOrphanDocumentsCommand constructor",
)

// DefaultOrphanGrace is how old a document namespace must be before the sweep
// may treat it as abandoned. It must exceed the longest creation sequence.
const DefaultOrphanGrace = time.Hour

type SweepOrphanDocumentsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Time

	guard guard.ConstructorGuard
}

// NewSweepOrphanDocumentsCommand sweeps namespaces last written before olderThan.
func NewSweepOrphanDocumentsCommand(olderThan time.Time) SweepOrphanDocumentsCommand {
	return SweepOrphanDocumentsCommand{olderThan: olderThan, guard: guard.NewConstructorGuard()}
}

func (c SweepOrphanDocumentsCommand) Validate() error {
	return c.guard.Validate(ErrSweepOrphanDocumentsCommandIsNotConstructed)
}

func (c SweepOrphanDocumentsCommand) OlderThan() time.Time { return c.olderThan }

// SweepOrphanDocumentsCommandHandler deletes document namespaces that belong
// to no shipment: uploads of creations that failed after uploading and whose
// immediate cleanup also failed, and leftovers of cancelled shipments.
type SweepOrphanDocumentsCommandHandler struct {
	uowFactory ShipmentUoWFactory
	blobs      ports.BlobStore
	logger     *slog.Logger
}

func NewSweepOrphanDocumentsCommandHandler(
	uowFactory ShipmentUoWFactory,
	blobs ports.BlobStore,
	logger *slog.Logger,
) SweepOrphanDocumentsCommandHandler {
	return SweepOrphanDocumentsCommandHandler{
		uowFactory: uowFactory,
		blobs:      blobs,
		logger:     logger.With("component", "orphan_sweep"),
	}
}

// Handle returns the number of namespaces removed. It continues past
// individual failures and reports them joined.
func (h SweepOrphanDocumentsCommandHandler) Handle(ctx context.Context, cmd SweepOrphanDocumentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	namespaces, err := h.blobs.ListNamespaces(ctx, cmd.OlderThan())
	if err != nil {
		return 0, err
	}

	repo := h.uowFactory.Create().ShipmentRepository()

	removed := 0
	var failures []error
	for _, ns := range namespaces {
		exists, existsErr := repo.ExistsByTrackingNumber(ctx, ns)
		if existsErr != nil {
			failures = append(failures, existsErr)
			continue
		}
		if exists {
			continue
		}
		if delErr := h.blobs.DeleteNamespace(ctx, ns); delErr != nil {
			failures = append(failures, delErr)
			continue
		}
		h.logger.InfoContext(ctx, "Removed orphaned documents", "namespace", ns)
		removed++
	}

	return removed, errors.Join(failures...)
}
