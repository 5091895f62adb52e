package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"parceltrack/internal/core/domain/services"

	"golang.org/x/sync/errgroup"
)

// DefaultBulkWorkers is the number of rows created concurrently.
const DefaultBulkWorkers = 4

// BulkImportResult reports a best-effort batch. Partial success is a normal
// outcome, not an error.
type BulkImportResult struct {
	SuccessCount    int
	FailedCount     int
	Errors          []string
	TrackingNumbers []string
}

// BulkImportShipmentsCommandHandler creates one shipment per CSV row.
//
// Every row runs the single creation path on its own with payment skipped and
// the flat bulk amount. A failed row is recorded as "row N: reason" and never
// stops the others. Rows run concurrently; the result lists them in row order
// and is returned once all rows are done.
type BulkImportShipmentsCommandHandler struct {
	coordinator *AttachmentCoordinator
	pricing     services.PricingCalculator
	workers     int
	logger      *slog.Logger
}

func NewBulkImportShipmentsCommandHandler(
	coordinator *AttachmentCoordinator,
	pricing services.PricingCalculator,
	workers int,
	logger *slog.Logger,
) BulkImportShipmentsCommandHandler {
	if workers <= 0 {
		workers = DefaultBulkWorkers
	}
	return BulkImportShipmentsCommandHandler{
		coordinator: coordinator,
		pricing:     pricing,
		workers:     workers,
		logger:      logger.With("component", "bulk_import"),
	}
}

// Handle fails as a whole only when the content is not readable CSV.
func (h BulkImportShipmentsCommandHandler) Handle(
	ctx context.Context,
	cmd BulkImportShipmentsCommand,
) (BulkImportResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkImportResult{}, err
	}

	rows, err := ParseBulkRows(bytes.NewReader(cmd.Content()))
	if err != nil {
		return BulkImportResult{}, err
	}

	type outcome struct {
		trackingNumber string
		err            error
	}
	outcomes := make([]outcome, len(rows))
	flat := h.pricing.BulkPrice()

	var g errgroup.Group
	g.SetLimit(h.workers)
	for i, row := range rows {
		g.Go(func() error {
			res, createErr := h.coordinator.Create(ctx, CreationRequest{
				Sender:     cmd.Principal(),
				Input:      row.Input,
				FlatAmount: &flat,
			})
			if createErr != nil {
				outcomes[i] = outcome{err: createErr}
				return nil
			}
			outcomes[i] = outcome{trackingNumber: res.Shipment.TrackingNumber().String()}
			return nil
		})
	}
	_ = g.Wait()

	result := BulkImportResult{Errors: []string{}, TrackingNumbers: []string{}}
	for i, o := range outcomes {
		if o.err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rows[i].Number, o.err))
			continue
		}
		result.SuccessCount++
		result.TrackingNumbers = append(result.TrackingNumbers, o.trackingNumber)
	}

	h.logger.InfoContext(ctx, "Bulk import finished",
		"sender", cmd.Principal().Email().String(),
		"rows", len(rows),
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount)

	return result, nil
}
