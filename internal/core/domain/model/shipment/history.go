package shipment

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
)

// HistoryEntry records one status a shipment reached, when, and who moved it there.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	updatedBy kernel.Email
}

func NewHistoryEntry(status Status, timestamp time.Time, updatedBy kernel.Email) (HistoryEntry, error) {
	if err := errors.Join(status.Validate(), updatedBy.Validate()); err != nil {
		return HistoryEntry{}, err
	}
	return HistoryEntry{status: status, timestamp: timestamp.UTC(), updatedBy: updatedBy}, nil
}

func (h HistoryEntry) Status() Status          { return h.status }
func (h HistoryEntry) Timestamp() time.Time    { return h.timestamp }
func (h HistoryEntry) UpdatedBy() kernel.Email { return h.updatedBy }
