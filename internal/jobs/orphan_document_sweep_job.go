package jobs

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOrphanSweepSchedule runs the sweep every fifteen minutes.
const DefaultOrphanSweepSchedule = "0 */15 * * * *"

// SweepHandler runs one orphan document sweep.
type SweepHandler interface {
	Handle(ctx context.Context, cmd commands.SweepOrphanDocumentsCommand) (int, error)
}

// OrphanDocumentSweepJob periodically removes uploaded documents that belong
// to no shipment. A run that is still going when the next one is due makes
// the next one skip.
type OrphanDocumentSweepJob struct {
	handler  SweepHandler
	schedule string
	grace    time.Duration
	timeout  time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrphanDocumentSweepJob creates the job. An empty schedule or a
// non-positive grace selects the defaults.
func NewOrphanDocumentSweepJob(
	handler SweepHandler,
	schedule string,
	grace time.Duration,
	logger *slog.Logger,
) *OrphanDocumentSweepJob {
	if schedule == "" {
		schedule = DefaultOrphanSweepSchedule
	}
	if grace <= 0 {
		grace = commands.DefaultOrphanGrace
	}
	return &OrphanDocumentSweepJob{
		handler:  handler,
		schedule: schedule,
		grace:    grace,
		timeout:  10 * time.Minute,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "orphan_document_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *OrphanDocumentSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		j.RunOnce(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Orphan document sweep job started",
		"schedule", j.schedule, "grace", j.grace.String())
	return nil
}

// RunOnce sweeps namespaces last written more than the grace period ago.
// Failures are logged; the next run tries again.
func (j *OrphanDocumentSweepJob) RunOnce(ctx context.Context) int {
	removed, err := j.handler.Handle(ctx, commands.NewSweepOrphanDocumentsCommand(j.now().Add(-j.grace)))
	if err != nil {
		j.logger.ErrorContext(ctx, "Orphan document sweep failed", "removed", removed, "error", err)
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Orphan document sweep finished", "removed", removed)
	}
	return removed
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *OrphanDocumentSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Orphan document sweep job stopped")
}
