// Package jobs provides scheduled background tasks for the shipment service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// OrphanDocumentSweepJob removes uploaded documents whose shipment was never
// stored or has been cancelled. Creation deletes such uploads right away; the
// sweep collects what that cleanup missed.
//
// # Usage
//
//	sweep := jobs.NewOrphanDocumentSweepJob(sweepHandler, cfg.OrphanSweepSchedule, cfg.OrphanGrace, logger)
//	jobManager := jobs.NewJobManager(sweep)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next schedule. Failed job starts
// stop any jobs already running.
package jobs
