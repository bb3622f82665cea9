// Package jobs provides scheduled background tasks for the storefront order
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. BookingReconciliationJob - Runs every five minutes to detect orders whose
// courier booking succeeded externally but whose tracking number was never
// saved locally.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(db, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reconciliation job is a detector only: it logs affected orders and
// never mutates state, because fixing the partial-failure window needs a
// human decision per order.
package jobs
