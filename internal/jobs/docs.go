// Package jobs provides scheduled background tasks for the bib delivery
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operational monitoring.
//
// # Available Jobs
//
// 1. BacklogReportJob - Runs every minute to report orders still waiting for courier assignment
// 2. StaleDeliveryJob - Runs every five minutes to flag orders that have been out for delivery too long
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager
//	jobManager := jobs.NewJobManager(db, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs are observational: they read order state, log their findings and
// never mutate orders. Scan failures are logged and retried on the next tick.
// Failed job starts will stop any already running jobs.
package jobs
