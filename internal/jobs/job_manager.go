package jobs

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	backlogReportJob *BacklogReportJob
	staleDeliveryJob *StaleDeliveryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(db *gorm.DB, logger *slog.Logger) *JobManager {
	return &JobManager{
		backlogReportJob: NewBacklogReportJob(db, logger),
		staleDeliveryJob: NewStaleDeliveryJob(db, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.backlogReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start backlog report job: %w", err)
	}

	if err := jm.staleDeliveryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.backlogReportJob.Stop()
		return fmt.Errorf("failed to start stale delivery job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleDeliveryJob.Stop()
	jm.backlogReportJob.Stop()
}
