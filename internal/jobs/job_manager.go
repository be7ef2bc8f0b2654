// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3. The only job today is AutoRouteJob, which
// drives automatic route creation for branches with autoDispatch enabled.
package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autoRouteJob *AutoRouteJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	autoCreateHandler *commands.AutoCreateRoutesCommandHandler,
	branches ports.BranchRepository,
	autoRouteSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autoRouteJob: NewAutoRouteJob(autoCreateHandler, branches, autoRouteSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.autoRouteJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-routing job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoRouteJob.Stop()
}
