package jobs

import (
	"greencommute-backend/internal/config"
	"greencommute-backend/internal/logger"
	"greencommute-backend/internal/repository/postgres"
	"greencommute-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *postgres.Store
	emailSvc service.EmailService
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		emailSvc: emailSvc,
		config:   cfg,
	}
}

// Config returns the application configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution from the cronjob binary)
func (jr *JobRunner) RunAll() {
	jr.SendPointsDigest()
	jr.SendMembershipReminders()
}
