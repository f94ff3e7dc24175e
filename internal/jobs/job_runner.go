package jobs

import (
	"library-lending-backend/internal/config"
	"library-lending-backend/internal/logger"
	"library-lending-backend/internal/service"
	"library-lending-backend/internal/utils"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	clock    utils.Clock
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Lending service.LendingService
	Rules   service.RulesService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, clock utils.Clock, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		clock:    clock,
		config:   cfg,
	}
}

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

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ReportOverdueLoans()
}
