package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"library-lending-backend/internal/config"
	"library-lending-backend/internal/jobs"
	"library-lending-backend/internal/lock"
	"library-lending-backend/internal/logger"
	"library-lending-backend/internal/repository/postgres"
	"library-lending-backend/internal/scheduler"
	"library-lending-backend/internal/service"
	"library-lending-backend/internal/utils"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'report-overdue-loans', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Library Lending Cronjob Runner...", "log_level", cfg.Log.Level)

	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("Cronjob runner needs a shared store, got driver %q", cfg.Database.Driver)
	}

	initialRules, err := cfg.InitialRules()
	if err != nil {
		log.Fatalf("Invalid lending configuration: %v", err)
	}

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if err := postgres.EnsureSchema(context.Background(), db, initialRules); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	// Initialize Repositories
	clock := utils.NewSystemClock()
	store := postgres.NewStore(db, clock)

	// Initialize Services
	jobServices := &jobs.Services{
		Lending: service.NewLendingService(
			store.LoanRepository,
			store.BookRepository,
			store.MemberRepository,
			store.RulesRepository,
			clock,
			utils.NewUUIDGenerator(),
			lock.NewKeyed(),
		),
		Rules: service.NewRulesService(store.RulesRepository),
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobServices, clock, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to register jobs: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "report-overdue-loans":
		jobRunner.ReportOverdueLoans()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - report-overdue-loans\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
