package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "library-lending-backend/internal/api/http"
	"library-lending-backend/internal/config"
	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/lock"
	"library-lending-backend/internal/logger"
	"library-lending-backend/internal/repository"
	"library-lending-backend/internal/repository/memory"
	"library-lending-backend/internal/repository/postgres"
	"library-lending-backend/internal/service"
	"library-lending-backend/internal/utils"
)

// repositories is whichever store backs this process
type repositories struct {
	books      repository.BookRepository
	members    repository.MemberRepository
	librarians repository.LibrarianRepository
	libraries  repository.LibraryRepository
	loans      repository.LoanRepository
	rules      repository.RulesRepository
}

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Library Lending Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())

	initialRules, err := cfg.InitialRules()
	if err != nil {
		log.Fatalf("Invalid lending configuration: %v", err)
	}

	clock := utils.NewSystemClock()
	repos, closeStore, err := openStore(context.Background(), cfg, initialRules, clock)
	if err != nil {
		logger.Error("Failed to open store", "driver", cfg.Database.Driver, "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	// Initialize Services
	ids := utils.NewUUIDGenerator()
	locks := lock.NewKeyed()
	services := httpapi.Services{
		Lending: service.NewLendingService(
			repos.loans,
			repos.books,
			repos.members,
			repos.rules,
			clock,
			ids,
			locks,
		),
		Rules:      service.NewRulesService(repos.rules),
		Books:      service.NewBookService(repos.books, clock, locks),
		Members:    service.NewMemberService(repos.members, clock, ids),
		Librarians: service.NewLibrarianService(repos.librarians, repos.libraries, clock, ids),
		Libraries:  service.NewLibraryService(repos.libraries, clock, ids),
	}

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}

func openStore(ctx context.Context, cfg *config.Config, initialRules domain.BorrowingRules, clock utils.Clock) (*repositories, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Info("Using in-memory store")
		store := memory.NewStore(initialRules)
		return &repositories{
			books:      store.BookRepository,
			members:    store.MemberRepository,
			librarians: store.LibrarianRepository,
			libraries:  store.LibraryRepository,
			loans:      store.LoanRepository,
			rules:      store.RulesRepository,
		}, func() {}, nil
	}

	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database connection established")

	if err := postgres.EnsureSchema(ctx, db, initialRules); err != nil {
		db.Close()
		return nil, nil, err
	}

	store := postgres.NewStore(db, clock)
	return &repositories{
		books:      store.BookRepository,
		members:    store.MemberRepository,
		librarians: store.LibrarianRepository,
		libraries:  store.LibraryRepository,
		loans:      store.LoanRepository,
		rules:      store.RulesRepository,
	}, func() { db.Close() }, nil
}
