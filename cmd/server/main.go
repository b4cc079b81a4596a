package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JasVita/wealthpilot-portal/internal/api"
	"github.com/JasVita/wealthpilot-portal/internal/config"
	"github.com/JasVita/wealthpilot-portal/internal/database"
	"github.com/JasVita/wealthpilot-portal/internal/repository"
	"github.com/JasVita/wealthpilot-portal/internal/scheduler"
	"github.com/JasVita/wealthpilot-portal/internal/service"
	"github.com/JasVita/wealthpilot-portal/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dialect, err := database.ParseDialect(cfg.Database.Driver)
	if err != nil {
		log.Fatalf("Invalid database configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(dialect, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to %s database (version %s)", dialect, version.Version)

	if err := database.Migrate(context.Background(), db, dialect); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	statementRepo := repository.NewStatementRepository(db, dialect)
	clientRepo := repository.NewClientRepository(db, dialect)
	snapshotRepo := repository.NewSnapshotRepository(db, dialect)

	// Create services
	systemService := service.NewSystemService(db, dialect)
	resolver := service.NewPeriodResolver(statementRepo, cfg.Rollup.FallbackMonths)
	assetService := service.NewAssetService(resolver)
	snapshotService := service.NewSnapshotService(clientRepo, snapshotRepo, assetService, cfg.Snapshot.Concurrency)

	var snapshots *scheduler.Scheduler
	if cfg.Snapshot.Enabled() {
		snapshots, err = scheduler.New("snapshot", cfg.Snapshot.Schedule, snapshotService, time.Hour)
		if err != nil {
			log.Fatalf("Failed to configure snapshot job: %v", err)
		}
		snapshots.Start()
	}

	// Create router
	router := api.NewRouter(systemService, assetService, snapshotService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if snapshots != nil {
		if err := snapshots.Stop(ctx); err != nil {
			log.Printf("Snapshot job did not stop cleanly: %v", err)
		}
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
