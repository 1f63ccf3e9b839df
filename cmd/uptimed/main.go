package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uptime-report-backend/config"
	"uptime-report-backend/internal/api"
	"uptime-report-backend/internal/collector"
	"uptime-report-backend/internal/db"
	"uptime-report-backend/internal/ingest"
	"uptime-report-backend/internal/report"
	"uptime-report-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "uptime-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// One-off CSV seeding, if configured.
	if cfg.Seed.Enabled {
		loader := ingest.NewLoader(appStore)
		if err := loader.Load(ctx, &cfg.Seed); err != nil {
			logger.Fatalf("failed to seed database: %v", err)
		}
		logger.Println("seed data loaded")
	}

	// Report compilation workers.
	compiler := report.NewCompiler(appStore, cfg.Report.OutputDir)
	manager := report.NewManager(compiler, cfg.WorkerPool.Size, cfg.WorkerPool.QueueSize)
	manager.Start(ctx)

	// Observation collector runs in the background when enabled.
	collectorSvc := collector.NewService(cfg, appStore)
	go collectorSvc.Run(ctx)

	router := api.NewRouter(appStore, manager, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
