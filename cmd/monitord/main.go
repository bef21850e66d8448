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

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/config"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/api"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/db"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/engine"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/ingest"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/store"
	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/worker"
)

func main() {
	logger := log.New(os.Stdout, "monitord ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
		}
		logger.Printf("no configuration at %s, using defaults", configPath)
		cfg = config.Default()
	} else {
		logger.Printf("configuration loaded successfully from %s", configPath)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	loader := ingest.NewLoader(cfg.Ingest, appStore)
	if err := loader.Run(ctx); err != nil {
		logger.Fatalf("failed to load seed data: %v", err)
	}
	logger.Println("seed data loading complete")

	reportEngine := engine.New(appStore, cfg.Report.DefaultTimezone, cfg.Report.Parallelism)

	pool := worker.NewPool(cfg.Report.WorkerPoolSize, appStore, reportEngine, cfg.Report.OutputDir)
	pool.Start(ctx)

	router := api.NewRouter(appStore, pool, &cfg.Server)
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

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
