// Command api is the Scoracle Teams API server.
//
// Usage:
//
//	scoracle-teams-api
//	API_PORT=8080 scoracle-teams-api

// @title Scoracle Teams API
// @version 1.0.0
// @description Team resolution API mapping loosely-specified league and team identifiers to canonical records via pluggable providers, with feeder-league traversal and curated overrides.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-teams/internal/api"
	"github.com/albapepper/scoracle-teams/internal/cache"
	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/config"
	"github.com/albapepper/scoracle-teams/internal/overrides"
	"github.com/albapepper/scoracle-teams/internal/provider"
	"github.com/albapepper/scoracle-teams/internal/provider/espn"
	"github.com/albapepper/scoracle-teams/internal/provider/ncaa"
	"github.com/albapepper/scoracle-teams/internal/provider/sportsdb"
	"github.com/albapepper/scoracle-teams/internal/resolve"

	_ "github.com/albapepper/scoracle-teams/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Load static data
	cat, err := catalog.Load()
	if err != nil {
		logger.Error("Failed to load league catalog", "error", err)
		os.Exit(1)
	}
	ov, err := overrides.Load()
	if err != nil {
		logger.Error("Failed to load team overrides", "error", err)
		os.Exit(1)
	}
	logger.Info("League catalog loaded", "leagues", cat.Len())

	// Providers and registry. Registration order is priority order for
	// league auto-discovery.
	registry := provider.NewRegistry(logger,
		espn.New(cat, ov, espn.Config{
			RequestsPerMinute: cfg.ESPNRequestsPerMinute,
			Timeout:           cfg.RequestTimeout,
		}, logger),
		sportsdb.New(cat, ov, sportsdb.Config{
			APIKey:            cfg.SportsDBAPIKey,
			RequestsPerMinute: cfg.SportsDBRequestsPerMinute,
			Timeout:           cfg.RequestTimeout,
		}, logger),
		ncaa.New(cat, ov, ncaa.Config{
			RequestsPerMinute: cfg.NCAARequestsPerMinute,
			Timeout:           cfg.RequestTimeout,
		}, logger),
	)
	registry.Initialize()
	logger.Info("Provider registry initialized", "providers", len(registry.Providers()))

	resolver := resolve.New(cat, registry, ov, logger)

	// Response cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Create router
	router := api.NewRouter(cat, registry, resolver, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scoracle Teams API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
