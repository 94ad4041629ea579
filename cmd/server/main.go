// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package main is the entry point for the production-line analytics
// dashboard server.
//
// # Application Architecture
//
// The server initializes components in order:
//
//  1. Configuration: environment variables and an optional YAML file (Koanf v2)
//  2. Logging: zerolog, JSON or console depending on LOG_FORMAT
//  3. Global database: tenant/user/dashboard_template/widget_catalog tables
//  4. Widget registry wiring: widgets.NewProcessor <- widgets/types.NewProcessor
//  5. HTTP server: Chi router with the dashboard/layout/filters/detections/system routes
//  6. Partition maintenance: a background loop that ensures future partitions
//     exist and drops retention-expired ones for the active tenant
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger a graceful shutdown: the HTTP server stops
// accepting new connections, in-flight requests get up to 10s to finish,
// then the database connections are closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cartographus/internal/api"
	"github.com/tomtom215/cartographus/internal/config"
	"github.com/tomtom215/cartographus/internal/database"
	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/widgets"
	"github.com/tomtom215/cartographus/internal/widgets/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("starting cartographus")

	// Composition root: wire the widget registry's dispatch function now,
	// before any request can reach WidgetEngine.ProcessWidgets.
	widgets.NewProcessor = types.NewProcessor

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	globalDB, err := database.Open(ctx, &cfg.GlobalDatabase)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open global database")
	}
	defer func() {
		if err := globalDB.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing global database")
		}
	}()
	logging.Info().Msg("global database connected")

	server := api.NewServer(cfg, globalDB)

	if dbName := os.Getenv("TENANT_DB_NAME"); dbName != "" {
		if err := server.LoadTenant(ctx, dbName); err != nil {
			logging.Error().Err(err).Str("db_name", dbName).Msg("failed to activate initial tenant")
		} else {
			logging.Info().Str("db_name", dbName).Msg("initial tenant activated")
		}
	}

	handler := api.NewHandler(server, nil)
	router := api.NewRouter(handler, cfg.Server.CORSAllowedOrigins, cfg.Server.RateLimitDisabled)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go runPartitionMaintenance(ctx, server, cfg.Partition)

	serveErrCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", httpServer.Addr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
			return
		}
		serveErrCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-serveErrCh:
		if err != nil {
			logging.Error().Err(err).Msg("http server failed")
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("error during http server shutdown")
	}

	logging.Info().Msg("cartographus stopped")
}

// runPartitionMaintenance periodically ensures the active tenant's
// per-line tables have partitions for the configured look-ahead window
// and drops partitions past the retention cutoff. It is a no-op while
// no tenant is active.
func runPartitionMaintenance(ctx context.Context, server *api.Server, cfg config.PartitionConfig) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := server.MaintainPartitions(ctx, cfg); err != nil {
				logging.Warn().Err(err).Msg("partition maintenance failed")
			}
		}
	}
}
