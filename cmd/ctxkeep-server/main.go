// Package main provides the visualization/analytics server for ctxkeep.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raphaelgruber/ctxkeep-go/internal/config"
	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/store"
	"github.com/raphaelgruber/ctxkeep-go/internal/web"
)

func main() {
	// Parse flags
	dirFlag := flag.String("dir", "", "storage directory (default: resolved from CTXKEEP_DIR, git toplevel, or cwd)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *dirFlag != "" {
		cfg.Dir = *dirFlag
	}

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()
	slog.SetDefault(logger)

	dir := config.ResolveDir(cfg.Dir)
	project := config.ProjectLabel(dir)

	slog.Info("starting ctxkeep-server", "port", cfg.ServerPort, "store_dir", dir, "project", project)

	collector := metrics.NewCollector()
	st, err := store.Open(dir, logger, collector)
	if err != nil {
		slog.Error("failed to open store", "dir", dir, "error", err)
		os.Exit(1)
	}

	handler := web.NewHandler(st, collector, project, logger)
	mux, err := handler.Routes()
	if err != nil {
		slog.Error("failed to build routes", "error", err)
		os.Exit(1)
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second, // Long for websocket upgrades
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("dashboard available", "url", fmt.Sprintf("http://localhost:%s/", cfg.ServerPort))
		slog.Info("API available", "url", fmt.Sprintf("http://localhost:%s/api/stats", cfg.ServerPort))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
