// Package main provides the entry point for the ctxmcp MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raphaelgruber/ctxkeep-go/internal/config"
	"github.com/raphaelgruber/ctxkeep-go/internal/llm"
	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/server"
	"github.com/raphaelgruber/ctxkeep-go/internal/store"
	"github.com/raphaelgruber/ctxkeep-go/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	dir := config.ResolveDir(cfg.Dir)

	logger.Info("ctxmcp starting",
		"version", version,
		"store_dir", dir,
		"project", config.ProjectLabel(dir),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Open the store
	collector := metrics.NewCollector()
	st, err := store.Open(dir, logger, collector)
	if err != nil {
		logger.Error("failed to open store", "dir", dir, "error", err)
		os.Exit(1)
	}

	// Optional summary drafting
	summarizer, err := llm.New(cfg)
	if err != nil {
		logger.Error("failed to create summarizer", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}
	if summarizer != nil {
		logger.Info("summarizer initialized", "model", summarizer.Model())
	}

	srv := server.New(version, logger)

	// Register tools
	deps := &tools.Dependencies{
		Store:      st,
		Summarizer: summarizer,
		Metrics:    collector,
		Logger:     logger,
	}
	tools.RegisterAll(srv.MCPServer(), deps)

	// Log ready state
	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
