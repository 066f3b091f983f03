// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/raphaelgruber/ctxkeep-go/internal/llm"
	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/store"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Store      *store.Store
	Summarizer llm.Summarizer // nil when no provider is configured
	Metrics    *metrics.Collector
	Logger     *slog.Logger
}
