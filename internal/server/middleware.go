package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxArgLogLen caps logged request params before truncation.
const maxArgLogLen = 200

// slowRequestThreshold is the duration above which a request is logged at
// WARN. Store operations are local and synchronous, so anything slower than
// this usually means persistence trouble.
const slowRequestThreshold = 100 * time.Millisecond

// LoggingMiddleware returns middleware that logs every request with timing.
// Params are truncated to keep captured entry content out of the log stream.
func LoggingMiddleware(logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			duration := time.Since(start)

			attrs := []any{
				"method", method,
				"duration_ms", duration.Milliseconds(),
			}
			if params := req.GetParams(); params != nil {
				attrs = append(attrs, "params", truncate(fmt.Sprintf("%+v", params), maxArgLogLen))
			}

			switch {
			case err != nil:
				attrs = append(attrs, "error", err.Error())
				logger.Error("request failed", attrs...)
			case duration > slowRequestThreshold:
				logger.Warn("slow request", attrs...)
			default:
				logger.Debug("request completed", attrs...)
			}

			return result, err
		}
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
