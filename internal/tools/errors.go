package tools

import (
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/ctxkeep-go/internal/store"
)

// ErrorResult creates a tool error result with optional recovery hint.
// If hint is non-empty, formats as "{msg}. {hint}".
// Returns IsError=true so the LLM can see the error and self-correct.
func ErrorResult(msg, hint string) *mcp.CallToolResult {
	text := msg
	if hint != "" {
		text = msg + ". " + hint
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

// TextResult creates a success result with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// StoreErrorResult maps engine errors onto tool error results with a hint
// matching the failure class.
func StoreErrorResult(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, store.ErrValidation):
		return ErrorResult(err.Error(), "Check the tool arguments")
	case errors.Is(err, store.ErrNotFound):
		return ErrorResult(err.Error(), "Use search to find valid entry ids")
	default:
		return ErrorResult(err.Error(), "")
	}
}
