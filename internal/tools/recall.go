package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/ctxkeep-go/internal/compress"
)

// RecallInput defines the input schema for the recall tool.
type RecallInput struct {
	Agent      string  `json:"agent,omitempty" jsonschema:"Restrict to one producer"`
	MaxTokens  int     `json:"max_tokens,omitempty" jsonschema:"Token budget for the returned context, default 2000"`
	MinQuality float64 `json:"min_quality,omitempty" jsonschema:"Drop entries scoring below this, 0-1"`
}

// FocusInput defines the input schema for the focus tool.
type FocusInput struct {
	Topics     []string `json:"topics,omitempty" jsonschema:"Topics to prefer (any-of). Empty behaves like recall"`
	Agent      string   `json:"agent,omitempty" jsonschema:"Restrict to one producer"`
	MaxTokens  int      `json:"max_tokens,omitempty" jsonschema:"Token budget for the returned context, default 2000"`
	MinQuality float64  `json:"min_quality,omitempty" jsonschema:"Drop entries scoring below this, 0-1"`
}

// defaultMaxTokens is the recall budget when the caller leaves it unset.
const defaultMaxTokens = 2000

// NewRecallHandler creates the recall tool handler: quality-ranked context
// under a token budget.
func NewRecallHandler(deps *Dependencies) mcp.ToolHandlerFor[RecallInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RecallInput) (*mcp.CallToolResult, any, error) {
		if input.MinQuality < 0 || input.MinQuality > 1 {
			return ErrorResult("min_quality must be between 0 and 1", "Adjust the filter value"), nil, nil
		}

		maxTokens := input.MaxTokens
		if maxTokens <= 0 {
			maxTokens = defaultMaxTokens
		}

		result := compress.Compress(deps.Store.Snapshot(), compress.Options{
			Agent:      input.Agent,
			MaxTokens:  maxTokens,
			MinQuality: input.MinQuality,
		})

		deps.Logger.Debug("recall completed",
			"agent", input.Agent,
			"max_tokens", maxTokens,
			"included", result.Included,
			"tokens", result.TokenEstimate)
		return TextResult(result.Text), nil, nil
	}
}

// NewFocusHandler creates the focus tool handler: topic-preferred context
// under a token budget, falling back to the rest of the store.
func NewFocusHandler(deps *Dependencies) mcp.ToolHandlerFor[FocusInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FocusInput) (*mcp.CallToolResult, any, error) {
		if input.MinQuality < 0 || input.MinQuality > 1 {
			return ErrorResult("min_quality must be between 0 and 1", "Adjust the filter value"), nil, nil
		}

		maxTokens := input.MaxTokens
		if maxTokens <= 0 {
			maxTokens = defaultMaxTokens
		}

		result := compress.Focus(deps.Store.Snapshot(), compress.FocusOptions{
			Topics:     input.Topics,
			Agent:      input.Agent,
			MaxTokens:  maxTokens,
			MinQuality: input.MinQuality,
		})

		deps.Logger.Debug("focus completed",
			"topics", input.Topics,
			"agent", input.Agent,
			"max_tokens", maxTokens,
			"included", result.Included,
			"tokens", result.TokenEstimate)
		return TextResult(result.Text), nil, nil
	}
}
