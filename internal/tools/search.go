package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/ctxkeep-go/internal/models"
)

// SearchInput defines the input schema for the search tool.
type SearchInput struct {
	Agent  string   `json:"agent,omitempty" jsonschema:"Filter by producer tag"`
	Topics []string `json:"topics,omitempty" jsonschema:"Filter by topic overlap (entries must carry at least one)"`
	Limit  int      `json:"limit,omitempty" jsonschema:"Max results 1-100, default 20"`
}

// InspectInput defines the input schema for the inspect tool.
type InspectInput struct {
	ID string `json:"id" jsonschema:"required,Entry id to retrieve"`
}

// SearchResult is the response from the search tool.
type SearchResult struct {
	Entries []models.Entry `json:"entries"`
	Count   int            `json:"count"`
}

// NewSearchHandler creates the search tool handler: filtered entry listing.
func NewSearchHandler(deps *Dependencies) mcp.ToolHandlerFor[SearchInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, any, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = 20
		}
		if limit > 100 {
			return ErrorResult("Limit must be 1-100", "Reduce limit value"), nil, nil
		}

		entries := deps.Store.ListEntries(input.Agent, input.Topics)
		total := len(entries)
		if len(entries) > limit {
			entries = entries[:limit]
		}

		result := SearchResult{Entries: entries, Count: total}
		jsonBytes, _ := json.MarshalIndent(result, "", "  ")

		deps.Logger.Debug("search completed",
			"agent", input.Agent,
			"topics", input.Topics,
			"results", total)
		return TextResult(string(jsonBytes)), nil, nil
	}
}

// NewInspectHandler creates the inspect tool handler: one entry by id.
func NewInspectHandler(deps *Dependencies) mcp.ToolHandlerFor[InspectInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input InspectInput) (*mcp.CallToolResult, any, error) {
		if input.ID == "" {
			return ErrorResult("Entry id is required", "Use search to find entry ids"), nil, nil
		}

		entry, err := deps.Store.Get(input.ID)
		if err != nil {
			return StoreErrorResult(err), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(entry, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}
