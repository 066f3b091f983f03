package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/ctxkeep-go/internal/graph"
	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/models"
)

// StatsInput defines the input schema for the stats tool.
type StatsInput struct {
	IncludeTimings bool `json:"include_timings,omitempty" jsonschema:"Include per-operation timing aggregates"`
}

// GraphInput defines the input schema for the graph tool.
type GraphInput struct{}

// StatsResult is the response from the stats tool.
type StatsResult struct {
	Store   models.Stats      `json:"store"`
	Timings *metrics.Snapshot `json:"timings,omitempty"`
}

// NewStatsHandler creates the stats tool handler.
func NewStatsHandler(deps *Dependencies) mcp.ToolHandlerFor[StatsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatsInput) (*mcp.CallToolResult, any, error) {
		result := StatsResult{Store: deps.Store.Stats()}
		if input.IncludeTimings && deps.Metrics != nil {
			snap := deps.Metrics.Snapshot()
			result.Timings = &snap
		}

		jsonBytes, _ := json.MarshalIndent(result, "", "  ")
		return TextResult(string(jsonBytes)), nil, nil
	}
}

// NewGraphHandler creates the graph tool handler: the node/edge projection
// over the full store.
func NewGraphHandler(deps *Dependencies) mcp.ToolHandlerFor[GraphInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GraphInput) (*mcp.CallToolResult, any, error) {
		g := graph.Project(deps.Store.Snapshot(), deps.Store.Summaries())

		jsonBytes, _ := json.MarshalIndent(g, "", "  ")
		deps.Logger.Debug("graph projected", "nodes", len(g.Nodes), "edges", len(g.Edges))
		return TextResult(string(jsonBytes)), nil, nil
	}
}
