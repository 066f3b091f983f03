package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PingInput is the input schema for the ping liveness tool.
type PingInput struct {
	Echo string `json:"echo,omitempty" jsonschema:"Text to echo back instead of pong"`
}

// NewPingHandler answers "pong", or echoes the given text. Clients use it to
// verify the stdio transport without touching the store.
func NewPingHandler(deps *Dependencies) mcp.ToolHandlerFor[PingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, any, error) {
		reply := input.Echo
		if reply == "" {
			reply = "pong"
		}
		if deps != nil && deps.Logger != nil {
			deps.Logger.Debug("ping", "reply", reply)
		}
		return TextResult(reply), nil, nil
	}
}
