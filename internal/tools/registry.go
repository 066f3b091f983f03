package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	// Writes
	mcp.AddTool(server, &mcp.Tool{
		Name:        "capture",
		Description: "Store a context entry with agent, topics, metadata, and references",
	}, NewCaptureHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "capture_user",
		Description: "Store a user message as a context entry",
	}, NewCaptureUserHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "capture_assistant",
		Description: "Store an assistant message as a context entry",
	}, NewCaptureAssistantHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "capture_tool_use",
		Description: "Store a tool invocation (name, input, truncated output) as a context entry",
	}, NewCaptureToolUseHandler(deps))

	// Budgeted reads
	mcp.AddTool(server, &mcp.Tool{
		Name:        "recall",
		Description: "Retrieve quality-ranked context under a token budget",
	}, NewRecallHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "focus",
		Description: "Retrieve context preferring the given topics, spending leftover budget on the rest",
	}, NewFocusHandler(deps))

	// Lookups
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "List stored entries filtered by agent and topics",
	}, NewSearchHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Retrieve a single entry by id with full details",
	}, NewInspectHandler(deps))

	// Compaction
	mcp.AddTool(server, &mcp.Tool{
		Name:        "condense",
		Description: "Compact entries into a summary node, optionally drafting the text with an LLM",
	}, NewCondenseHandler(deps))

	// Analytics
	mcp.AddTool(server, &mcp.Tool{
		Name:        "stats",
		Description: "Store statistics: counts, token totals, quality distribution",
	}, NewStatsHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "graph",
		Description: "Node/edge projection of entries, summaries, and their references",
	}, NewGraphHandler(deps))

	// Liveness
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Test tool - responds with pong or echoes input",
	}, NewPingHandler(deps))
}
