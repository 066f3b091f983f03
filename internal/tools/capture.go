package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/ctxkeep-go/internal/models"
)

// CaptureInput defines the input schema for the capture tool.
type CaptureInput struct {
	Content    string         `json:"content" jsonschema:"required,Text to store as a context entry"`
	Agent      string         `json:"agent,omitempty" jsonschema:"Producer tag (role or tool name), default 'assistant'"`
	Topics     []string       `json:"topics,omitempty" jsonschema:"Topic tags for later focused retrieval"`
	Metadata   map[string]any `json:"metadata,omitempty" jsonschema:"Caller-supplied annotations (opaque to the store)"`
	References []string       `json:"references,omitempty" jsonschema:"Ids of entries this one points to"`
}

// CaptureResult is the response from the capture tools.
type CaptureResult struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// CaptureMessageInput is the input schema for capture_user and
// capture_assistant.
type CaptureMessageInput struct {
	Text   string   `json:"text" jsonschema:"required,The message text"`
	Topics []string `json:"topics,omitempty" jsonschema:"Topic tags"`
}

// CaptureToolUseInput is the input schema for capture_tool_use.
type CaptureToolUseInput struct {
	Tool   string   `json:"tool" jsonschema:"required,Name of the invoked tool"`
	Input  string   `json:"input,omitempty" jsonschema:"Tool input, rendered as text"`
	Output string   `json:"output,omitempty" jsonschema:"Tool output, rendered as text (truncated when stored)"`
	Topics []string `json:"topics,omitempty" jsonschema:"Topic tags"`
}

// NewCaptureHandler creates the capture tool handler, the full-surface write
// path into the store.
func NewCaptureHandler(deps *Dependencies) mcp.ToolHandlerFor[CaptureInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CaptureInput) (*mcp.CallToolResult, any, error) {
		agent := input.Agent
		if agent == "" {
			agent = "assistant"
		}

		id, existed, err := deps.Store.AddEntry(input.Content, agent, input.Topics, models.Meta(input.Metadata), input.References)
		if err != nil {
			return StoreErrorResult(err), nil, nil
		}

		return jsonResult(deps, "capture", CaptureResult{ID: id, Duplicate: existed})
	}
}

// NewCaptureUserHandler creates the capture_user tool handler.
func NewCaptureUserHandler(deps *Dependencies) mcp.ToolHandlerFor[CaptureMessageInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CaptureMessageInput) (*mcp.CallToolResult, any, error) {
		id, err := deps.Store.AddUserMessage(input.Text, input.Topics...)
		if err != nil {
			return StoreErrorResult(err), nil, nil
		}
		return jsonResult(deps, "capture_user", CaptureResult{ID: id})
	}
}

// NewCaptureAssistantHandler creates the capture_assistant tool handler.
func NewCaptureAssistantHandler(deps *Dependencies) mcp.ToolHandlerFor[CaptureMessageInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CaptureMessageInput) (*mcp.CallToolResult, any, error) {
		id, err := deps.Store.AddAssistantMessage(input.Text, input.Topics...)
		if err != nil {
			return StoreErrorResult(err), nil, nil
		}
		return jsonResult(deps, "capture_assistant", CaptureResult{ID: id})
	}
}

// NewCaptureToolUseHandler creates the capture_tool_use tool handler.
func NewCaptureToolUseHandler(deps *Dependencies) mcp.ToolHandlerFor[CaptureToolUseInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CaptureToolUseInput) (*mcp.CallToolResult, any, error) {
		if input.Tool == "" {
			return ErrorResult("Tool name is required", "Provide the name of the invoked tool"), nil, nil
		}
		id, err := deps.Store.AddToolUse(input.Tool, input.Input, input.Output, input.Topics...)
		if err != nil {
			return StoreErrorResult(err), nil, nil
		}
		return jsonResult(deps, "capture_tool_use", CaptureResult{ID: id})
	}
}

// jsonResult marshals v and wraps it as a success result, logging the
// completed call.
func jsonResult(deps *Dependencies, tool string, v any) (*mcp.CallToolResult, any, error) {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ")
	deps.Logger.Debug("tool completed", "tool", tool)
	return TextResult(string(jsonBytes)), nil, nil
}
