package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/models"
	"github.com/raphaelgruber/ctxkeep-go/internal/token"
)

// CondenseInput defines the input schema for the condense tool.
type CondenseInput struct {
	EntryIDs []string `json:"entry_ids" jsonschema:"required,Ids of the entries to compact"`
	Content  string   `json:"content,omitempty" jsonschema:"Summary text. When omitted a configured LLM provider drafts it"`
}

// CondenseResult is the response from the condense tool.
type CondenseResult struct {
	Summary models.Summary `json:"summary"`
	Drafted bool           `json:"drafted"`
}

// NewCondenseHandler creates the condense tool handler. With no content and
// a configured provider the summary text is drafted by the LLM; the store
// call is the same either way.
func NewCondenseHandler(deps *Dependencies) mcp.ToolHandlerFor[CondenseInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CondenseInput) (*mcp.CallToolResult, any, error) {
		if len(input.EntryIDs) == 0 {
			return ErrorResult("entry_ids must not be empty", "Use search to find entry ids"), nil, nil
		}

		content := input.Content
		drafted := false
		if content == "" {
			if deps.Summarizer == nil {
				return ErrorResult("No summary content and no LLM provider configured",
					"Pass content explicitly or set CTXKEEP_LLM_PROVIDER"), nil, nil
			}

			entries := make([]models.Entry, 0, len(input.EntryIDs))
			for _, id := range input.EntryIDs {
				entry, err := deps.Store.Get(id)
				if err != nil {
					return StoreErrorResult(err), nil, nil
				}
				entries = append(entries, entry)
			}

			start := time.Now()
			draft, err := deps.Summarizer.Draft(ctx, entries)
			if err != nil {
				deps.Logger.Error("summary draft failed", "model", deps.Summarizer.Model(), "error", err)
				return ErrorResult("Drafting summary failed: "+err.Error(), "Pass content explicitly"), nil, nil
			}
			if deps.Metrics != nil {
				promptTokens := 0
				for _, e := range entries {
					promptTokens += token.Estimate(e.Content)
				}
				deps.Metrics.RecordLLMUsage(metrics.OpLLMDraft, time.Since(start),
					int64(promptTokens), int64(token.Estimate(draft)))
			}
			content = draft
			drafted = true
		}

		summary, err := deps.Store.CreateSummary(input.EntryIDs, content)
		if err != nil {
			return StoreErrorResult(err), nil, nil
		}

		jsonBytes, _ := json.MarshalIndent(CondenseResult{Summary: summary, Drafted: drafted}, "", "  ")
		deps.Logger.Info("condense completed",
			"summary_id", summary.ID,
			"sources", len(input.EntryIDs),
			"tokens_saved", summary.TokensSaved,
			"drafted", drafted)
		return TextResult(string(jsonBytes)), nil, nil
	}
}
