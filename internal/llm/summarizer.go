// Package llm drafts summary text for context entries using a configurable
// provider. Drafting is optional: with no provider configured the rest of the
// system works unchanged and surfaces report the feature as disabled.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphaelgruber/ctxkeep-go/internal/config"
	"github.com/raphaelgruber/ctxkeep-go/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Summarizer drafts a compact summary from source entries. The draft is a
// suggestion only; callers pass it to the store's summary creation unchanged.
type Summarizer interface {
	// Draft returns proposed summary text for the given entries.
	Draft(ctx context.Context, entries []models.Entry) (string, error)
	// Model returns the provider model name for logs and stats.
	Model() string
}

// Default models per provider, used when CTXKEEP_LLM_MODEL is unset.
const (
	defaultOllamaModel    = "llama3.2"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
	defaultBedrockModel   = "anthropic.claude-3-haiku-20240307-v1:0"
)

const summarySystemPrompt = `You are a context compaction assistant. Summarize the provided context entries into one short paragraph.
- Keep concrete facts, decisions, and identifiers; drop greetings and filler
- The summary must be substantially shorter than the combined input
- Do not invent information that is not in the entries`

// New builds a summarizer for the configured provider. Provider "none"
// returns (nil, nil): drafting is disabled, not an error.
func New(cfg config.Config) (Summarizer, error) {
	switch cfg.LLMProvider {
	case config.ProviderNone:
		return nil, nil

	case config.ProviderOllama:
		modelName := cfg.LLMModel
		if modelName == "" {
			modelName = defaultOllamaModel
		}
		model, err := ollama.New(
			ollama.WithModel(modelName),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}
		return &chatSummarizer{llm: model, modelName: modelName}, nil

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		modelName := cfg.LLMModel
		if modelName == "" {
			modelName = defaultOpenAIModel
		}
		model, err := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(modelName),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}
		return &chatSummarizer{llm: model, modelName: modelName}, nil

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		modelName := cfg.LLMModel
		if modelName == "" {
			modelName = defaultAnthropicModel
		}
		model, err := anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(modelName),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}
		return &chatSummarizer{llm: model, modelName: modelName}, nil

	case config.ProviderBedrock:
		modelName := cfg.LLMModel
		if modelName == "" {
			modelName = defaultBedrockModel
		}
		return newBedrockSummarizer(modelName)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

// chatSummarizer drives any langchaingo chat model.
type chatSummarizer struct {
	llm       llms.Model
	modelName string
}

func (s *chatSummarizer) Draft(ctx context.Context, entries []models.Entry) (string, error) {
	prompt, err := BuildPrompt(entries)
	if err != nil {
		return "", err
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, summarySystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	response, err := s.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("draft summary: %w", wrapFatalError(err))
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

func (s *chatSummarizer) Model() string {
	return s.modelName
}

// BuildPrompt renders entries into the deterministic user prompt the
// summarizer sends. Exported so tests and logs can reproduce the exact
// input for a draft.
func BuildPrompt(entries []models.Entry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("no entries to summarize")
	}

	var b strings.Builder
	b.WriteString("Context entries:\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "\n[%d] %s: %s\n", i+1, e.Agent, e.Content)
	}
	b.WriteString("\nSummary:")
	return b.String(), nil
}
