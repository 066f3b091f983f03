package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/raphaelgruber/ctxkeep-go/internal/models"
)

// bedrockSummarizer invokes an Anthropic model through Amazon Bedrock.
// Credentials and region come from the standard AWS config chain.
type bedrockSummarizer struct {
	client    *bedrockruntime.Client
	modelName string
}

const bedrockMaxTokens = 512

// anthropicRequest is the Bedrock payload for Anthropic message models.
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string           `json:"role"`
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicBlock `json:"content"`
}

func newBedrockSummarizer(modelName string) (*bedrockSummarizer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &bedrockSummarizer{
		client:    bedrockruntime.NewFromConfig(awsCfg),
		modelName: modelName,
	}, nil
}

func (s *bedrockSummarizer) Draft(ctx context.Context, entries []models.Entry) (string, error) {
	prompt, err := BuildPrompt(entries)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        bedrockMaxTokens,
		System:           summarySystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: []anthropicBlock{{Type: "text", Text: prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal bedrock payload: %w", err)
	}

	out, err := s.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(s.modelName),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("invoke bedrock model: %w", wrapFatalError(err))
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("decode bedrock response: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("bedrock response contained no text")
	}
	return strings.TrimSpace(text.String()), nil
}

func (s *bedrockSummarizer) Model() string {
	return s.modelName
}
