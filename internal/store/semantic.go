package store

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/ctxkeep-go/internal/models"
)

// Semantic writers: thin formatting helpers over AddEntry used by hooks and
// tool handlers. They fix the agent and kind conventions so captured turns
// stay queryable by producer, and nothing more. All invariants live in
// AddEntry.

const (
	agentUser      = "user"
	agentAssistant = "assistant"
	agentToolShape = "tool:%s"

	// One verbose tool dump must not dominate the store.
	maxToolOutputLen = 2000
)

// AddUserMessage captures a user turn.
func (s *Store) AddUserMessage(text string, topics ...string) (string, error) {
	id, _, err := s.AddEntry(text, agentUser, topics, models.Meta{models.MetaKeyKind: string(models.KindMessage)}, nil)
	return id, err
}

// AddAssistantMessage captures an assistant turn.
func (s *Store) AddAssistantMessage(text string, topics ...string) (string, error) {
	id, _, err := s.AddEntry(text, agentAssistant, topics, models.Meta{models.MetaKeyKind: string(models.KindMessage)}, nil)
	return id, err
}

// AddToolUse captures a tool invocation as one canonical multi-line record.
// The output is truncated so a single dump cannot swamp later retrieval.
func (s *Store) AddToolUse(tool, input, output string, topics ...string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Tool: %s", tool)
	if strings.TrimSpace(input) != "" {
		fmt.Fprintf(&b, "\nInput: %s", input)
	}
	if strings.TrimSpace(output) != "" {
		fmt.Fprintf(&b, "\nOutput: %s", truncate(output, maxToolOutputLen))
	}

	meta := models.Meta{
		models.MetaKeyKind: string(models.KindToolUse),
		"tool":             tool,
	}
	id, _, err := s.AddEntry(b.String(), fmt.Sprintf(agentToolShape, tool), topics, meta, nil)
	return id, err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
