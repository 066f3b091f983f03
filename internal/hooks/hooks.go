// Package hooks maps host-runtime events onto store writes. The host
// pipes one JSON event to stdin per invocation; anything that goes wrong is
// logged and swallowed so a hook can never break the surrounding interactive
// session.
package hooks

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/raphaelgruber/ctxkeep-go/internal/store"
)

// Event is the host runtime's hook payload. Unknown fields are ignored.
type Event struct {
	HookEventName string          `json:"hook_event_name"`
	Prompt        string          `json:"prompt,omitempty"`
	Message       string          `json:"message,omitempty"`
	ToolName      string          `json:"tool_name,omitempty"`
	ToolInput     json.RawMessage `json:"tool_input,omitempty"`
	ToolResponse  json.RawMessage `json:"tool_response,omitempty"`
}

// Event names the runner reacts to. Anything else is ignored.
const (
	EventUserPrompt  = "UserPromptSubmit"
	EventStop        = "Stop"
	EventPostToolUse = "PostToolUse"
)

// Runner applies events to a store with a fixed topic set.
type Runner struct {
	store  *store.Store
	topics []string
	logger *slog.Logger
}

// NewRunner builds a Runner. Topics are attached to every captured entry;
// logger may be nil.
func NewRunner(st *store.Store, topics []string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{store: st, topics: topics, logger: logger}
}

// Run reads one JSON event from r and applies it. The returned error is for
// the caller's log only: hook binaries exit zero regardless.
func (r *Runner) Run(in io.Reader) error {
	var event Event
	if err := json.NewDecoder(in).Decode(&event); err != nil {
		return fmt.Errorf("decode hook event: %w", err)
	}
	return r.Apply(event)
}

// Apply maps one event to the matching store write.
func (r *Runner) Apply(event Event) error {
	switch event.HookEventName {
	case EventUserPrompt:
		if strings.TrimSpace(event.Prompt) == "" {
			r.logger.Debug("ignoring empty user prompt event")
			return nil
		}
		id, err := r.store.AddUserMessage(event.Prompt, r.topics...)
		if err != nil {
			return fmt.Errorf("capture user prompt: %w", err)
		}
		r.logger.Debug("captured user prompt", "id", id)
		return nil

	case EventStop:
		if strings.TrimSpace(event.Message) == "" {
			r.logger.Debug("ignoring stop event without message")
			return nil
		}
		id, err := r.store.AddAssistantMessage(event.Message, r.topics...)
		if err != nil {
			return fmt.Errorf("capture assistant message: %w", err)
		}
		r.logger.Debug("captured assistant message", "id", id)
		return nil

	case EventPostToolUse:
		if event.ToolName == "" {
			r.logger.Debug("ignoring tool use event without tool name")
			return nil
		}
		id, err := r.store.AddToolUse(event.ToolName, rawToText(event.ToolInput), rawToText(event.ToolResponse), r.topics...)
		if err != nil {
			return fmt.Errorf("capture tool use: %w", err)
		}
		r.logger.Debug("captured tool use", "tool", event.ToolName, "id", id)
		return nil

	default:
		r.logger.Debug("ignoring hook event", "event", event.HookEventName)
		return nil
	}
}

// rawToText renders a raw JSON value as text: plain strings lose their
// quotes, everything else keeps its JSON form.
func rawToText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
