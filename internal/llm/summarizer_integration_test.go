//go:build integration

package llm

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/raphaelgruber/ctxkeep-go/internal/config"
	"github.com/raphaelgruber/ctxkeep-go/internal/models"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ollamaTestModel is the smallest chat-capable model that produces usable
// summaries; pulling it adds roughly half a gigabyte to the first run.
const ollamaTestModel = "qwen2.5:0.5b"

var testOllamaHost string
var testContainer testcontainers.Container

// TestMain starts one ollama container for all draft tests and pulls the
// test model into it before any test runs.
func TestMain(m *testing.M) {
	// Disable ryuk (cleanup container) as it can cause issues in some environments
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	var err error
	testContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "ollama/ollama:latest",
			ExposedPorts: []string{"11434/tcp"},
			WaitingFor:   wait.ForListeningPort("11434/tcp").WithStartupTimeout(120 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start ollama container: %v", err)
	}

	host, err := testContainer.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	// Workaround: testcontainers may return "null" as host in some environments
	if host == "" || host == "null" {
		host = "localhost"
	}
	mappedPort, err := testContainer.MappedPort(ctx, "11434")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}
	testOllamaHost = fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	pullCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	exitCode, _, err := testContainer.Exec(pullCtx, []string{"ollama", "pull", ollamaTestModel})
	cancel()
	if err != nil || exitCode != 0 {
		log.Fatalf("Failed to pull model %s (exit %d): %v", ollamaTestModel, exitCode, err)
	}

	code := m.Run()

	_ = testContainer.Terminate(ctx)
	os.Exit(code)
}

func newTestSummarizer(t *testing.T) Summarizer {
	t.Helper()

	s, err := New(config.Config{
		LLMProvider: config.ProviderOllama,
		LLMModel:    ollamaTestModel,
		OllamaHost:  testOllamaHost,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s == nil {
		t.Fatal("New returned nil summarizer for ollama provider")
	}
	return s
}

func TestDraftReturnsText(t *testing.T) {
	s := newTestSummarizer(t)

	entries := []models.Entry{
		{Agent: "user", Content: "We decided to store session context as JSONL under .ctxkeep in the repo root."},
		{Agent: "assistant", Content: "Switched the persistence layer to atomic writes: temp file, fsync, then rename."},
		{Agent: "assistant", Content: "Duplicate entries are detected by a content hash before insert, so re-adding is a no-op."},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	draft, err := s.Draft(ctx, entries)
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if draft == "" {
		t.Fatal("Draft returned empty text")
	}
	if s.Model() != ollamaTestModel {
		t.Errorf("Model() = %q, want %q", s.Model(), ollamaTestModel)
	}
}

func TestDraftNoEntries(t *testing.T) {
	s := newTestSummarizer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.Draft(ctx, nil); err == nil {
		t.Fatal("Draft with no entries should fail")
	}
}
