//go:build integration

package tools_test

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raphaelgruber/ctxkeep-go/internal/metrics"
	"github.com/raphaelgruber/ctxkeep-go/internal/store"
	"github.com/raphaelgruber/ctxkeep-go/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registeredToolCount must match RegisterAll.
const registeredToolCount = 12

func TestToolsOverInMemoryTransport(t *testing.T) {
	logger := testLogger()

	st, err := store.Open(t.TempDir(), logger, metrics.NewCollector())
	require.NoError(t, err)

	// Create server
	impl := &mcp.Implementation{
		Name:    "test-ctxmcp",
		Version: "0.0.1-test",
	}
	server := mcp.NewServer(impl, nil)

	deps := &tools.Dependencies{
		Store:  st,
		Logger: logger,
	}
	tools.RegisterAll(server, deps)

	// Create in-memory transports
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Run server in background
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run(ctx, serverTransport)
	}()

	// Give server time to start
	time.Sleep(50 * time.Millisecond)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err, "client should connect successfully")
	defer session.Close()

	t.Run("tools/list returns the full registry", func(t *testing.T) {
		result, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		require.Len(t, result.Tools, registeredToolCount)

		names := make(map[string]bool, len(result.Tools))
		for _, tool := range result.Tools {
			names[tool.Name] = true
		}
		for _, want := range []string{"capture", "capture_user", "capture_assistant", "capture_tool_use",
			"recall", "focus", "search", "inspect", "condense", "stats", "graph", "ping"} {
			assert.True(t, names[want], "tool %s should be registered", want)
		}
	})

	t.Run("ping returns pong", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "ping",
			Arguments: map[string]any{},
		})
		require.NoError(t, err)
		require.Len(t, result.Content, 1)

		textContent, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok, "content should be TextContent")
		assert.Equal(t, "pong", textContent.Text)
		assert.False(t, result.IsError)
	})

	t.Run("capture then recall round trip", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name: "capture",
			Arguments: map[string]any{
				"content": "The scheduler drains one node at a time during rolling upgrades",
				"agent":   "assistant",
				"topics":  []string{"infra"},
			},
		})
		require.NoError(t, err)
		require.False(t, result.IsError)

		result, err = session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "recall",
			Arguments: map[string]any{"max_tokens": 500},
		})
		require.NoError(t, err)
		require.False(t, result.IsError)

		textContent, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		assert.Contains(t, textContent.Text, "scheduler drains")
	})

	// Cleanup
	cancel()

	select {
	case err := <-serverErr:
		if err != nil {
			t.Logf("server stopped with: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("server did not stop within timeout")
	}
}
