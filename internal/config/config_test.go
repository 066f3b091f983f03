package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"CTXKEEP_DIR", "CTXKEEP_LOG_FILE", "CTXKEEP_LOG_LEVEL",
		"CTXKEEP_SERVER_PORT", "CTXKEEP_LLM_PROVIDER", "CTXKEEP_LLM_MODEL",
		"OLLAMA_HOST", "CTXKEEP_TOPICS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Dir != "" {
		t.Errorf("Dir = %q, want empty", cfg.Dir)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.ServerPort != "8474" {
		t.Errorf("ServerPort = %q, want 8474", cfg.ServerPort)
	}
	if cfg.LLMProvider != ProviderNone {
		t.Errorf("LLMProvider = %q, want none", cfg.LLMProvider)
	}
	if cfg.OllamaHost != "http://localhost:11434" {
		t.Errorf("OllamaHost = %q", cfg.OllamaHost)
	}
	if cfg.DefaultTopics != nil {
		t.Errorf("DefaultTopics = %v, want nil", cfg.DefaultTopics)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CTXKEEP_DIR", "/var/lib/ctxkeep")
	t.Setenv("CTXKEEP_LOG_LEVEL", "debug")
	t.Setenv("CTXKEEP_LLM_PROVIDER", "ollama")
	t.Setenv("CTXKEEP_TOPICS", "auth, database ,,ui")

	cfg := Load()
	if cfg.Dir != "/var/lib/ctxkeep" {
		t.Errorf("Dir = %q", cfg.Dir)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.LLMProvider != ProviderOllama {
		t.Errorf("LLMProvider = %q, want ollama", cfg.LLMProvider)
	}
	want := []string{"auth", "database", "ui"}
	if len(cfg.DefaultTopics) != len(want) {
		t.Fatalf("DefaultTopics = %v, want %v", cfg.DefaultTopics, want)
	}
	for i := range want {
		if cfg.DefaultTopics[i] != want[i] {
			t.Errorf("DefaultTopics[%d] = %q, want %q", i, cfg.DefaultTopics[i], want[i])
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"garbage", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in   string
		want Provider
	}{
		{"ollama", ProviderOllama},
		{"OpenAI", ProviderOpenAI},
		{"anthropic", ProviderAnthropic},
		{"bedrock", ProviderBedrock},
		{"none", ProviderNone},
		{"", ProviderNone},
		{"surprise", ProviderNone},
	}

	for _, tt := range tests {
		if got := parseProvider(tt.in); got != tt.want {
			t.Errorf("parseProvider(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"git@github.com:owner/repo.git", "repo"},
		{"git@github.com:owner/repo", "repo"},
		{"https://github.com/owner/repo.git", "repo"},
		{"http://github.com/owner/repo", "repo"},
		{"", ""},
		{"not-a-url", ""},
	}

	for _, tt := range tests {
		if got := parseRepoName(tt.url); got != tt.want {
			t.Errorf("parseRepoName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestResolveDirPrecedence(t *testing.T) {
	t.Setenv("CTXKEEP_DIR", "/from/env")

	if got := ResolveDir("/explicit"); got != "/explicit" {
		t.Errorf("ResolveDir(explicit) = %q, want /explicit", got)
	}
	if got := ResolveDir(""); got != "/from/env" {
		t.Errorf("ResolveDir() = %q, want /from/env", got)
	}
}

func TestResolveDirFallsBackToCwd(t *testing.T) {
	t.Setenv("CTXKEEP_DIR", "")
	dir := t.TempDir()
	t.Chdir(dir)

	got := ResolveDir("")
	if filepath.Base(got) != storageDirName {
		t.Errorf("ResolveDir() = %q, want basename %q", got, storageDirName)
	}
}

func TestSetupLoggerWithWriters(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupLoggerWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("hello", "key", "value")

	if stderr.Len() == 0 {
		t.Error("stderr writer got no output")
	}
	var record map[string]any
	if err := json.Unmarshal(file.Bytes(), &record); err != nil {
		t.Fatalf("file output is not JSON: %v", err)
	}
	if record["msg"] != "hello" {
		t.Errorf("file record msg = %v, want hello", record["msg"])
	}
}
