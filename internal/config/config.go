// Package config reads ctxkeep configuration from the environment and sets
// up logging and storage path resolution shared by all binaries.
package config

import (
	"log/slog"
	"os"
	"strings"
)

// Provider selects the backend used for drafting summary text.
type Provider string

const (
	ProviderNone      Provider = "none"
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderBedrock   Provider = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// Storage
	Dir string // explicit storage dir; empty means resolve from git/cwd

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Analytics server
	ServerPort string

	// Summary drafting
	LLMProvider     Provider
	LLMModel        string
	OllamaHost      string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Default topics applied by hooks (comma-separated in the env).
	DefaultTopics []string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Dir: getEnv("CTXKEEP_DIR", ""),

		LogFile:  getEnv("CTXKEEP_LOG_FILE", ""),
		LogLevel: parseLogLevel(getEnv("CTXKEEP_LOG_LEVEL", "INFO")),

		ServerPort: getEnv("CTXKEEP_SERVER_PORT", "8474"),

		LLMProvider:     parseProvider(getEnv("CTXKEEP_LLM_PROVIDER", "none")),
		LLMModel:        getEnv("CTXKEEP_LLM_MODEL", ""),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),

		DefaultTopics: splitTopics(getEnv("CTXKEEP_TOPICS", "")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseProvider(s string) Provider {
	switch Provider(strings.ToLower(s)) {
	case ProviderOllama, ProviderOpenAI, ProviderAnthropic, ProviderBedrock:
		return Provider(strings.ToLower(s))
	default:
		return ProviderNone
	}
}

// splitTopics parses a comma-separated topic list, dropping empty items.
func splitTopics(s string) []string {
	if s == "" {
		return nil
	}
	var topics []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}
