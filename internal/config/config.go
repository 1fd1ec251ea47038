// Package config provides configuration loading for automark.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultBaseURL is the OpenAI-compatible endpoint used for standard keys.
	DefaultBaseURL = "https://api.openai.com/v1"

	// OpenRouterBaseURL is used when the configured key is an OpenRouter key.
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	openRouterKeyPrefix = "sk-or-v1"
)

// Config is the root configuration for automark.
type Config struct {
	LLM     LLMConfig     `koanf:"llm"`
	Memory  MemoryConfig  `koanf:"memory"`
	Logging LoggingConfig `koanf:"logging"`
}

// LLMConfig configures the text-completion service.
type LLMConfig struct {
	// Provider selects the completion backend: "openai" (any OpenAI-compatible
	// endpoint) or "mock" (deterministic offline responses).
	Provider string `koanf:"provider"`
	APIKey   string `koanf:"api_key"`
	BaseURL  string `koanf:"base_url"`
	Model    string `koanf:"model"`
	// TimeoutSeconds bounds each completion call.
	TimeoutSeconds int `koanf:"timeout_seconds"`
}

// MemoryConfig configures the optional campaign memory.
type MemoryConfig struct {
	Enabled        bool   `koanf:"enabled"`
	EmbeddingModel string `koanf:"embedding_model"`
}

// LoggingConfig configures structured logging output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Timeout returns the completion call timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.BaseURL == "" {
		if strings.HasPrefix(cfg.LLM.APIKey, openRouterKeyPrefix) {
			cfg.LLM.BaseURL = OpenRouterBaseURL
		} else {
			cfg.LLM.BaseURL = DefaultBaseURL
		}
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
	if cfg.LLM.TimeoutSeconds <= 0 {
		cfg.LLM.TimeoutSeconds = 60
	}
	if cfg.Memory.EmbeddingModel == "" {
		cfg.Memory.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// Validate checks the configuration for fatal problems. A missing credential
// is a construction-time failure and is never retried.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai":
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			return fmt.Errorf("llm.api_key is required (set AUTOMARK_LLM_API_KEY or OPENAI_API_KEY)")
		}
	case "mock":
		// No credential needed.
	default:
		return fmt.Errorf("unknown llm.provider %q (want \"openai\" or \"mock\")", c.LLM.Provider)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return fmt.Errorf("llm.timeout_seconds must be positive")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
