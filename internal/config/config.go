package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Vault
	VaultDir string

	// Auth
	NotegenAPIKey string

	// Generation backend
	AnthropicAPIKey string
	AnthropicModel  string
	SystemPrompt    string
	GenMaxTokens    int
	Temperature     float64
	MaxPromptTokens int

	// Expansion
	MaxDepth          int
	IncludePlainLinks bool
	ExcludedCallouts  []string
	LinkExclusions    []string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		VaultDir: envOr("VAULT_DIR", "."),

		NotegenAPIKey: os.Getenv("NOTEGEN_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		SystemPrompt:    os.Getenv("SYSTEM_PROMPT"),
		GenMaxTokens:    envInt("GEN_MAX_TOKENS", 4096),
		Temperature:     envFloat("GEN_TEMPERATURE", 0.7),
		MaxPromptTokens: envInt("MAX_PROMPT_TOKENS", 100000),

		MaxDepth:          envInt("MAX_EXPANSION_DEPTH", 3),
		IncludePlainLinks: envBool("INCLUDE_PLAIN_LINKS", false),
		ExcludedCallouts:  envList("EXCLUDED_CALLOUTS"),
		LinkExclusions:    envList("LINK_EXCLUSIONS"),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 3
	}
	if cfg.GenMaxTokens <= 0 {
		cfg.GenMaxTokens = 4096
	}
	if cfg.Temperature < 0 || cfg.Temperature > 1 {
		cfg.Temperature = 0.7
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.VaultDir == "" {
		return fmt.Errorf("VAULT_DIR is required")
	}
	if c.NotegenAPIKey == "" {
		return fmt.Errorf("NOTEGEN_API_KEY is required")
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated value, dropping empty items.
func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
