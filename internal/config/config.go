// Package config loads the application configuration: file locations,
// logging, the admin server, and LLM model routing.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Supported LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Model tiers for cost-based routing.
const (
	TierFast     = "fast"
	TierBalanced = "balanced"
	TierPremium  = "premium"
)

// Model describes one routable chat model.
type Model struct {
	Provider    string  `yaml:"provider"`
	Name        string  `yaml:"name"`
	Credential  string  `yaml:"credential"` // credential name holding the API key
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	CostPer1K   float64 `yaml:"cost_per_1k_tokens"`
	Vision      bool    `yaml:"vision"`
}

// Config is the full application configuration.
type Config struct {
	Paths struct {
		CredentialsFile string `yaml:"credentials_file"`
		KeyFile         string `yaml:"key_file"`
		AuditDB         string `yaml:"audit_db"`
	} `yaml:"paths"`
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Server struct {
		Addr          string `yaml:"addr"`
		AdminTokenEnv string `yaml:"admin_token_env"`
	} `yaml:"server"`
	LLM struct {
		PreferredProvider string             `yaml:"preferred_provider"`
		Fallbacks         []string           `yaml:"fallbacks"`
		Tiers             map[string][]Model `yaml:"tiers"`
	} `yaml:"llm"`
}

// Default returns the built-in configuration, including the standard model
// routing tables.
func Default() Config {
	var cfg Config
	cfg.Paths.CredentialsFile = ".credentials.json"
	cfg.Paths.KeyFile = ".credential_key"
	cfg.Paths.AuditDB = ".credential_audit.db"
	cfg.Logging.Level = "info"
	cfg.Server.Addr = "127.0.0.1:7420"
	cfg.Server.AdminTokenEnv = "AUTIFYME_ADMIN_TOKEN"
	cfg.LLM.PreferredProvider = ProviderOpenAI
	cfg.LLM.Fallbacks = []string{ProviderAnthropic}
	cfg.LLM.Tiers = map[string][]Model{
		TierFast: {
			{Provider: ProviderOpenAI, Name: "gpt-4o-mini", Credential: "OPENAI_API_KEY",
				MaxTokens: 4000, Temperature: 0.1, CostPer1K: 0.00015},
			{Provider: ProviderAnthropic, Name: "claude-3-haiku-20240307", Credential: "ANTHROPIC_API_KEY",
				MaxTokens: 4000, Temperature: 0.1, CostPer1K: 0.00025},
		},
		TierBalanced: {
			{Provider: ProviderOpenAI, Name: "gpt-4o", Credential: "OPENAI_API_KEY",
				MaxTokens: 4000, Temperature: 0.1, CostPer1K: 0.005, Vision: true},
			{Provider: ProviderAnthropic, Name: "claude-3-sonnet-20240229", Credential: "ANTHROPIC_API_KEY",
				MaxTokens: 4000, Temperature: 0.1, CostPer1K: 0.003, Vision: true},
		},
		TierPremium: {
			{Provider: ProviderOpenAI, Name: "gpt-4-turbo", Credential: "OPENAI_API_KEY",
				MaxTokens: 4000, Temperature: 0.1, CostPer1K: 0.01, Vision: true},
			{Provider: ProviderAnthropic, Name: "claude-3-opus-20240229", Credential: "ANTHROPIC_API_KEY",
				MaxTokens: 4000, Temperature: 0.1, CostPer1K: 0.015, Vision: true},
		},
	}
	return cfg
}

// Load reads the YAML config at path over the defaults. A missing file is not
// an error; environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("AUTIFYME_CREDENTIALS_FILE"); v != "" {
		cfg.Paths.CredentialsFile = v
	}
	if v := os.Getenv("AUTIFYME_KEY_FILE"); v != "" {
		cfg.Paths.KeyFile = v
	}
	if v := os.Getenv("AUTIFYME_AUDIT_DB"); v != "" {
		cfg.Paths.AuditDB = v
	}
	if v := os.Getenv("AUTIFYME_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("AUTIFYME_LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

// ModelFor picks the cheapest model in the tier that satisfies the vision
// requirement, preferring the configured provider. Returns false when the
// tier has no matching model.
func (c *Config) ModelFor(tier string, requiresVision bool) (Model, bool) {
	candidates := c.LLM.Tiers[tier]
	if requiresVision {
		var withVision []Model
		for _, m := range candidates {
			if m.Vision {
				withVision = append(withVision, m)
			}
		}
		candidates = withVision
	}
	if len(candidates) == 0 {
		return Model{}, false
	}

	cheapest := func(models []Model) (Model, bool) {
		if len(models) == 0 {
			return Model{}, false
		}
		best := models[0]
		for _, m := range models[1:] {
			if m.CostPer1K < best.CostPer1K {
				best = m
			}
		}
		return best, true
	}

	var preferred []Model
	for _, m := range candidates {
		if m.Provider == c.LLM.PreferredProvider {
			preferred = append(preferred, m)
		}
	}
	if m, ok := cheapest(preferred); ok {
		return m, true
	}
	return cheapest(candidates)
}
