// Package llm builds chat model clients from the routing configuration,
// with API keys supplied by the credential store.
package llm

import (
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/akeshr/autifyme/internal/config"
	"github.com/akeshr/autifyme/internal/service"
)

var (
	ErrNoModel        = errors.New("no model available for tier")
	ErrMissingAPIKey  = errors.New("api key not found")
	ErrUnknownBackend = errors.New("unsupported llm provider")
)

// Factory creates chat models for configured tiers.
type Factory struct {
	cfg config.Config
	src service.Source
}

// NewFactory builds a factory over the config and credential source.
func NewFactory(cfg config.Config, src service.Source) *Factory {
	return &Factory{cfg: cfg, src: src}
}

// ForTier picks a model for the tier and builds a client for it.
func (f *Factory) ForTier(tier string, requiresVision bool) (llms.Model, config.Model, error) {
	m, ok := f.cfg.ModelFor(tier, requiresVision)
	if !ok {
		return nil, config.Model{}, fmt.Errorf("%w: %s (vision=%v)", ErrNoModel, tier, requiresVision)
	}
	client, err := f.New(m)
	return client, m, err
}

// New builds a chat model client for one model config. The error never
// contains the key value, only the credential name.
func (f *Factory) New(m config.Model) (llms.Model, error) {
	switch m.Provider {
	case config.ProviderOpenAI:
		key, ok := f.src.Get(m.Credential)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, m.Credential)
		}
		return openai.New(openai.WithToken(key), openai.WithModel(m.Name))

	case config.ProviderAnthropic:
		key, ok := f.src.Get(m.Credential)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, m.Credential)
		}
		return anthropic.New(anthropic.WithToken(key), anthropic.WithModel(m.Name))

	case config.ProviderOllama:
		return ollama.New(ollama.WithModel(m.Name))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, m.Provider)
	}
}
