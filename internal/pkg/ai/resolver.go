package ai

import (
	"fmt"

	"github.com/gitbro/gitbro/internal/pkg/config"
	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

// Resolve builds a fresh provider instance from current settings. An
// explicit identifier overrides the stored selection; with neither present
// the caller is told to run setup first. Instances are never cached, so a
// settings change is visible on the next call.
func Resolve(store *config.Store, explicit string) (Provider, error) {
	id := explicit
	if id == "" {
		id = store.Provider()
	}
	if id == "" {
		return nil, apperrors.NewNotConfiguredError()
	}
	if !config.IsKnownProvider(id) {
		return nil, apperrors.NewInvalidArgumentError(
			fmt.Sprintf("unknown provider: %s (valid: openai, gemini, claude, ollama)", id))
	}

	cfg := Config{
		APIKey:      store.APIKey(id),
		Model:       store.Model(id),
		Temperature: store.Temperature(),
	}

	switch id {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case config.ProviderGemini:
		return NewGeminiProvider(cfg)
	case config.ProviderClaude:
		return NewClaudeProvider(cfg)
	case config.ProviderOllama:
		cfg.Endpoint = store.Endpoint(id)
		return NewOllamaProvider(cfg)
	default:
		return nil, apperrors.NewInvalidArgumentError(fmt.Sprintf("unknown provider: %s", id))
	}
}
