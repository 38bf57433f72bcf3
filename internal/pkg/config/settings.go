// Package config provides the persisted settings store for gitbro.
package config

// Provider identifiers for the four supported backends.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderOllama = "ollama"
)

// KnownProviders is the closed set of valid provider identifiers.
var KnownProviders = []string{ProviderOpenAI, ProviderGemini, ProviderClaude, ProviderOllama}

// defaultModels maps each provider to its built-in default model.
var defaultModels = map[string]string{
	ProviderOpenAI: "gpt-3.5-turbo",
	ProviderGemini: "gemini-pro",
	ProviderClaude: "claude-3-haiku-20240307",
	ProviderOllama: "llama3.2",
}

const (
	// DefaultTemperature is the sampling temperature used when none is stored.
	DefaultTemperature = 0.7
	// MinTemperature and MaxTemperature bound the valid temperature range.
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// Settings is the full persisted record. One file per user holds the
// provider selection, per-provider credentials, models and endpoint
// overrides, and the global sampling temperature.
type Settings struct {
	Provider    string            `mapstructure:"provider" json:"provider"`
	Credentials map[string]string `mapstructure:"credentials" json:"credentials"`
	Models      map[string]string `mapstructure:"models" json:"models"`
	Endpoints   map[string]string `mapstructure:"endpoints" json:"endpoints"`
	Temperature float64           `mapstructure:"temperature" json:"temperature"`
}

// DefaultSettings returns the record synthesized when no file exists:
// no provider, empty credentials, default models, temperature 0.7.
func DefaultSettings() *Settings {
	return &Settings{
		Provider:    "",
		Credentials: map[string]string{},
		Models:      map[string]string{},
		Endpoints:   map[string]string{},
		Temperature: DefaultTemperature,
	}
}

// IsKnownProvider reports whether id is one of the four valid identifiers.
func IsKnownProvider(id string) bool {
	for _, p := range KnownProviders {
		if p == id {
			return true
		}
	}
	return false
}

// DefaultModel returns the built-in default model for a provider, or ""
// for an unknown identifier.
func DefaultModel(id string) string {
	return defaultModels[id]
}

// ClampTemperature clamps t into [MinTemperature, MaxTemperature].
// Out-of-range inputs are clamped, never rejected.
func ClampTemperature(t float64) float64 {
	if t < MinTemperature {
		return MinTemperature
	}
	if t > MaxTemperature {
		return MaxTemperature
	}
	return t
}
