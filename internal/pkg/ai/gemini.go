package ai

import (
	"context"

	"github.com/sashabaranov/go-openai"

	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

const (
	// DefaultGeminiModel is the default model for Gemini.
	DefaultGeminiModel = "gemini-pro"

	// DefaultGeminiEndpoint is Google's OpenAI-compatible endpoint.
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

// GeminiProvider implements the Provider interface for Google Gemini.
// Gemini exposes an OpenAI-compatible chat-completions surface, so the
// go-openai client is pointed at Google's endpoint.
type GeminiProvider struct {
	client *openai.Client
	config Config
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(config Config) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, apperrors.NewMissingCredentialError("gemini")
	}
	if config.Model == "" {
		config.Model = DefaultGeminiModel
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultGeminiEndpoint
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.Endpoint
	clientConfig.HTTPClient = newHTTPClient()

	return &GeminiProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Generate produces text from Gemini's chat-completions surface.
func (p *GeminiProvider) Generate(ctx context.Context, content, instruction string) (string, error) {
	return chatCompletion(ctx, p.client, p.Name(), p.config, content, instruction)
}
