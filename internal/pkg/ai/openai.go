package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

// DefaultOpenAIModel is the default model for OpenAI.
const DefaultOpenAIModel = "gpt-3.5-turbo"

// OpenAIProvider implements the Provider interface for OpenAI's
// chat-completions API.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, apperrors.NewMissingCredentialError("openai")
	}
	if config.Model == "" {
		config.Model = DefaultOpenAIModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.Endpoint != "" {
		clientConfig.BaseURL = config.Endpoint
	}
	clientConfig.HTTPClient = newHTTPClient()

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Generate produces text from the chat-completions API: instruction as the
// system message, content as the user message, first choice as the result.
func (p *OpenAIProvider) Generate(ctx context.Context, content, instruction string) (string, error) {
	return chatCompletion(ctx, p.client, p.Name(), p.config, content, instruction)
}

// chatCompletion performs a single chat-completions call. Shared by the
// OpenAI and Gemini providers, which speak the same wire format.
func chatCompletion(ctx context.Context, client *openai.Client, name string, config Config, content, instruction string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: instructionOrDefault(instruction),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: content,
			},
		},
		Temperature: float32(config.Temperature),
		MaxTokens:   DefaultMaxTokens,
	}

	apperrors.LogAPIRequest(name, config.Endpoint, config.Model, len(content))
	startTime := time.Now()

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapChatError(name, err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.NewProviderError(name, errors.New("empty response from backend"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	apperrors.LogAPIResponse(name, 200, len(text), time.Since(startTime))

	if text == "" {
		return "", apperrors.NewProviderError(name, errors.New("backend returned no text"))
	}
	return text, nil
}

// wrapChatError converts a go-openai failure into a ProviderFailed error
// that carries the backend name and the underlying cause, including the
// HTTP status for API-level failures.
func wrapChatError(name string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewProviderError(name, apiErr)
	}
	return apperrors.NewProviderError(name, err)
}
