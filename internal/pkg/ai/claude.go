package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

const (
	// DefaultClaudeModel is the default model for Claude.
	DefaultClaudeModel = "claude-3-haiku-20240307"

	// DefaultClaudeEndpoint is the Anthropic messages API endpoint.
	DefaultClaudeEndpoint = "https://api.anthropic.com/v1/messages"

	// claudeAPIVersion is the required anthropic-version header value.
	claudeAPIVersion = "2023-06-01"
)

// ClaudeProvider implements the Provider interface for Anthropic Claude.
// The messages API has its own request shape: the system instruction is a
// top-level field separate from the messages array, and the response body
// carries a list of content blocks.
type ClaudeProvider struct {
	httpClient *http.Client
	config     Config
}

// claudeRequest is the messages API request body.
type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	System      string          `json:"system"`
	Messages    []claudeMessage `json:"messages"`
}

// claudeMessage is a single conversation turn.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the messages API response body.
type claudeResponse struct {
	Content []claudeContentBlock `json:"content"`
	Error   *claudeAPIErrorBody  `json:"error,omitempty"`
}

// claudeContentBlock is one element of the response content list.
type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// claudeAPIErrorBody is the error object Anthropic returns on failures.
type claudeAPIErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewClaudeProvider creates a new Claude provider.
func NewClaudeProvider(config Config) (*ClaudeProvider, error) {
	if config.APIKey == "" {
		return nil, apperrors.NewMissingCredentialError("claude")
	}
	if config.Model == "" {
		config.Model = DefaultClaudeModel
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultClaudeEndpoint
	}

	return &ClaudeProvider{
		httpClient: newHTTPClient(),
		config:     config,
	}, nil
}

// Name returns the provider name.
func (p *ClaudeProvider) Name() string {
	return "claude"
}

// Generate produces text from the messages API. The result is the text of
// the first content block, trimmed.
func (p *ClaudeProvider) Generate(ctx context.Context, content, instruction string) (string, error) {
	req := claudeRequest{
		Model:       p.config.Model,
		MaxTokens:   DefaultMaxTokens,
		Temperature: p.config.Temperature,
		System:      instructionOrDefault(instruction),
		Messages: []claudeMessage{
			{Role: "user", Content: content},
		},
	}

	apperrors.LogAPIRequest(p.Name(), p.config.Endpoint, p.config.Model, len(content))
	startTime := time.Now()

	resp, err := p.doRequest(ctx, req)
	if err != nil {
		return "", apperrors.NewProviderError(p.Name(), err)
	}

	if len(resp.Content) == 0 {
		return "", apperrors.NewProviderError(p.Name(), errors.New("empty response from backend"))
	}

	text := strings.TrimSpace(resp.Content[0].Text)
	apperrors.LogAPIResponse(p.Name(), 200, len(text), time.Since(startTime))

	if text == "" {
		return "", apperrors.NewProviderError(p.Name(), errors.New("backend returned no text"))
	}
	return text, nil
}

// doRequest performs the HTTP call and decodes the response body.
func (p *ClaudeProvider) doRequest(ctx context.Context, req claudeRequest) (*claudeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.config.APIKey)
	httpReq.Header.Set("anthropic-version", claudeAPIVersion)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		// Prefer the structured error message when the body parses.
		var errResp claudeResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != nil {
			return nil, &BackendAPIError{
				StatusCode: httpResp.StatusCode,
				Message:    errResp.Error.Message,
			}
		}
		return nil, &BackendAPIError{
			StatusCode: httpResp.StatusCode,
			Message:    string(respBody),
		}
	}

	var resp claudeResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &resp, nil
}

// BackendAPIError represents a non-2xx HTTP response from a raw-HTTP backend.
type BackendAPIError struct {
	StatusCode int
	Message    string
}

func (e *BackendAPIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, strings.TrimSpace(e.Message))
}
