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
	// DefaultOllamaModel is the default model for Ollama.
	DefaultOllamaModel = "llama3.2"

	// DefaultOllamaEndpoint is the local Ollama server address.
	DefaultOllamaEndpoint = "http://localhost:11434"
)

// OllamaProvider implements the Provider interface for a local Ollama
// server. No credential is required; the endpoint defaults to localhost and
// can point at any reachable Ollama instance.
type OllamaProvider struct {
	httpClient *http.Client
	config     Config
}

// ollamaRequest is the /api/generate request body. The instruction and
// content are combined into a single prompt because the generate endpoint
// has no separate system field across all server versions.
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

// ollamaOptions carries per-request sampling parameters.
type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

// ollamaResponse is the non-streaming /api/generate response body.
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// NewOllamaProvider creates a new Ollama provider.
func NewOllamaProvider(config Config) (*OllamaProvider, error) {
	if config.Endpoint == "" {
		config.Endpoint = DefaultOllamaEndpoint
	}
	if !strings.HasPrefix(config.Endpoint, "http://") && !strings.HasPrefix(config.Endpoint, "https://") {
		return nil, apperrors.NewInvalidArgumentError(
			fmt.Sprintf("invalid Ollama endpoint: %s", config.Endpoint))
	}
	config.Endpoint = strings.TrimSuffix(config.Endpoint, "/")
	if config.Model == "" {
		config.Model = DefaultOllamaModel
	}

	return &OllamaProvider{
		httpClient: newHTTPClient(),
		config:     config,
	}, nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Generate produces text from the /api/generate endpoint with streaming
// disabled.
func (p *OllamaProvider) Generate(ctx context.Context, content, instruction string) (string, error) {
	req := ollamaRequest{
		Model:  p.config.Model,
		Prompt: instructionOrDefault(instruction) + "\n\n" + content,
		Stream: false,
		Options: ollamaOptions{
			Temperature: p.config.Temperature,
		},
	}

	apperrors.LogAPIRequest(p.Name(), p.config.Endpoint, p.config.Model, len(content))
	startTime := time.Now()

	resp, err := p.doRequest(ctx, req)
	if err != nil {
		return "", apperrors.NewProviderError(p.Name(), err)
	}

	text := strings.TrimSpace(resp.Response)
	apperrors.LogAPIResponse(p.Name(), 200, len(text), time.Since(startTime))

	if text == "" {
		return "", apperrors.NewProviderError(p.Name(), errors.New("backend returned no text"))
	}
	return text, nil
}

// doRequest performs the HTTP call and decodes the response body.
func (p *OllamaProvider) doRequest(ctx context.Context, req ollamaRequest) (*ollamaResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.config.Endpoint + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

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
		var errResp ollamaResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return nil, &BackendAPIError{
				StatusCode: httpResp.StatusCode,
				Message:    errResp.Error,
			}
		}
		return nil, &BackendAPIError{
			StatusCode: httpResp.StatusCode,
			Message:    string(respBody),
		}
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Error != "" {
		return nil, &BackendAPIError{StatusCode: httpResp.StatusCode, Message: resp.Error}
	}

	return &resp, nil
}
