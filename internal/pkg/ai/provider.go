// Package ai provides the uniform generation contract and the four backend
// implementations for gitbro.
package ai

import (
	"context"
	"net/http"
	"time"
)

const (
	// DefaultMaxTokens caps the generated output length.
	DefaultMaxTokens = 200

	// DefaultTimeout is the explicit per-request timeout for backend calls.
	DefaultTimeout = 60 * time.Second

	// DefaultInstruction is used only when a caller passes no instruction.
	// Callers in practice always pass one from the prompt table.
	DefaultInstruction = "Write a Git commit message for this diff. " +
		"Use imperative mood, keep subject ≤50 chars. " +
		"Output only the commit message."
)

// Config carries the construction parameters for a provider instance.
// Instances are ephemeral: built fresh from current settings for each
// generation request and discarded afterwards.
type Config struct {
	APIKey      string
	Model       string
	Endpoint    string
	Temperature float64
}

// Provider is the uniform capability contract: given free-form content and
// an instruction governing output style, produce generated text.
type Provider interface {
	// Generate blocks until the backend responds and returns trimmed text
	// with no surrounding metadata. Any transport failure, non-2xx status,
	// or empty response surfaces as a ProviderFailed error immediately;
	// no automatic retry is performed.
	Generate(ctx context.Context, content, instruction string) (string, error)
	Name() string
}

// instructionOrDefault substitutes the default instruction for an empty one.
func instructionOrDefault(instruction string) string {
	if instruction == "" {
		return DefaultInstruction
	}
	return instruction
}

// newHTTPClient builds the shared HTTP client shape used by all backends.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}
}
