package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

func TestNewOllamaProvider(t *testing.T) {
	t.Run("no credential required", func(t *testing.T) {
		p, err := NewOllamaProvider(Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.config.Endpoint != DefaultOllamaEndpoint {
			t.Errorf("expected %q, got %q", DefaultOllamaEndpoint, p.config.Endpoint)
		}
		if p.config.Model != DefaultOllamaModel {
			t.Errorf("expected %q, got %q", DefaultOllamaModel, p.config.Model)
		}
	})

	t.Run("rejects non-http endpoint", func(t *testing.T) {
		_, err := NewOllamaProvider(Config{Endpoint: "localhost:11434"})
		if !apperrors.IsCode(err, apperrors.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		p, err := NewOllamaProvider(Config{Endpoint: "http://remote:11434/"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.config.Endpoint != "http://remote:11434" {
			t.Errorf("expected trimmed endpoint, got %q", p.config.Endpoint)
		}
	})
}

func TestOllamaProviderName(t *testing.T) {
	p, _ := NewOllamaProvider(Config{})
	if p.Name() != "ollama" {
		t.Errorf("expected ollama, got %q", p.Name())
	}
}

func TestOllamaGenerate(t *testing.T) {
	t.Run("successful generation", func(t *testing.T) {
		var gotReq ollamaRequest
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"model": "llama3.2", "response": "  chore: bump deps  ", "done": true}`))
		}))
		defer server.Close()

		p, err := NewOllamaProvider(Config{Endpoint: server.URL, Temperature: 0.3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := p.Generate(context.Background(), "diff content", "write a commit message")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "chore: bump deps" {
			t.Errorf("expected trimmed message, got %q", got)
		}

		if gotPath != "/api/generate" {
			t.Errorf("expected /api/generate, got %q", gotPath)
		}
		if gotReq.Stream {
			t.Error("expected stream to be false")
		}
		if !strings.HasPrefix(gotReq.Prompt, "write a commit message\n\n") {
			t.Errorf("expected instruction prefixed to prompt, got %q", gotReq.Prompt)
		}
		if !strings.HasSuffix(gotReq.Prompt, "diff content") {
			t.Errorf("expected content in prompt, got %q", gotReq.Prompt)
		}
		if gotReq.Options.Temperature != 0.3 {
			t.Errorf("expected temperature 0.3, got %v", gotReq.Options.Temperature)
		}
	})

	t.Run("HTTP error carries status code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "model not found"}`))
		}))
		defer server.Close()

		p, _ := NewOllamaProvider(Config{Endpoint: server.URL})
		_, err := p.Generate(context.Background(), "diff", "instr")
		if err == nil {
			t.Fatal("expected error")
		}
		if !apperrors.IsCode(err, apperrors.ErrProviderFailed) {
			t.Errorf("expected ErrProviderFailed, got %v", err)
		}
		if !strings.Contains(err.Error(), "500") {
			t.Errorf("expected status code in error, got %q", err.Error())
		}
		if !strings.Contains(err.Error(), "model not found") {
			t.Errorf("expected backend message in error, got %q", err.Error())
		}
	})

	t.Run("connection refused", func(t *testing.T) {
		p, _ := NewOllamaProvider(Config{Endpoint: "http://127.0.0.1:1"})
		_, err := p.Generate(context.Background(), "diff", "instr")
		if !apperrors.IsCode(err, apperrors.ErrProviderFailed) {
			t.Errorf("expected ErrProviderFailed, got %v", err)
		}
	})

	t.Run("empty response text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response": "   ", "done": true}`))
		}))
		defer server.Close()

		p, _ := NewOllamaProvider(Config{Endpoint: server.URL})
		_, err := p.Generate(context.Background(), "diff", "instr")
		if !apperrors.IsCode(err, apperrors.ErrProviderFailed) {
			t.Errorf("expected ErrProviderFailed, got %v", err)
		}
	})

	t.Run("error field in 200 body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error": "out of memory"}`))
		}))
		defer server.Close()

		p, _ := NewOllamaProvider(Config{Endpoint: server.URL})
		_, err := p.Generate(context.Background(), "diff", "instr")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "out of memory") {
			t.Errorf("expected backend message in error, got %q", err.Error())
		}
	})
}
