package ai

import (
	"path/filepath"
	"testing"

	"github.com/gitbro/gitbro/internal/pkg/config"
	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

func newTestStore(t *testing.T) *config.Store {
	t.Helper()
	store, err := config.NewStore(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestResolve(t *testing.T) {
	t.Run("no selection and no explicit id", func(t *testing.T) {
		store := newTestStore(t)
		_, err := Resolve(store, "")
		if !apperrors.IsCode(err, apperrors.ErrNotConfigured) {
			t.Errorf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("unknown explicit id", func(t *testing.T) {
		store := newTestStore(t)
		_, err := Resolve(store, "bard")
		if !apperrors.IsCode(err, apperrors.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("remote provider without credential", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetProvider(config.ProviderOpenAI); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := Resolve(store, "")
		if !apperrors.IsCode(err, apperrors.ErrMissingCredential) {
			t.Errorf("expected ErrMissingCredential, got %v", err)
		}
	})

	t.Run("stored selection resolves", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetProvider(config.ProviderClaude); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.SetAPIKey(config.ProviderClaude, "test-key"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		p, err := Resolve(store, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name() != "claude" {
			t.Errorf("expected claude, got %q", p.Name())
		}
	})

	t.Run("explicit id overrides stored selection", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetProvider(config.ProviderOpenAI); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.SetAPIKey(config.ProviderOpenAI, "sk-test"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		p, err := Resolve(store, config.ProviderOllama)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name() != "ollama" {
			t.Errorf("expected ollama, got %q", p.Name())
		}
	})

	t.Run("ollama needs no credential", func(t *testing.T) {
		store := newTestStore(t)
		p, err := Resolve(store, config.ProviderOllama)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Name() != "ollama" {
			t.Errorf("expected ollama, got %q", p.Name())
		}
	})

	t.Run("stored model and temperature flow into the instance", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetAPIKey(config.ProviderOpenAI, "sk-test"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.SetModel(config.ProviderOpenAI, "gpt-4"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.SetTemperature(1.2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		p, err := Resolve(store, config.ProviderOpenAI)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		op, ok := p.(*OpenAIProvider)
		if !ok {
			t.Fatalf("expected *OpenAIProvider, got %T", p)
		}
		if op.config.Model != "gpt-4" {
			t.Errorf("expected gpt-4, got %q", op.config.Model)
		}
		if op.config.Temperature != 1.2 {
			t.Errorf("expected 1.2, got %v", op.config.Temperature)
		}
	})

	t.Run("fresh instance per call", func(t *testing.T) {
		store := newTestStore(t)
		p1, err := Resolve(store, config.ProviderOllama)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p2, err := Resolve(store, config.ProviderOllama)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p1 == p2 {
			t.Error("expected distinct instances")
		}
	})
}
