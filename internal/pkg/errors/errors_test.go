package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorCodeExitCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrNotConfigured, 1},
		{ErrMissingCredential, 1},
		{ErrInvalidArgument, 1},
		{ErrGitCommandFailed, 2},
		{ErrConfigIO, 2},
		{ErrProviderFailed, 3},
	}
	for _, tt := range tests {
		if got := tt.code.ExitCode(); got != tt.want {
			t.Errorf("%s: expected exit code %d, got %d", tt.code, tt.want, got)
		}
	}
}

func TestAppErrorError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := New(ErrInvalidArgument, "bad value")
		if err.Error() != "bad value" {
			t.Errorf("expected bad value, got %q", err.Error())
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := Wrap(cause, ErrConfigIO, "failed to write")
		if err.Error() != "failed to write: underlying" {
			t.Errorf("unexpected message: %q", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("expected cause to be unwrappable")
		}
	})
}

func TestGetExitCode(t *testing.T) {
	if got := GetExitCode(NewProviderError("openai", errors.New("boom"))); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := GetExitCode(NewGitError(errors.New("exit 128"), "fatal: not a repo")); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := GetExitCode(errors.New("plain")); got != 1 {
		t.Errorf("expected 1 for plain errors, got %d", got)
	}
	if got := GetExitCode(fmt.Errorf("wrapped: %w", NewNotConfiguredError())); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestIsCode(t *testing.T) {
	err := NewMissingCredentialError("claude")
	if !IsCode(err, ErrMissingCredential) {
		t.Error("expected IsCode to match")
	}
	if IsCode(err, ErrNotConfigured) {
		t.Error("expected IsCode to reject other codes")
	}
	if IsCode(errors.New("plain"), ErrMissingCredential) {
		t.Error("expected IsCode false for plain errors")
	}
	wrapped := fmt.Errorf("context: %w", err)
	if !IsCode(wrapped, ErrMissingCredential) {
		t.Error("expected IsCode to match through wrapping")
	}
}

func TestFormatError(t *testing.T) {
	t.Run("includes suggestion", func(t *testing.T) {
		out := FormatError(NewNotConfiguredError())
		if !strings.Contains(out, "no AI provider configured") {
			t.Errorf("expected message, got %q", out)
		}
		if !strings.Contains(out, "Suggestion:") {
			t.Errorf("expected suggestion line, got %q", out)
		}
		if !strings.Contains(out, "gitbro setup") {
			t.Errorf("expected setup hint, got %q", out)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		out := FormatError(errors.New("something broke"))
		if out != "Error: something broke" {
			t.Errorf("unexpected output: %q", out)
		}
	})

	t.Run("nil error", func(t *testing.T) {
		if out := FormatError(nil); out != "" {
			t.Errorf("expected empty string, got %q", out)
		}
	})

	t.Run("masks API keys", func(t *testing.T) {
		key := "sk-abcdefghijklmnopqrstuvwxyz123456"
		out := FormatError(NewProviderError("openai", fmt.Errorf("invalid key %s", key)))
		if strings.Contains(out, key) {
			t.Errorf("expected key to be masked, got %q", out)
		}
		if !strings.Contains(out, "3456") {
			t.Errorf("expected last 4 chars to survive, got %q", out)
		}
	})
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret("abc"); got != "****" {
		t.Errorf("expected full mask for short secrets, got %q", got)
	}
	if got := MaskSecret("sk-12345678"); got != "*******5678" {
		t.Errorf("unexpected mask: %q", got)
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	t.Run("masks openai-style keys", func(t *testing.T) {
		msg := "auth failed for sk-abcdefghijklmnopqrst"
		out := SanitizeErrorMessage(msg)
		if strings.Contains(out, "sk-abcdefghijklmnopqrst") {
			t.Errorf("expected key masked, got %q", out)
		}
	})

	t.Run("masks google-style keys", func(t *testing.T) {
		msg := "bad key AIzaSyABCDEFGHIJKLMNOPQRST"
		out := SanitizeErrorMessage(msg)
		if strings.Contains(out, "AIzaSyABCDEFGHIJKLMNOPQRST") {
			t.Errorf("expected key masked, got %q", out)
		}
	})

	t.Run("leaves ordinary text alone", func(t *testing.T) {
		msg := "connection refused to localhost:11434"
		if out := SanitizeErrorMessage(msg); out != msg {
			t.Errorf("expected unchanged, got %q", out)
		}
	})
}
