// Package errors provides error types and handling utilities for gitbro.
package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// User errors (Exit Code 1)
	ErrNotConfigured ErrorCode = iota + 100
	ErrMissingCredential
	ErrInvalidArgument

	// System errors (Exit Code 2)
	ErrGitCommandFailed ErrorCode = iota + 200
	ErrConfigIO

	// External errors (Exit Code 3)
	ErrProviderFailed ErrorCode = iota + 300
)

// ExitCode returns the appropriate exit code for an error code.
func (c ErrorCode) ExitCode() int {
	switch {
	case c >= 100 && c < 200:
		return 1 // User errors
	case c >= 200 && c < 300:
		return 2 // System errors
	case c >= 300:
		return 3 // External errors
	default:
		return 1
	}
}

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrNotConfigured:
		return "NotConfigured"
	case ErrMissingCredential:
		return "MissingCredential"
	case ErrInvalidArgument:
		return "InvalidArgument"
	case ErrGitCommandFailed:
		return "GitCommandFailed"
	case ErrConfigIO:
		return "ConfigIO"
	case ErrProviderFailed:
		return "ProviderFailed"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with context.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// GetAppError extracts an AppError from an error chain.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetExitCode returns the appropriate exit code for an error.
func GetExitCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code.ExitCode()
	}
	return 1
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// Common error constructors with suggestions

// NewNotConfiguredError creates an error for a missing provider selection.
func NewNotConfiguredError() *AppError {
	return &AppError{
		Code:       ErrNotConfigured,
		Message:    "no AI provider configured",
		Suggestion: "Run 'gitbro setup' to choose and configure a provider",
	}
}

// NewMissingCredentialError creates an error for a remote provider without a stored key.
func NewMissingCredentialError(provider string) *AppError {
	return &AppError{
		Code:       ErrMissingCredential,
		Message:    fmt.Sprintf("%s API key not configured", provider),
		Suggestion: fmt.Sprintf("Run 'gitbro setup %s' to store a key", provider),
	}
}

// NewInvalidArgumentError creates an error for a rejected input value.
func NewInvalidArgumentError(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidArgument,
		Message: message,
	}
}

// NewGitError creates an error for git command failures.
func NewGitError(err error, stderr string) *AppError {
	appErr := &AppError{
		Code:    ErrGitCommandFailed,
		Message: "git command failed",
		Cause:   err,
	}
	if stderr != "" {
		appErr.Message = fmt.Sprintf("git command failed: %s", strings.TrimSpace(stderr))
	}
	return appErr
}

// NewConfigIOError creates an error for settings file read/write failures.
func NewConfigIOError(err error, message string) *AppError {
	return &AppError{
		Code:    ErrConfigIO,
		Message: message,
		Cause:   err,
	}
}

// NewProviderError creates an error for AI backend failures. The provider
// name and underlying cause text always survive into the rendered message.
func NewProviderError(provider string, err error) *AppError {
	return &AppError{
		Code:       ErrProviderFailed,
		Message:    fmt.Sprintf("%s provider error", provider),
		Cause:      err,
		Suggestion: "Check your API key and network connectivity, then retry",
	}
}

// FormatError formats an error as a single user-facing line.
// API keys and other sensitive data are automatically masked.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	appErr := GetAppError(err)
	if appErr != nil {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(appErr.Error()))
		if appErr.Suggestion != "" {
			sb.WriteString("\n  Suggestion: ")
			sb.WriteString(appErr.Suggestion)
		}
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(SanitizeErrorMessage(err.Error()))
	}

	return sb.String()
}

// MaskSecret masks a secret, showing only the last 4 characters.
func MaskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

// SanitizeErrorMessage masks any API keys in error messages.
func SanitizeErrorMessage(msg string) string {
	return apiKeyPattern.ReplaceAllStringFunc(msg, MaskSecret)
}

// apiKeyPattern matches common API key shapes (sk-..., AIza...).
var apiKeyPattern = regexp.MustCompile(`(sk-[a-zA-Z0-9-_]{16,}|AIza[a-zA-Z0-9-_]{16,})`)
