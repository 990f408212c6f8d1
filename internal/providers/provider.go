package providers

import (
	"context"
	"fmt"

	"github.com/spacesedan/clinsight/internal/models"
)

// DiagnosticProvider turns a finished transcript into a structured
// diagnostic suggestion. Implementations issue exactly one outbound request
// per call and never retry internally.
type DiagnosticProvider interface {
	// Name returns the provider id used in comparison results and progress
	// events (e.g. "openai", "ollama").
	Name() string

	// Available reports whether the provider is configured well enough to
	// attempt a call.
	Available() bool

	// Diagnose requests a diagnostic suggestion for the transcript. Any
	// failure is returned as a *ProviderError.
	Diagnose(ctx context.Context, transcript string) (models.DiagnosticSuggestion, error)
}

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	// ErrorKindConfiguration: required credential missing, no call attempted.
	ErrorKindConfiguration ErrorKind = "configuration"
	// ErrorKindTransport: network failure or non-success HTTP status.
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindShape: response did not parse into the expected suggestion.
	ErrorKindShape ErrorKind = "shape"
)

// ProviderError is the only error type a provider call returns.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s error: %s: %v", e.Provider, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
