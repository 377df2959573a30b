package ai

import (
	"errors"
	"fmt"
)

var (
	ErrCredentialMissing = errors.New("credential missing")
	ErrTransport         = errors.New("transport error")
	ErrProvider          = errors.New("provider error")
	ErrResponseParse     = errors.New("response parse error")
)

// ProviderError is a failure scoped to a single provider call.
// Kind is one of the sentinel errors above.
type ProviderError struct {
	Kind     error
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName is the short label used for logs and metrics.
func (e *ProviderError) KindName() string {
	switch e.Kind {
	case ErrCredentialMissing:
		return "credential_missing"
	case ErrTransport:
		return "transport"
	case ErrProvider:
		return "provider"
	case ErrResponseParse:
		return "response_parse"
	default:
		return "unknown"
	}
}

func credentialMissing(provider, envVar string) *ProviderError {
	return &ProviderError{
		Kind:     ErrCredentialMissing,
		Provider: provider,
		Message:  envVar + " is not configured",
	}
}

func transportError(provider string, err error) *ProviderError {
	return &ProviderError{Kind: ErrTransport, Provider: provider, Message: err.Error(), Err: err}
}

func providerError(provider, msg string) *ProviderError {
	return &ProviderError{Kind: ErrProvider, Provider: provider, Message: msg}
}

// ParseError wraps an extraction failure for provider.
func ParseError(provider string, err error) *ProviderError {
	return &ProviderError{Kind: ErrResponseParse, Provider: provider, Message: err.Error(), Err: err}
}
