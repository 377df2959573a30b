package ai

import (
	"context"
)

// TextBackend defines the contract for one generative-text provider.
// Implementations exist for Anthropic, OpenAI and Gemini; tests substitute stubs.
type TextBackend interface {
	// Name is the provider label shown next to its metrics.
	Name() string

	// Model is the model identifier sent with every request.
	Model() string

	// Complete sends prompt as a single user message and returns the reply text.
	// Errors are always *ProviderError so callers can classify them with errors.Is.
	Complete(ctx context.Context, prompt string) (*Completion, error)
}
