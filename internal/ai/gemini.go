package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiBackend calls Gemini through Google's official SDK.
type GeminiBackend struct {
	apiKey      string
	model       string
	temperature float32
	timeout     time.Duration
	opts        []option.ClientOption
}

// NewGeminiBackend keeps only configuration; the SDK client is created per call so a
// missing key is reported by Complete rather than at startup.
func NewGeminiBackend(apiKey, model string, temperature float32, timeout time.Duration, opts ...option.ClientOption) *GeminiBackend {
	return &GeminiBackend{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		timeout:     timeout,
		opts:        opts,
	}
}

func (b *GeminiBackend) Name() string  { return "Google Gemini" }
func (b *GeminiBackend) Model() string { return b.model }

// Complete asks the model for a JSON reply and returns its text parts.
func (b *GeminiBackend) Complete(ctx context.Context, prompt string) (*Completion, error) {
	if strings.TrimSpace(b.apiKey) == "" {
		return nil, credentialMissing(b.Name(), "GEMINI_API_KEY")
	}
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	opts := append([]option.ClientOption{option.WithAPIKey(b.apiKey)}, b.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, transportError(b.Name(), fmt.Errorf("create client: %w", err))
	}
	defer client.Close()

	model := client.GenerativeModel(b.model)
	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(b.temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, b.classify(err)
	}
	return geminiCompletion(b.Name(), resp)
}

func (b *GeminiBackend) classify(err error) *ProviderError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return providerError(b.Name(), apiErr.Message)
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return transportError(b.Name(), err)
	}
	return providerError(b.Name(), err.Error())
}

func geminiCompletion(provider string, resp *genai.GenerateContentResponse) (*Completion, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, providerError(provider, "API returned empty candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return nil, providerError(provider, "API returned empty text parts")
	}

	out := &Completion{Text: text.String()}
	if md := resp.UsageMetadata; md != nil {
		out.Usage.InputTokens = Tokens(int(md.PromptTokenCount))
		out.Usage.OutputTokens = Tokens(int(md.CandidatesTokenCount))
	}
	return out, nil
}
