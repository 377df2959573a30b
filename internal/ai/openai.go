package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const openAIChatPath = "/v1/chat/completions"

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     *int `json:"prompt_tokens"`
		CompletionTokens *int `json:"completion_tokens"`
	} `json:"usage,omitempty"`
}

// OpenAIBackend calls the OpenAI chat completions endpoint.
type OpenAIBackend struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float32
	httpClient  *http.Client
}

func NewOpenAIBackend(apiKey, model, baseURL string, temperature float32, timeout time.Duration) *OpenAIBackend {
	return &OpenAIBackend{
		apiKey:      apiKey,
		model:       model,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (b *OpenAIBackend) Name() string  { return "OpenAI" }
func (b *OpenAIBackend) Model() string { return b.model }

// Complete sends prompt as one user message and returns the first choice.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (*Completion, error) {
	if strings.TrimSpace(b.apiKey) == "" {
		return nil, credentialMissing(b.Name(), "OPENAI_API_KEY")
	}

	body, err := postJSON(ctx, b.httpClient, b.Name(), b.baseURL+openAIChatPath,
		map[string]string{"Authorization": "Bearer " + b.apiKey},
		chatRequest{
			Model:       b.model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: b.temperature,
		})
	if err != nil {
		return nil, err
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, ParseError(b.Name(), fmt.Errorf("unmarshal response: %w", err))
	}
	if len(cr.Choices) == 0 {
		return nil, providerError(b.Name(), "API returned empty choices array")
	}

	out := &Completion{Text: cr.Choices[0].Message.Content}
	if cr.Usage != nil {
		if cr.Usage.PromptTokens != nil {
			out.Usage.InputTokens = Tokens(*cr.Usage.PromptTokens)
		}
		if cr.Usage.CompletionTokens != nil {
			out.Usage.OutputTokens = Tokens(*cr.Usage.CompletionTokens)
		}
	}
	return out, nil
}
