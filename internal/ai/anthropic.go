package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicMessagesPath = "/v1/messages"
	anthropicVersion      = "2023-06-01"
	anthropicMaxTokens    = 4096
)

type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage *struct {
		InputTokens  *int `json:"input_tokens"`
		OutputTokens *int `json:"output_tokens"`
	} `json:"usage,omitempty"`
}

// AnthropicBackend calls the Anthropic Messages API.
type AnthropicBackend struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float32
	httpClient  *http.Client
}

func NewAnthropicBackend(apiKey, model, baseURL string, temperature float32, timeout time.Duration) *AnthropicBackend {
	return &AnthropicBackend{
		apiKey:      apiKey,
		model:       model,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (b *AnthropicBackend) Name() string  { return "Anthropic" }
func (b *AnthropicBackend) Model() string { return b.model }

// Complete sends prompt as one user message and joins the text blocks of the reply.
func (b *AnthropicBackend) Complete(ctx context.Context, prompt string) (*Completion, error) {
	if strings.TrimSpace(b.apiKey) == "" {
		return nil, credentialMissing(b.Name(), "ANTHROPIC_API_KEY")
	}

	body, err := postJSON(ctx, b.httpClient, b.Name(), b.baseURL+anthropicMessagesPath,
		map[string]string{
			"x-api-key":         b.apiKey,
			"anthropic-version": anthropicVersion,
		},
		messagesRequest{
			Model:       b.model,
			MaxTokens:   anthropicMaxTokens,
			Temperature: b.temperature,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
		})
	if err != nil {
		return nil, err
	}

	var mr messagesResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return nil, ParseError(b.Name(), fmt.Errorf("unmarshal response: %w", err))
	}

	var text strings.Builder
	for _, block := range mr.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, providerError(b.Name(), "API returned no text content")
	}

	out := &Completion{Text: text.String()}
	if mr.Usage != nil {
		if mr.Usage.InputTokens != nil {
			out.Usage.InputTokens = Tokens(*mr.Usage.InputTokens)
		}
		if mr.Usage.OutputTokens != nil {
			out.Usage.OutputTokens = Tokens(*mr.Usage.OutputTokens)
		}
	}
	return out, nil
}
