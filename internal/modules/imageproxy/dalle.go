// README: OpenAI DALL-E image generation over REST.
package imageproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const dalleGenerationsPath = "/v1/images/generations"

type dalleRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type dalleResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// DalleGenerator returns the hosted URL DALL-E produces for a prompt.
type DalleGenerator struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewDalleGenerator(apiKey, model, baseURL string, timeout time.Duration) *DalleGenerator {
	return &DalleGenerator{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (g *DalleGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return "", fmt.Errorf("dalle: %w: OPENAI_API_KEY is not configured", ErrCredentialMissing)
	}

	reqBody, err := json.Marshal(dalleRequest{Model: g.model, Prompt: prompt, N: 1, Size: "1024x1024"})
	if err != nil {
		return "", fmt.Errorf("dalle: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+dalleGenerationsPath, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("dalle: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("dalle: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("dalle: read response: %w", err)
	}

	var dr dalleResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return "", fmt.Errorf("dalle: status %d: unmarshal response: %w", resp.StatusCode, err)
	}
	if dr.Error != nil {
		return "", fmt.Errorf("dalle: api error: %s", dr.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dalle: status %d", resp.StatusCode)
	}
	if len(dr.Data) == 0 {
		return "", fmt.Errorf("dalle: %w", ErrNoImage)
	}
	if dr.Data[0].URL != "" {
		return dr.Data[0].URL, nil
	}
	if dr.Data[0].B64JSON != "" {
		return "data:image/png;base64," + dr.Data[0].B64JSON, nil
	}
	return "", fmt.Errorf("dalle: %w", ErrNoImage)
}
