// README: HTTP client for the local image proxy endpoints (POST /api/images/{backend}).
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

// ProxyRequest is the body accepted by the proxy endpoints.
type ProxyRequest struct {
	Prompt string `json:"prompt"`
}

// ProxyResponse carries either a URL or an error message.
type ProxyResponse struct {
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// Client calls one proxy endpoint of a running server and satisfies Generator.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(baseURL string, backend Backend, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/api/images/" + string(backend),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(ProxyRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("image proxy: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("image proxy: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image proxy: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("image proxy: read response: %w", err)
	}

	var pr ProxyResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return "", fmt.Errorf("image proxy: status %d: unmarshal response: %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if pr.Error != "" {
			return "", fmt.Errorf("image proxy: status %d: %s", resp.StatusCode, pr.Error)
		}
		return "", fmt.Errorf("image proxy: status %d", resp.StatusCode)
	}
	if pr.URL == "" {
		return "", fmt.Errorf("image proxy: %w", ErrNoImage)
	}
	return pr.URL, nil
}
