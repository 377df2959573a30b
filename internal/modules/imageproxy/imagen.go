// README: Google Imagen generation through the google.golang.org/genai SDK.
package imageproxy

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// imagenClient is the slice of the genai Models service this generator needs.
type imagenClient interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// ImagenGenerator returns generated images inline as data: URLs.
type ImagenGenerator struct {
	apiKey  string
	model   string
	timeout time.Duration
	// newClient is replaced in tests.
	newClient func(ctx context.Context, apiKey string) (imagenClient, error)
}

func NewImagenGenerator(apiKey, model string, timeout time.Duration) *ImagenGenerator {
	return &ImagenGenerator{
		apiKey:    apiKey,
		model:     model,
		timeout:   timeout,
		newClient: newGenaiModels,
	}
}

func newGenaiModels(ctx context.Context, apiKey string) (imagenClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

func (g *ImagenGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return "", fmt.Errorf("imagen: %w: GEMINI_API_KEY is not configured", ErrCredentialMissing)
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	client, err := g.newClient(ctx, g.apiKey)
	if err != nil {
		return "", fmt.Errorf("imagen: create client: %w", err)
	}

	resp, err := client.GenerateImages(ctx, g.model, prompt, &genai.GenerateImagesConfig{NumberOfImages: 1})
	if err != nil {
		return "", fmt.Errorf("imagen: generate images: %w", err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", fmt.Errorf("imagen: %w", ErrNoImage)
	}

	img := resp.GeneratedImages[0].Image
	if len(img.ImageBytes) == 0 {
		return "", fmt.Errorf("imagen: %w", ErrNoImage)
	}
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(img.ImageBytes), nil
}
