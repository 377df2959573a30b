// README: Image proxy domain types and errors.
package imageproxy

import (
	"context"
	"errors"
)

// Backend identifies one image-generation service behind the proxy.
type Backend string

const (
	BackendDalle  Backend = "dalle"
	BackendImagen Backend = "imagen"
)

var (
	ErrEmptyPrompt       = errors.New("prompt is required")
	ErrUnknownBackend    = errors.New("unknown image backend")
	ErrCredentialMissing = errors.New("image backend credential missing")
	ErrNoImage           = errors.New("backend returned no image")
)

// Generator turns a prompt into a displayable image locator: a remote URL or a data: URL.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
