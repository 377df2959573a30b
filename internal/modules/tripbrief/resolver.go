// README: Image resolver; one image generator call per prompt, degrading to a placeholder on failure.
package tripbrief

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tripbrief/internal/modules/imageproxy"
)

type Resolver struct {
	gen    imageproxy.Generator
	logger *zap.Logger
}

func NewResolver(gen imageproxy.Generator, logger *zap.Logger) *Resolver {
	return &Resolver{gen: gen, logger: logger}
}

// Resolve never fails: any generator error yields FailedImage and ok=false.
func (r *Resolver) Resolve(ctx context.Context, prompt string) (ImageRef, bool) {
	if strings.TrimSpace(prompt) == "" {
		r.logger.Warn("empty image prompt, using failure placeholder")
		return FailedImage, false
	}
	locator, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		r.logger.Warn("image generation failed", zap.Error(err))
		return FailedImage, false
	}
	if locator == "" {
		r.logger.Warn("image generator returned an empty locator")
		return FailedImage, false
	}
	return ImageRef(locator), true
}
