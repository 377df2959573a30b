// README: Wiring shared by the API server and the CLI: image service, pipelines and planner.
package app

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripbrief/internal/ai"
	"tripbrief/internal/config"
	"tripbrief/internal/modules/imageproxy"
	"tripbrief/internal/modules/tripbrief"
	"tripbrief/internal/obs"
)

// NewImageService builds the DALL-E and Imagen generators. rdb may be nil to disable caching.
func NewImageService(cfg config.Config, rdb *redis.Client, logger *zap.Logger) *imageproxy.Service {
	generators := map[imageproxy.Backend]imageproxy.Generator{
		imageproxy.BackendDalle: imageproxy.NewDalleGenerator(
			cfg.AI.OpenAI.APIKey, cfg.Image.DalleModel, cfg.AI.OpenAI.BaseURL, cfg.Image.Timeout),
		imageproxy.BackendImagen: imageproxy.NewImagenGenerator(
			cfg.AI.Gemini.APIKey, cfg.Image.ImagenModel, cfg.Image.Timeout),
	}
	var store *imageproxy.Store
	if rdb != nil {
		store = imageproxy.NewStore(rdb, cfg.Image.CacheTTL)
	}
	return imageproxy.NewService(generators, store, logger)
}

// ProxyGenerators reach the image backends through the proxy endpoints of a running server.
func ProxyGenerators(cfg config.Config) map[imageproxy.Backend]imageproxy.Generator {
	return map[imageproxy.Backend]imageproxy.Generator{
		imageproxy.BackendDalle:  imageproxy.NewClient(cfg.Image.PublicBaseURL, imageproxy.BackendDalle, cfg.Image.Timeout),
		imageproxy.BackendImagen: imageproxy.NewClient(cfg.Image.PublicBaseURL, imageproxy.BackendImagen, cfg.Image.Timeout),
	}
}

// InProcessGenerators call the image service directly, without an HTTP hop.
func InProcessGenerators(svc *imageproxy.Service) map[imageproxy.Backend]imageproxy.Generator {
	return map[imageproxy.Backend]imageproxy.Generator{
		imageproxy.BackendDalle:  svc.For(imageproxy.BackendDalle),
		imageproxy.BackendImagen: svc.For(imageproxy.BackendImagen),
	}
}

// NewPlanner builds the three provider slots in presentation order.
// Anthropic has no image backend; OpenAI pairs with DALL-E and Gemini with Imagen.
func NewPlanner(cfg config.Config, images map[imageproxy.Backend]imageproxy.Generator, logger *zap.Logger, metrics *obs.Metrics) (*tripbrief.Planner, error) {
	temp, timeout := cfg.AI.Temperature, cfg.AI.TextTimeout
	resolverLogger := logger.Named("images")

	pipelines := []*tripbrief.Pipeline{
		tripbrief.NewPipeline(tripbrief.PipelineConfig{
			Provider: tripbrief.ProviderAnthropic,
			Backend: ai.NewAnthropicBackend(
				cfg.AI.Anthropic.APIKey, cfg.AI.Anthropic.Model, cfg.AI.Anthropic.BaseURL, temp, timeout),
			Style: ai.StyleDescriptive,
		}, logger, metrics),
		tripbrief.NewPipeline(tripbrief.PipelineConfig{
			Provider: tripbrief.ProviderOpenAI,
			Backend: ai.NewOpenAIBackend(
				cfg.AI.OpenAI.APIKey, cfg.AI.OpenAI.Model, cfg.AI.OpenAI.BaseURL, temp, timeout),
			Style:              ai.StyleDalle,
			Images:             tripbrief.NewResolver(images[imageproxy.BackendDalle], resolverLogger),
			MaxGeneratedImages: cfg.Image.MaxGenerated,
		}, logger, metrics),
		tripbrief.NewPipeline(tripbrief.PipelineConfig{
			Provider:           tripbrief.ProviderGemini,
			Backend:            ai.NewGeminiBackend(cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model, temp, timeout),
			Style:              ai.StyleImagen,
			Images:             tripbrief.NewResolver(images[imageproxy.BackendImagen], resolverLogger),
			MaxGeneratedImages: cfg.Image.MaxGenerated,
		}, logger, metrics),
	}
	return tripbrief.NewPlanner(pipelines, logger, metrics)
}
