// README: Provider pipeline; text call, tolerant extraction, sequential image resolution and metrics.
package tripbrief

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tripbrief/internal/ai"
	"tripbrief/internal/obs"
)

// PipelineConfig describes one provider slot.
type PipelineConfig struct {
	Provider ProviderID
	Backend  ai.TextBackend
	Style    ai.ImagePromptStyle
	// Images is nil for providers without an image backend; every slot then gets a placeholder.
	Images *Resolver
	// MaxGeneratedImages defaults to MaxGeneratedImagesPerPipeline when zero.
	MaxGeneratedImages int
}

type Pipeline struct {
	provider  ProviderID
	backend   ai.TextBackend
	style     ai.ImagePromptStyle
	images    *Resolver
	maxImages int
	logger    *zap.Logger
	metrics   *obs.Metrics
	now       func() time.Time
}

func NewPipeline(cfg PipelineConfig, logger *zap.Logger, metrics *obs.Metrics) *Pipeline {
	maxImages := cfg.MaxGeneratedImages
	if maxImages <= 0 {
		maxImages = MaxGeneratedImagesPerPipeline
	}
	return &Pipeline{
		provider:  cfg.Provider,
		backend:   cfg.Backend,
		style:     cfg.Style,
		images:    cfg.Images,
		maxImages: maxImages,
		logger: logger.With(
			zap.String("provider", string(cfg.Provider)),
			zap.String("model", cfg.Backend.Model()),
		),
		metrics: metrics,
		now:     time.Now,
	}
}

func (p *Pipeline) Provider() ProviderID {
	return p.provider
}

// Run executes the whole pipeline for request. Failures are returned inside the result.
func (p *Pipeline) Run(ctx context.Context, request string) PipelineResult {
	start := p.now()
	metrics := Metrics{
		ProviderName: p.backend.Name(),
		ModelLabel:   p.backend.Model(),
	}
	p.logger.Info("pipeline started")

	completion, err := p.backend.Complete(ctx, ai.BuildTripPrompt(p.style, request))
	if err != nil {
		return p.fail(start, metrics, err)
	}

	brief, err := ai.ExtractTripBrief(completion.Text)
	if err != nil {
		return p.fail(start, metrics, ai.ParseError(p.backend.Name(), err))
	}
	metrics.InputTokens = completion.Usage.InputTokens
	metrics.OutputTokens = completion.Usage.OutputTokens

	if n := len(brief.Attractions); n != ai.ExpectedAttractions {
		p.logger.Warn("unexpected attraction count",
			zap.Int("got", n),
			zap.Int("want", ai.ExpectedAttractions),
		)
	}

	result := PipelineResult{
		Provider: p.provider,
		Brief:    &brief,
	}
	result.DestinationImage, result.AttractionImages = p.resolveImages(ctx, brief)

	elapsed := p.now().Sub(start)
	metrics.LatencyMs = elapsed.Milliseconds()
	result.Metrics = metrics

	p.metrics.ObservePipeline(string(p.provider), "success", elapsed)
	p.logger.Info("pipeline finished",
		zap.Int64("latency_ms", metrics.LatencyMs),
		zap.Stringer("input_tokens", metrics.InputTokens),
		zap.Stringer("output_tokens", metrics.OutputTokens),
	)
	return result
}

// resolveImages handles the destination first, then attractions in order.
// Calls are sequential; only the first maxImages attractions reach the generator.
func (p *Pipeline) resolveImages(ctx context.Context, brief ai.TripBrief) (ImageRef, []ImageRef) {
	attractionImages := make([]ImageRef, len(brief.Attractions))

	if p.images == nil {
		for i, a := range brief.Attractions {
			attractionImages[i] = attractionPlaceholder(a)
			p.metrics.IncImage(string(p.provider), obs.ImageFallback)
		}
		p.metrics.IncImage(string(p.provider), obs.ImageFallback)
		return Placeholder(brief.Destination), attractionImages
	}

	destination := p.resolve(ctx, brief.DestinationImagePromptText)
	for i, a := range brief.Attractions {
		if i < p.maxImages {
			attractionImages[i] = p.resolve(ctx, a.ImagePromptText)
			continue
		}
		attractionImages[i] = attractionPlaceholder(a)
		p.metrics.IncImage(string(p.provider), obs.ImageFallback)
	}
	return destination, attractionImages
}

func (p *Pipeline) resolve(ctx context.Context, prompt string) ImageRef {
	ref, ok := p.images.Resolve(ctx, prompt)
	if ok {
		p.metrics.IncImage(string(p.provider), obs.ImageGenerated)
	} else {
		p.metrics.IncImage(string(p.provider), obs.ImageFailed)
	}
	return ref
}

func (p *Pipeline) fail(start time.Time, metrics Metrics, err error) PipelineResult {
	elapsed := p.now().Sub(start)
	metrics.LatencyMs = elapsed.Milliseconds()

	kind := "unknown"
	var perr *ai.ProviderError
	if errors.As(err, &perr) {
		kind = perr.KindName()
	}

	p.metrics.ObservePipeline(string(p.provider), "failure", elapsed)
	p.metrics.IncFailure(string(p.provider), kind)
	p.logger.Warn("pipeline failed",
		zap.String("kind", kind),
		zap.Int64("latency_ms", metrics.LatencyMs),
		zap.Error(err),
	)
	return PipelineResult{Provider: p.provider, Metrics: metrics, Err: err}
}
