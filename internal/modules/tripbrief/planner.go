// README: Planner validates a request and fans it out to every provider pipeline.
package tripbrief

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tripbrief/internal/obs"
)

var ErrPipelinePanic = errors.New("pipeline panicked")

type Planner struct {
	pipelines []*Pipeline
	logger    *zap.Logger
	metrics   *obs.Metrics
}

// NewPlanner rejects duplicate provider slots.
func NewPlanner(pipelines []*Pipeline, logger *zap.Logger, metrics *obs.Metrics) (*Planner, error) {
	seen := make(map[ProviderID]bool, len(pipelines))
	for _, p := range pipelines {
		if seen[p.Provider()] {
			return nil, fmt.Errorf("duplicate provider pipeline %q", p.Provider())
		}
		seen[p.Provider()] = true
	}
	return &Planner{pipelines: pipelines, logger: logger, metrics: metrics}, nil
}

// Plan validates request and, if valid, runs every pipeline concurrently and waits for all.
// Invalid requests return a *ValidationError and never reach a provider.
// Started pipelines are not cancelled when ctx is; each is bounded by its own transport timeout.
func (p *Planner) Plan(ctx context.Context, request string) (Results, error) {
	if err := Validate(request); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			p.metrics.IncRejected(verr.Code())
		}
		p.logger.Info("trip request rejected", zap.Error(err))
		return nil, err
	}

	runCtx := context.WithoutCancel(ctx)
	slots := make([]PipelineResult, len(p.pipelines))

	var wg sync.WaitGroup
	for i, pipeline := range p.pipelines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slots[i] = p.runIsolated(runCtx, pipeline, request)
		}()
	}
	wg.Wait()

	results := make(Results, len(slots))
	for _, r := range slots {
		results[r.Provider] = r
	}
	return results, nil
}

// runIsolated keeps a panic in one pipeline from taking down its siblings.
func (p *Planner) runIsolated(ctx context.Context, pipeline *Pipeline, request string) (result PipelineResult) {
	start := pipeline.now()
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("pipeline panic recovered",
				zap.String("provider", string(pipeline.Provider())),
				zap.Any("panic", rec),
			)
			p.metrics.IncFailure(string(pipeline.Provider()), "panic")
			result = PipelineResult{
				Provider: pipeline.Provider(),
				Metrics: Metrics{
					LatencyMs:    pipeline.now().Sub(start).Milliseconds(),
					ProviderName: pipeline.backend.Name(),
					ModelLabel:   pipeline.backend.Model(),
				},
				Err:      fmt.Errorf("%w: %v", ErrPipelinePanic, rec),
			}
		}
	}()
	return pipeline.Run(ctx, request)
}
