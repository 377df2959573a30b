// README: Prometheus metrics for trip planning pipelines and image resolution.
package obs

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Image outcome sources.
const (
	ImageGenerated = "generated"
	ImageFallback  = "fallback"
	ImageFailed    = "failed"
)

// Metrics owns its registry so tests and multiple servers never collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	PipelineDuration *prometheus.HistogramVec
	PipelineFailures *prometheus.CounterVec
	ImageOutcomes    *prometheus.CounterVec
	PlansRejected    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PipelineDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tripbrief_pipeline_duration_seconds",
				Help:    "Wall-clock duration of one provider pipeline, image resolution included",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 90, 120},
			},
			[]string{"provider", "outcome"},
		),
		PipelineFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripbrief_pipeline_failures_total",
				Help: "Provider pipelines that ended in failure, by error kind",
			},
			[]string{"provider", "kind"},
		),
		ImageOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripbrief_images_total",
				Help: "Image slots filled, by how the image was obtained",
			},
			[]string{"provider", "source"},
		),
		PlansRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tripbrief_plans_rejected_total",
				Help: "Trip requests rejected by validation",
			},
			[]string{"reason"},
		),
	}
}

// ObservePipeline is nil-safe so callers without metrics can pass nil.
func (m *Metrics) ObservePipeline(provider, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.PipelineDuration.WithLabelValues(provider, outcome).Observe(d.Seconds())
}

func (m *Metrics) IncFailure(provider, kind string) {
	if m == nil {
		return
	}
	m.PipelineFailures.WithLabelValues(provider, kind).Inc()
}

func (m *Metrics) IncImage(provider, source string) {
	if m == nil {
		return
	}
	m.ImageOutcomes.WithLabelValues(provider, source).Inc()
}

func (m *Metrics) IncRejected(reason string) {
	if m == nil {
		return
	}
	m.PlansRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
