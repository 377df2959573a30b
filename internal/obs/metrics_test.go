package obs

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncFailure("openai", "transport")
	m.IncFailure("openai", "transport")
	m.IncImage("gemini", ImageGenerated)
	m.IncRejected("missing_age_info")
	m.ObservePipeline("anthropic", "success", 2*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PipelineFailures.WithLabelValues("openai", "transport")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImageOutcomes.WithLabelValues("gemini", ImageGenerated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PlansRejected.WithLabelValues("missing_age_info")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PipelineDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.IncFailure("a", "b")
	m.IncImage("a", ImageFallback)
	m.IncRejected("x")
	m.ObservePipeline("a", "failure", time.Second)
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := NewMetrics()
	m.IncImage("openai", ImageFailed)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tripbrief_images_total{provider="openai",source="failed"} 1`)
}
